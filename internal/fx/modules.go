package fx

import (
	"hltv-tracker/internal/cache"
	"hltv-tracker/internal/config"
	"hltv-tracker/internal/fetcher"
	"hltv-tracker/internal/hltv"
	"hltv-tracker/internal/live"
	"hltv-tracker/internal/logger"
	"hltv-tracker/internal/server"
	"hltv-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideExtractor(cfg *config.Config, log zerolog.Logger) *hltv.Extractor {
	return hltv.NewExtractor(cfg.BaseURL, log)
}

func ProvideLiveManager(cfg *config.Config, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, log zerolog.Logger) (*live.Manager, error) {
	primary := live.NewHLTVProvider(cfg.BaseURL, f, e, c, log)
	manager := live.NewManager(primary, log)

	err := manager.Configure(cfg.LiveEnabled, cfg.LiveProvider, cfg.FallbackToHLTV, live.Params{
		APIToken:        cfg.PandaScoreToken,
		BaseURL:         cfg.BaseURL,
		BrowserHeadless: cfg.BrowserHeadless,
		BrowserTimeout:  int(cfg.BrowserTimeout.Seconds()),
	})
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func ProvideMatchService(cfg *config.Config, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, log zerolog.Logger) *service.MatchService {
	return service.NewMatchService(cfg.BaseURL, f, e, c, log)
}

func ProvideRankingService(cfg *config.Config, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, log zerolog.Logger) *service.RankingService {
	return service.NewRankingService(cfg.BaseURL, f, e, c, log)
}

func ProvidePlayerService(cfg *config.Config, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, log zerolog.Logger) *service.PlayerService {
	return service.NewPlayerService(cfg.BaseURL, f, e, c, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(cache.New),
	fx.Provide(fetcher.New),
	fx.Provide(ProvideExtractor),
	// live providers
	fx.Provide(ProvideLiveManager),
	// svc
	fx.Provide(ProvideMatchService),
	fx.Provide(service.NewLiveService),
	fx.Provide(ProvideRankingService),
	fx.Provide(ProvidePlayerService),
	// server
	fx.Provide(server.NewTrackerServer),
)
