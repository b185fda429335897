package live

import (
	"context"

	"hltv-tracker/internal/cache"
	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/fetcher"
	"hltv-tracker/internal/hltv"

	"github.com/rs/zerolog"
)

const (
	liveListKey     = "live_matches"
	liveDetailedKey = "live_matches_detailed"
)

// HLTVProvider is the primary scrape path: the listing page names the live
// matches, and each match page refines them with map and round state. It is
// the only provider that caches, since it is the one bound by scrape
// etiquette rather than an API rate limit.
type HLTVProvider struct {
	baseURL   string
	fetcher   *fetcher.Client
	extractor *hltv.Extractor
	cache     *cache.Store
	logger    zerolog.Logger
}

func NewHLTVProvider(baseURL string, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, logger zerolog.Logger) *HLTVProvider {
	return &HLTVProvider{
		baseURL:   baseURL,
		fetcher:   f,
		extractor: e,
		cache:     c,
		logger:    logger,
	}
}

func (p *HLTVProvider) LiveMatches(ctx context.Context) ([]domain.LiveMatch, error) {
	return p.LiveMatchesDetailed(ctx, false)
}

// LiveMatchesDetailed lists live matches from the listing page. With
// fetchDetails set, each match page is fetched as well to replace the
// listing's coarse totals with per-map and per-round state; a match whose
// detail page fails keeps its listing-level data.
func (p *HLTVProvider) LiveMatchesDetailed(ctx context.Context, fetchDetails bool) ([]domain.LiveMatch, error) {
	key := liveListKey
	if fetchDetails {
		key = liveDetailedKey
	}
	if cached, ok := p.cache.Get(key, cache.Live); ok {
		return cached.([]domain.LiveMatch), nil
	}

	body, err := p.fetcher.Fetch(ctx, p.baseURL+"/matches")
	if err != nil {
		return nil, err
	}

	matches, err := p.extractor.ParseLiveMatches(body)
	if err != nil {
		return nil, err
	}

	if fetchDetails {
		for i := range matches {
			refined, err := p.fetchDetail(ctx, matches[i])
			if err != nil {
				p.logger.Warn().Err(err).Str("match_id", matches[i].MatchID).Msg("live detail fetch failed, keeping listing data")
				continue
			}
			matches[i] = *refined
		}
	}

	p.cache.Set(key, matches)
	return matches, nil
}

// MatchLiveData returns live state for a single match. The listing is
// consulted first so the result carries team and event names even when the
// match page itself is the source of map state.
func (p *HLTVProvider) MatchLiveData(ctx context.Context, matchID, url string) (*domain.LiveMatch, error) {
	matches, err := p.LiveMatchesDetailed(ctx, false)
	if err != nil {
		return nil, err
	}

	for _, m := range matches {
		if m.MatchID != matchID {
			continue
		}
		refined, err := p.fetchDetail(ctx, m)
		if err != nil {
			p.logger.Warn().Err(err).Str("match_id", matchID).Msg("live detail fetch failed, keeping listing data")
			listed := m
			return &listed, nil
		}
		return refined, nil
	}

	if url == "" {
		return nil, domain.ErrNotFound
	}
	return p.fetchDetail(ctx, domain.LiveMatch{MatchID: matchID, URL: url})
}

func (p *HLTVProvider) fetchDetail(ctx context.Context, listed domain.LiveMatch) (*domain.LiveMatch, error) {
	if listed.URL == "" {
		return nil, domain.ErrNotFound
	}
	body, err := p.fetcher.Fetch(ctx, listed.URL)
	if err != nil {
		return nil, err
	}
	return p.extractor.ParseLiveDetail(body, listed)
}

func (p *HLTVProvider) Close() error { return nil }
