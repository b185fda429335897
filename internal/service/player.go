package service

import (
	"context"
	"fmt"
	"strings"

	"hltv-tracker/internal/cache"
	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/fetcher"
	"hltv-tracker/internal/hltv"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	baseURL   string
	fetcher   *fetcher.Client
	extractor *hltv.Extractor
	cache     *cache.Store
	logger    zerolog.Logger
}

func NewPlayerService(baseURL string, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, logger zerolog.Logger) *PlayerService {
	return &PlayerService{baseURL: baseURL, fetcher: f, extractor: e, cache: c, logger: logger}
}

// GetPlayerInfo fetches a player's career stat summary. The stats page
// ignores the trailing name segment, so any slug resolves; nickname only
// makes the URL readable in logs.
func (s *PlayerService) GetPlayerInfo(ctx context.Context, playerID, nickname string) (*domain.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if playerID == "" {
		return nil, domain.ErrNotFound
	}

	key := "player_" + playerID
	if cached, ok := s.cache.Get(key, cache.Player); ok {
		return cached.(*domain.PlayerProfile), nil
	}

	slug := strings.ToLower(strings.TrimSpace(nickname))
	if slug == "" {
		slug = "player"
	}
	url := fmt.Sprintf("%s/stats/players/%s/%s", s.baseURL, playerID, slug)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to fetch player page")
		return nil, err
	}

	profile, err := s.extractor.ParsePlayerProfile(body, playerID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, profile)
	s.logger.Info().Str("player_id", playerID).Str("nickname", profile.Nickname).Msg("player profile fetched")
	return profile, nil
}
