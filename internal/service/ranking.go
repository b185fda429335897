package service

import (
	"context"
	"strings"

	"hltv-tracker/internal/cache"
	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/fetcher"
	"hltv-tracker/internal/hltv"

	"github.com/rs/zerolog"
)

type RankingService struct {
	baseURL   string
	fetcher   *fetcher.Client
	extractor *hltv.Extractor
	cache     *cache.Store
	logger    zerolog.Logger
}

func NewRankingService(baseURL string, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, logger zerolog.Logger) *RankingService {
	return &RankingService{baseURL: baseURL, fetcher: f, extractor: e, cache: c, logger: logger}
}

func (s *RankingService) ListRankings(ctx context.Context, max int) ([]domain.TeamRankEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if max <= 0 {
		max = constants.DefaultMaxTeams
	}

	rankings, err := s.fetchRankings(ctx)
	if err != nil {
		return nil, err
	}
	if len(rankings) > max {
		rankings = rankings[:max]
	}
	return rankings, nil
}

// SearchTeam matches a case-insensitive substring against the current
// ranking snapshot. Lookup depth is capped; a team outside the top of the
// ranking is reported as not found rather than guessed at.
func (s *RankingService) SearchTeam(ctx context.Context, query string) (*domain.TeamRankEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, domain.ErrNotFound
	}

	rankings, err := s.fetchRankings(ctx)
	if err != nil {
		return nil, err
	}
	if len(rankings) > constants.SearchRankingDepth {
		rankings = rankings[:constants.SearchRankingDepth]
	}

	for i := range rankings {
		if strings.Contains(strings.ToLower(rankings[i].Name), query) {
			return &rankings[i], nil
		}
	}

	s.logger.Debug().Str("query", query).Msg("team not found in ranking snapshot")
	return nil, domain.ErrNotFound
}

func (s *RankingService) fetchRankings(ctx context.Context) ([]domain.TeamRankEntry, error) {
	if cached, ok := s.cache.Get("team_rankings", cache.Rankings); ok {
		return cached.([]domain.TeamRankEntry), nil
	}

	body, err := s.fetcher.Fetch(ctx, s.baseURL+"/ranking/teams")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch rankings page")
		return nil, err
	}

	rankings, err := s.extractor.ParseRankings(body)
	if err != nil {
		return nil, err
	}

	s.cache.Set("team_rankings", rankings)
	s.logger.Info().Int("count", len(rankings)).Msg("rankings fetched")
	return rankings, nil
}
