package service

import (
	"context"
	"fmt"

	"hltv-tracker/internal/cache"
	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/fetcher"
	"hltv-tracker/internal/hltv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchService struct {
	baseURL   string
	fetcher   *fetcher.Client
	extractor *hltv.Extractor
	cache     *cache.Store
	logger    zerolog.Logger
}

func NewMatchService(baseURL string, f *fetcher.Client, e *hltv.Extractor, c *cache.Store, logger zerolog.Logger) *MatchService {
	return &MatchService{baseURL: baseURL, fetcher: f, extractor: e, cache: c, logger: logger}
}

func (s *MatchService) ListMatches(ctx context.Context) ([]domain.MatchSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if cached, ok := s.cache.Get("upcoming_matches", cache.Matches); ok {
		return cached.([]domain.MatchSummary), nil
	}

	body, err := s.fetcher.Fetch(ctx, s.baseURL+"/matches")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch matches listing")
		return nil, err
	}

	matches, err := s.extractor.ParseMatches(body)
	if err != nil {
		return nil, err
	}

	s.cache.Set("upcoming_matches", matches)
	s.logger.Info().Int("count", len(matches)).Msg("matches listing fetched")
	return matches, nil
}

func (s *MatchService) ListResults(ctx context.Context, max int) ([]domain.MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if max <= 0 {
		max = constants.DefaultMaxResults
	}

	results, err := s.fetchResults(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

func (s *MatchService) fetchResults(ctx context.Context) ([]domain.MatchResult, error) {
	if cached, ok := s.cache.Get("recent_results", cache.Results); ok {
		return cached.([]domain.MatchResult), nil
	}

	body, err := s.fetcher.Fetch(ctx, s.baseURL+"/results")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch results listing")
		return nil, err
	}

	results, err := s.extractor.ParseResults(body)
	if err != nil {
		return nil, err
	}

	s.cache.Set("recent_results", results)
	s.logger.Info().Int("count", len(results)).Msg("results listing fetched")
	return results, nil
}

// GetMatchDetail returns the full match page. When the caller has no match
// URL the upcoming and recent listings are scanned for the id; both pages
// are fetched concurrently since either may hold it.
func (s *MatchService) GetMatchDetail(ctx context.Context, matchID, url string) (*domain.MatchDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	key := "match_" + matchID
	if cached, ok := s.cache.Get(key, cache.MatchDetail); ok {
		return cached.(*domain.MatchDetail), nil
	}

	if url == "" {
		resolved, err := s.resolveMatchURL(ctx, matchID)
		if err != nil {
			return nil, err
		}
		url = resolved
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to fetch match page")
		return nil, err
	}

	detail, err := s.extractor.ParseMatchDetail(body, matchID)
	if err != nil {
		return nil, err
	}
	detail.URL = url

	s.cache.Set(key, detail)
	return detail, nil
}

func (s *MatchService) resolveMatchURL(ctx context.Context, matchID string) (string, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var matches []domain.MatchSummary
	var results []domain.MatchResult

	g.Go(func() error {
		var err error
		matches, err = s.ListMatches(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.fetchResults(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to resolve match %s: %w", matchID, err)
	}

	for _, m := range matches {
		if m.MatchID == matchID {
			return m.URL, nil
		}
	}
	for _, r := range results {
		if r.MatchID == matchID {
			return r.URL, nil
		}
	}

	s.logger.Warn().Str("match_id", matchID).Msg("match not present in listings")
	return "", domain.ErrNotFound
}

// GetMapStats parses a per-map scoreboard page. The stats URL comes off a
// MapResult, there is no way to guess it from a match id alone.
func (s *MatchService) GetMapStats(ctx context.Context, statsURL string) (*domain.MapStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if statsURL == "" {
		return nil, domain.ErrNotFound
	}

	key := "mapstats_" + statsURL
	if cached, ok := s.cache.Get(key, cache.MatchDetail); ok {
		return cached.(*domain.MapStats), nil
	}

	body, err := s.fetcher.Fetch(ctx, statsURL)
	if err != nil {
		s.logger.Error().Err(err).Str("url", statsURL).Msg("failed to fetch map stats page")
		return nil, err
	}

	stats, err := s.extractor.ParseMapStats(body)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, stats)
	return stats, nil
}
