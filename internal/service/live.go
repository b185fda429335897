package service

import (
	"context"

	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/live"

	"github.com/rs/zerolog"
)

// LiveService fronts the live-data manager. Source selection and fallback
// live in the manager; the service only owns request scoping.
type LiveService struct {
	manager *live.Manager
	logger  zerolog.Logger
}

func NewLiveService(manager *live.Manager, logger zerolog.Logger) *LiveService {
	return &LiveService{manager: manager, logger: logger}
}

func (s *LiveService) ListLiveMatches(ctx context.Context, fetchDetails bool) ([]domain.LiveMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	matches, err := s.manager.LiveMatches(ctx, fetchDetails)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list live matches")
		return nil, err
	}
	return matches, nil
}

func (s *LiveService) GetMatchLiveData(ctx context.Context, matchID, url string) (*domain.LiveMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	match, err := s.manager.MatchLiveData(ctx, matchID, url)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to get live match data")
		return nil, err
	}
	return match, nil
}

func (s *LiveService) ProviderName() string {
	return s.manager.ProviderName()
}
