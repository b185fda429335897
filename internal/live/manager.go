package live

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// Manager owns the live-data source selection. An optional structured
// provider can be configured in front of the primary scrape path; when it
// errors or comes back empty the manager falls back to the primary only if
// fallback is enabled. With fallback disabled the primary is never
// consulted, even when no secondary is active: that configuration means
// "this source or nothing".
type Manager struct {
	mu           sync.Mutex
	primary      Provider
	secondary    Provider
	providerName string
	enabled      bool
	fallback     bool
	logger       zerolog.Logger
}

func NewManager(primary Provider, logger zerolog.Logger) *Manager {
	return &Manager{
		primary:  primary,
		fallback: true,
		logger:   logger,
	}
}

// Configure swaps the secondary provider. A previously configured provider
// is closed before the replacement is built, so browser processes and idle
// connections never outlive their configuration.
func (m *Manager) Configure(enabled bool, providerName string, fallbackToHLTV bool, params Params) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.secondary != nil {
		if err := m.secondary.Close(); err != nil {
			m.logger.Warn().Err(err).Str("provider", m.providerName).Msg("failed to close live provider")
		}
		m.secondary = nil
		m.providerName = ""
	}

	m.enabled = enabled
	m.fallback = fallbackToHLTV

	if !enabled || providerName == "" || providerName == "hltv" {
		return nil
	}

	provider, err := NewProvider(providerName, params, m.logger)
	if err != nil {
		return err
	}
	m.secondary = provider
	m.providerName = providerName
	m.logger.Info().Str("provider", providerName).Bool("fallback", fallbackToHLTV).Msg("live provider configured")
	return nil
}

func (m *Manager) current() (Provider, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled || m.secondary == nil {
		return nil, "", m.fallback
	}
	return m.secondary, m.providerName, m.fallback
}

func (m *Manager) LiveMatches(ctx context.Context, fetchDetails bool) ([]domain.LiveMatch, error) {
	secondary, name, fallback := m.current()
	if secondary != nil {
		provCtx, cancel := context.WithTimeout(ctx, constants.ProviderTimeout)
		matches, err := secondary.LiveMatches(provCtx)
		cancel()
		if err == nil && len(matches) > 0 {
			return matches, nil
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("provider", name).Msg("live provider failed")
			if !fallback {
				return nil, fmt.Errorf("live provider %s failed: %w", name, domain.ErrUnavailable)
			}
		}
	}
	if !fallback {
		return []domain.LiveMatch{}, nil
	}
	return m.primaryLiveMatches(ctx, fetchDetails)
}

func (m *Manager) primaryLiveMatches(ctx context.Context, fetchDetails bool) ([]domain.LiveMatch, error) {
	if detailed, ok := m.primary.(interface {
		LiveMatchesDetailed(ctx context.Context, fetchDetails bool) ([]domain.LiveMatch, error)
	}); ok {
		return detailed.LiveMatchesDetailed(ctx, fetchDetails)
	}
	return m.primary.LiveMatches(ctx)
}

func (m *Manager) MatchLiveData(ctx context.Context, matchID, url string) (*domain.LiveMatch, error) {
	secondary, name, fallback := m.current()
	if secondary != nil {
		provCtx, cancel := context.WithTimeout(ctx, constants.ProviderTimeout)
		match, err := secondary.MatchLiveData(provCtx, matchID, url)
		cancel()
		if err == nil && match != nil {
			return match, nil
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("provider", name).Str("match_id", matchID).Msg("live provider failed")
			if !fallback {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, err
				}
				return nil, fmt.Errorf("live provider %s failed: %w", name, domain.ErrUnavailable)
			}
		}
	}
	if !fallback {
		return nil, domain.ErrNotFound
	}
	return m.primary.MatchLiveData(ctx, matchID, url)
}

// ProviderName reports the configured secondary, or "hltv" when only the
// scrape path is active.
func (m *Manager) ProviderName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled && m.secondary != nil {
		return m.providerName
	}
	return "hltv"
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.secondary != nil {
		if err := m.secondary.Close(); err != nil {
			return err
		}
		m.secondary = nil
	}
	return m.primary.Close()
}
