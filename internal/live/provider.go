// Package live abstracts over heterogeneous live-data sources. Every
// provider maps its payload down to the common domain.LiveMatch shape;
// provider failures are caught at the boundary and degrade to the fallback
// chain, never propagate to the caller.
package live

import (
	"context"
	"fmt"

	"hltv-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type Provider interface {
	LiveMatches(ctx context.Context) ([]domain.LiveMatch, error)
	MatchLiveData(ctx context.Context, matchID, url string) (*domain.LiveMatch, error)
	Close() error
}

// Params carries provider-specific configuration handed through Configure.
type Params struct {
	APIToken        string
	BaseURL         string
	BrowserHeadless bool
	BrowserTimeout  int // seconds, 0 means default
}

// NewProvider builds a provider by identifier. Known identifiers are
// "bo3gg", "pandascore" and "browser"; the primary scrape path is not a
// Provider here, it is the fallback the manager's caller owns.
func NewProvider(name string, params Params, logger zerolog.Logger) (Provider, error) {
	switch name {
	case "bo3gg":
		return NewBO3ggProvider(logger), nil
	case "pandascore":
		return NewPandaScoreProvider(params.APIToken, logger), nil
	case "browser":
		return NewBrowserProvider(params, logger), nil
	default:
		return nil, fmt.Errorf("unknown live provider %q", name)
	}
}
