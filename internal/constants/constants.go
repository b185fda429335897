package constants

import "time"

// Cache TTLs per data category. Listings are coarse, live data is volatile,
// profiles are semi-static; the categorization matters more than the exact
// values.
const (
	MatchesCacheTTL     = 2 * time.Minute
	RankingsCacheTTL    = 1 * time.Hour
	ResultsCacheTTL     = 10 * time.Minute
	MatchDetailCacheTTL = 1 * time.Minute
	LiveCacheTTL        = 1 * time.Minute
	PlayerCacheTTL      = 1 * time.Hour
	TeamCacheTTL        = 30 * time.Minute
)

const (
	FetchMaxAttempts = 3
	FetchTimeout     = 30 * time.Second
	RequestTimeout   = 30 * time.Second
	ProviderTimeout  = 10 * time.Second
)

const (
	DefaultMaxResults  = 30
	DefaultMaxTeams    = 30
	SearchRankingDepth = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)
