package cache

import (
	"sync"
	"time"

	"hltv-tracker/internal/constants"
)

// Category selects which TTL applies to a key. TTLs are per category, not
// per key.
type Category string

const (
	Matches     Category = "matches"
	Rankings    Category = "rankings"
	Results     Category = "results"
	MatchDetail Category = "match_detail"
	Live        Category = "live"
	Player      Category = "player"
	Team        Category = "team"
)

var ttlByCategory = map[Category]time.Duration{
	Matches:     constants.MatchesCacheTTL,
	Rankings:    constants.RankingsCacheTTL,
	Results:     constants.ResultsCacheTTL,
	MatchDetail: constants.MatchDetailCacheTTL,
	Live:        constants.LiveCacheTTL,
	Player:      constants.PlayerCacheTTL,
	Team:        constants.TeamCacheTTL,
}

const defaultTTL = 5 * time.Minute

type entry struct {
	value     any
	createdAt time.Time
}

// Store is the process-wide fetch cache. Entries are immutable values
// replaced wholesale on the next successful fetch; an expired entry is
// treated the same as an absent one and is never proactively evicted.
// Concurrent callers may both miss and both re-fetch, which is accepted:
// the race costs a redundant fetch, never a corrupted entry.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewWithClock is used by tests to simulate TTL expiry.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     now,
	}
}

func TTL(category Category) time.Duration {
	if ttl, ok := ttlByCategory[category]; ok {
		return ttl
	}
	return defaultTTL
}

func (s *Store) Get(key string, category Category) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.createdAt) >= TTL(category) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, createdAt: s.now()}
	s.mu.Unlock()
}
