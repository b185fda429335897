package live

import (
	"context"
	"errors"
	"testing"

	"hltv-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type stubProvider struct {
	matches []domain.LiveMatch
	match   *domain.LiveMatch
	err     error
	closed  bool
	calls   int
}

func (s *stubProvider) LiveMatches(ctx context.Context) ([]domain.LiveMatch, error) {
	s.calls++
	return s.matches, s.err
}

func (s *stubProvider) MatchLiveData(ctx context.Context, matchID, url string) (*domain.LiveMatch, error) {
	s.calls++
	return s.match, s.err
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func testManager(primary Provider) *Manager {
	return NewManager(primary, zerolog.Nop())
}

func TestManagerUsesPrimaryWhenNoProviderConfigured(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "1", Team1: "NAVI", Team2: "FaZe"}}}
	m := testManager(primary)

	got, err := m.LiveMatches(context.Background(), false)
	if err != nil {
		t.Fatalf("LiveMatches() error = %v", err)
	}
	if len(got) != 1 || got[0].Team1 != "NAVI" {
		t.Fatalf("LiveMatches() = %+v, want primary result", got)
	}
}

func TestManagerPrefersConfiguredProvider(t *testing.T) {
	primary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "1"}}}
	m := testManager(primary)

	if err := m.Configure(true, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	secondary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "2", Team1: "Vitality"}}}
	m.secondary = secondary

	got, err := m.LiveMatches(context.Background(), false)
	if err != nil {
		t.Fatalf("LiveMatches() error = %v", err)
	}
	if len(got) != 1 || got[0].MatchID != "2" {
		t.Fatalf("LiveMatches() = %+v, want secondary result", got)
	}
	if primary.calls != 0 {
		t.Fatalf("primary called %d times, want 0", primary.calls)
	}
}

func TestManagerFallsBackOnProviderError(t *testing.T) {
	primary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "1", Team1: "NAVI"}}}
	m := testManager(primary)

	if err := m.Configure(true, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	m.secondary = &stubProvider{err: errors.New("api down")}

	got, err := m.LiveMatches(context.Background(), false)
	if err != nil {
		t.Fatalf("LiveMatches() error = %v", err)
	}
	if len(got) != 1 || got[0].Team1 != "NAVI" {
		t.Fatalf("LiveMatches() = %+v, want fallback to primary", got)
	}
}

func TestManagerFallsBackOnEmptyProviderResult(t *testing.T) {
	primary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "1"}}}
	m := testManager(primary)

	if err := m.Configure(true, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	m.secondary = &stubProvider{}

	got, err := m.LiveMatches(context.Background(), false)
	if err != nil {
		t.Fatalf("LiveMatches() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("LiveMatches() = %+v, want fallback to primary", got)
	}
}

func TestManagerNoFallbackWhenDisabled(t *testing.T) {
	primary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "1"}}}
	m := testManager(primary)

	if err := m.Configure(true, "bo3gg", false, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	m.secondary = &stubProvider{err: errors.New("api down")}

	_, err := m.LiveMatches(context.Background(), false)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("LiveMatches() error = %v, want ErrUnavailable", err)
	}
	if primary.calls != 0 {
		t.Fatalf("primary called %d times, want 0", primary.calls)
	}
}

func TestManagerFallbackDisabledReturnsEmptyOnEmptyResult(t *testing.T) {
	primary := &stubProvider{matches: []domain.LiveMatch{{MatchID: "1"}}}
	m := testManager(primary)

	if err := m.Configure(true, "bo3gg", false, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	m.secondary = &stubProvider{}

	got, err := m.LiveMatches(context.Background(), false)
	if err != nil {
		t.Fatalf("LiveMatches() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("LiveMatches() = %+v, want empty", got)
	}
	if primary.calls != 0 {
		t.Fatalf("primary called %d times, want 0", primary.calls)
	}
}

func TestManagerDisabledProviderWithoutFallback(t *testing.T) {
	primary := &stubProvider{
		matches: []domain.LiveMatch{{MatchID: "1", Team1: "NAVI"}},
		match:   &domain.LiveMatch{MatchID: "1"},
	}
	m := testManager(primary)

	if err := m.Configure(false, "bo3gg", false, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	got, err := m.LiveMatches(context.Background(), false)
	if err != nil {
		t.Fatalf("LiveMatches() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("LiveMatches() = %+v, want empty with fallback off", got)
	}

	_, err = m.MatchLiveData(context.Background(), "1", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("MatchLiveData() error = %v, want ErrNotFound", err)
	}
	if primary.calls != 0 {
		t.Fatalf("primary called %d times, want 0", primary.calls)
	}
}

func TestManagerConfigureClosesPreviousProvider(t *testing.T) {
	m := testManager(&stubProvider{})

	if err := m.Configure(true, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	old := &stubProvider{}
	m.secondary = old

	if err := m.Configure(true, "pandascore", true, Params{APIToken: "token"}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if !old.closed {
		t.Fatal("previous provider was not closed on reconfigure")
	}
}

func TestManagerMatchLiveDataFallsBack(t *testing.T) {
	want := &domain.LiveMatch{MatchID: "7", Team1: "G2"}
	primary := &stubProvider{match: want}
	m := testManager(primary)

	if err := m.Configure(true, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	m.secondary = &stubProvider{err: errors.New("api down")}

	got, err := m.MatchLiveData(context.Background(), "7", "")
	if err != nil {
		t.Fatalf("MatchLiveData() error = %v", err)
	}
	if got.MatchID != "7" {
		t.Fatalf("MatchLiveData() = %+v, want primary result", got)
	}
}

func TestManagerProviderName(t *testing.T) {
	m := testManager(&stubProvider{})

	if name := m.ProviderName(); name != "hltv" {
		t.Fatalf("ProviderName() = %q, want hltv", name)
	}

	if err := m.Configure(true, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if name := m.ProviderName(); name != "bo3gg" {
		t.Fatalf("ProviderName() = %q, want bo3gg", name)
	}

	if err := m.Configure(false, "bo3gg", true, Params{}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if name := m.ProviderName(); name != "hltv" {
		t.Fatalf("ProviderName() = %q, want hltv after disable", name)
	}
}

func TestNewProviderUnknownName(t *testing.T) {
	t.Parallel()

	if _, err := NewProvider("espn", Params{}, zerolog.Nop()); err == nil {
		t.Fatal("NewProvider() with unknown name succeeded, want error")
	}
}
