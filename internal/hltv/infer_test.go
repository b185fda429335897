package hltv

import (
	"testing"

	"hltv-tracker/internal/domain"
)

func TestInferMapState_FinishedAndCurrent(t *testing.T) {
	t.Parallel()

	state := InferMapState([]MapScore{
		{Name: "Mirage", Score1: "13", Score2: "4"},
		{Name: "Inferno", Score1: "9", Score2: "7"},
	})

	if state.Team1MapsWon != 1 || state.Team2MapsWon != 0 {
		t.Fatalf("maps won = (%d,%d), want (1,0)", state.Team1MapsWon, state.Team2MapsWon)
	}
	if state.CurrentMap != "Inferno" {
		t.Fatalf("current map = %q, want Inferno", state.CurrentMap)
	}
	if state.Team1RoundScore != 9 || state.Team2RoundScore != 7 {
		t.Fatalf("round score = (%d,%d), want (9,7)", state.Team1RoundScore, state.Team2RoundScore)
	}
}

func TestInferMapState_OvertimeFinish(t *testing.T) {
	t.Parallel()

	state := InferMapState([]MapScore{{Name: "Nuke", Score1: "16", Score2: "14"}})

	if state.Team1MapsWon != 1 || state.Team2MapsWon != 0 {
		t.Fatalf("maps won = (%d,%d), want (1,0)", state.Team1MapsWon, state.Team2MapsWon)
	}
	if state.CurrentMap != "" {
		t.Fatalf("current map = %q, want empty", state.CurrentMap)
	}
	if state.Team1RoundScore != 0 || state.Team2RoundScore != 0 {
		t.Fatalf("round score = (%d,%d), want (0,0)", state.Team1RoundScore, state.Team2RoundScore)
	}
}

func TestInferMapState_OvertimeStillRunning(t *testing.T) {
	t.Parallel()

	// 13:13 and 14:13 are live overtime, not finished.
	state := InferMapState([]MapScore{{Name: "Ancient", Score1: "14", Score2: "13"}})

	if state.Team1MapsWon != 0 || state.Team2MapsWon != 0 {
		t.Fatalf("maps won = (%d,%d), want (0,0)", state.Team1MapsWon, state.Team2MapsWon)
	}
	if state.CurrentMap != "Ancient" {
		t.Fatalf("current map = %q, want Ancient", state.CurrentMap)
	}
}

func TestInferMapState_PlaceholderSkipped(t *testing.T) {
	t.Parallel()

	state := InferMapState([]MapScore{{Name: "Anubis", Score1: "-", Score2: "-"}})

	if state.Team1MapsWon != 0 || state.Team2MapsWon != 0 {
		t.Fatalf("maps won = (%d,%d), want (0,0)", state.Team1MapsWon, state.Team2MapsWon)
	}
	if state.CurrentMap != "" {
		t.Fatalf("current map = %q, want empty", state.CurrentMap)
	}
}

func TestInferMapState_LastUnfinishedWins(t *testing.T) {
	t.Parallel()

	state := InferMapState([]MapScore{
		{Name: "Mirage", Score1: "13", Score2: "7"},
		{Name: "Inferno", Score1: "3", Score2: "2"},
		{Name: "Nuke", Score1: "1", Score2: "0"},
	})

	if state.CurrentMap != "Nuke" {
		t.Fatalf("current map = %q, want Nuke (last unfinished entry wins)", state.CurrentMap)
	}
	if state.Team1RoundScore != 1 || state.Team2RoundScore != 0 {
		t.Fatalf("round score = (%d,%d), want (1,0)", state.Team1RoundScore, state.Team2RoundScore)
	}
}

func TestInferMapState_UnparseableScoreSkipped(t *testing.T) {
	t.Parallel()

	state := InferMapState([]MapScore{
		{Name: "Dust2", Score1: "abc", Score2: "13"},
		{Name: "Train", Score1: "13", Score2: "5"},
	})

	if state.Team1MapsWon != 1 || state.Team2MapsWon != 0 {
		t.Fatalf("maps won = (%d,%d), want (1,0)", state.Team1MapsWon, state.Team2MapsWon)
	}
	if state.CurrentMap != "" {
		t.Fatalf("unparseable entry must not become current")
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want domain.MatchFormat
	}{
		{"Best of 3 (Online)", domain.FormatBo3},
		{"BEST OF 5 - LAN finals", domain.FormatBo5},
		{"Best of 1", domain.FormatBo1},
		{"bo3 * Group stage", domain.FormatBo3},
		{"Grand final, bo5", domain.FormatBo5},
		{"Showmatch", domain.FormatUnknown},
		{"", domain.FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.text); got != tc.want {
			t.Fatalf("DetectFormat(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
