package hltv

import (
	"strconv"
	"strings"

	"hltv-tracker/internal/domain"
)

// MapScore is one per-map score pair as sourced, scores kept as raw text so
// the "not started" placeholder survives until inference.
type MapScore struct {
	Name   string
	Score1 string
	Score2 string
}

// MapState is the inferred live state of a best-of-N match.
type MapState struct {
	Team1MapsWon    int
	Team2MapsWon    int
	CurrentMap      string
	Team1RoundScore int
	Team2RoundScore int
}

// mapFinished reports whether a score pair represents a completed map under
// the 13-round-win, overtime-increment convention. The third branch overlaps
// the first two; it is kept deliberately because the source game's exact
// overtime threshold is not independently confirmed.
func mapFinished(s1, s2 int) bool {
	if s1 >= 13 && s1-s2 >= 2 {
		return true
	}
	if s2 >= 13 && s2-s1 >= 2 {
		return true
	}
	if s1 >= 13 && s2 >= 13 {
		diff := s1 - s2
		if diff < 0 {
			diff = -diff
		}
		return diff >= 2
	}
	return false
}

// InferMapState walks per-map score pairs in play order and determines which
// maps are finished, which is currently live, and the live round score.
// Placeholder pairs ("-"/"-") are skipped. When several entries are neither
// finished nor placeholders, the last one in document order wins as current.
func InferMapState(maps []MapScore) MapState {
	var state MapState

	for _, m := range maps {
		if m.Score1 == scorePlaceholder || m.Score2 == scorePlaceholder {
			continue
		}

		s1, err1 := strconv.Atoi(strings.TrimSpace(m.Score1))
		s2, err2 := strconv.Atoi(strings.TrimSpace(m.Score2))
		if err1 != nil || err2 != nil {
			continue
		}

		if mapFinished(s1, s2) {
			if s1 > s2 {
				state.Team1MapsWon++
			} else {
				state.Team2MapsWon++
			}
			continue
		}

		state.CurrentMap = m.Name
		state.Team1RoundScore = s1
		state.Team2RoundScore = s2
	}

	return state
}

// DetectFormat scans a free-text format descriptor for a best-of-N marker,
// longest series first. This is independent of score-based inference.
func DetectFormat(text string) domain.MatchFormat {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "best of 5"), strings.Contains(lower, "bo5"):
		return domain.FormatBo5
	case strings.Contains(lower, "best of 3"), strings.Contains(lower, "bo3"):
		return domain.FormatBo3
	case strings.Contains(lower, "best of 1"), strings.Contains(lower, "bo1"):
		return domain.FormatBo1
	default:
		return domain.FormatUnknown
	}
}
