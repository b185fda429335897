package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParseLiveMatches extracts the live-match containers from the matches
// listing page. Scores there are listing-level approximations; the match
// page (ParseLiveDetail) refines them.
func (e *Extractor) ParseLiveMatches(html string) ([]domain.LiveMatch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse live listing: %w", err)
	}

	section := doc.Find(".liveMatches")
	if section.Length() == 0 {
		return nil, nil
	}

	var live []domain.LiveMatch
	section.Find(".live-match-container").Each(func(_ int, container *goquery.Selection) {
		m, ok := e.parseLiveContainer(container)
		if !ok {
			return
		}
		live = append(live, m)
	})

	return live, nil
}

func (e *Extractor) parseLiveContainer(container *goquery.Selection) (domain.LiveMatch, bool) {
	link := container.Find("a.match-teams, a.match-info").First()
	if link.Length() == 0 {
		e.logger.Debug().Msg("live container without match link")
		return domain.LiveMatch{}, false
	}
	href, _ := link.Attr("href")

	teams := container.Find(".match-teamname")
	team1, team2 := "TBD", "TBD"
	if teams.Length() > 0 {
		team1 = text(teams.Eq(0))
	}
	if teams.Length() > 1 {
		team2 = text(teams.Eq(1))
	}

	m := domain.LiveMatch{
		MatchID: matchIDFromHref(href),
		Team1:   team1,
		Team2:   team2,
		Event:   text(container.Find(".match-event .text-ellipsis")),
		Format:  DetectFormat(text(container.Find(".match-meta"))),
		URL:     e.absoluteURL(href),
	}

	// Map score cells read "(1)" while the map is in progress.
	mapScores := container.Find(".map-score")
	if mapScores.Length() >= 2 {
		m.Team1MapScore = atoi(strings.Trim(text(mapScores.Eq(0)), "()"))
		m.Team2MapScore = atoi(strings.Trim(text(mapScores.Eq(1)), "()"))
	}

	roundScores := container.Find(".current-map-score")
	if roundScores.Length() >= 2 {
		m.Team1RoundScore = atoi(text(roundScores.Eq(0)))
		m.Team2RoundScore = atoi(text(roundScores.Eq(1)))
	}

	return m, true
}

// ParseLiveDetail reads a match page and infers the authoritative live
// state from the per-map scores. The listing-level snapshot supplies
// identity fields; format falls back to the listing value when the page
// carries none.
func (e *Extractor) ParseLiveDetail(html string, listed domain.LiveMatch) (*domain.LiveMatch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse live match page: %w", err)
	}

	var maps []MapScore
	doc.Find(".mapholder").Each(func(_ int, mh *goquery.Selection) {
		scores := mh.Find(".results-team-score")
		if scores.Length() < 2 {
			return
		}
		maps = append(maps, MapScore{
			Name:   text(mh.Find(".mapname")),
			Score1: text(scores.Eq(0)),
			Score2: text(scores.Eq(1)),
		})
	})

	state := InferMapState(maps)

	format := DetectFormat(text(doc.Find(".preformatted-text")))
	if format == domain.FormatUnknown {
		format = listed.Format
	}

	return &domain.LiveMatch{
		MatchID:         listed.MatchID,
		Team1:           listed.Team1,
		Team2:           listed.Team2,
		Team1MapScore:   state.Team1MapsWon,
		Team2MapScore:   state.Team2MapsWon,
		CurrentMap:      state.CurrentMap,
		Team1RoundScore: state.Team1RoundScore,
		Team2RoundScore: state.Team2RoundScore,
		Event:           listed.Event,
		Format:          format,
		URL:             listed.URL,
	}, nil
}
