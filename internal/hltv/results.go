package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParseResults extracts the finished-match results listing.
func (e *Extractor) ParseResults(html string) ([]domain.MatchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var results []domain.MatchResult
	doc.Find(".result-con").Each(func(_ int, con *goquery.Selection) {
		link := con.Find("a.a-reset").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")

		teams := con.Find(".team")
		team1, team2 := "TBD", "TBD"
		if teams.Length() > 0 {
			team1 = text(teams.Eq(0))
		}
		if teams.Length() > 1 {
			team2 = text(teams.Eq(1))
		}

		score1, score2 := parseScorePair(text(con.Find(".result-score")))

		winner := team2
		if score1 > score2 {
			winner = team1
		}

		results = append(results, domain.MatchResult{
			MatchID: matchIDFromHref(href),
			Team1:   team1,
			Team2:   team2,
			Score1:  score1,
			Score2:  score2,
			Event:   text(con.Find(".event-name")),
			Winner:  winner,
			URL:     e.absoluteURL(href),
		})
	})

	return results, nil
}

// parseScorePair splits "2 - 1" style text; malformed text yields zeros.
func parseScorePair(s string) (int, int) {
	before, after, found := strings.Cut(s, "-")
	if !found {
		return 0, 0
	}
	return atoi(before), atoi(after)
}
