package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParseMatches extracts the upcoming/live match listing. Rows without both
// team names are dropped; an empty listing is a valid result.
func (e *Extractor) ParseMatches(html string) ([]domain.MatchSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse matches page: %w", err)
	}

	var matches []domain.MatchSummary
	doc.Find("a.match-teams").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if href == "" {
			return
		}

		team1, ok1 := teamName(link.Find(".team1"))
		team2, ok2 := teamName(link.Find(".team2"))
		if !ok1 || !ok2 {
			e.logger.Debug().Str("href", href).Msg("skipping listing row with empty team names")
			return
		}

		status := domain.StatusScheduled
		if class, _ := link.Attr("class"); strings.Contains(strings.ToLower(class), "live") {
			status = domain.StatusLive
		}

		matches = append(matches, domain.MatchSummary{
			MatchID: matchIDFromHref(href),
			Team1:   team1,
			Team2:   team2,
			Event:   eventFromHref(href),
			Time:    text(link.Parent().Find(".match-time")),
			Status:  status,
			URL:     e.absoluteURL(href),
		})
	})

	return matches, nil
}

// teamName resolves a listing team cell. An absent cell means the slot is
// not announced yet and reads "TBD"; a cell that exists but is empty marks
// a broken row.
func teamName(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "TBD", true
	}
	name := text(sel)
	return name, name != ""
}

// eventFromHref derives a readable event name from the URL slug when the
// listing row has no event element, e.g.
// /matches/2378549/vitality-vs-faze-iem-cologne -> "Vitality Vs Faze Iem Cologne".
func eventFromHref(href string) string {
	parts := strings.Split(href, "/")
	if len(parts) < 4 {
		return ""
	}
	words := strings.Split(strings.Join(parts[3:], "-"), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
