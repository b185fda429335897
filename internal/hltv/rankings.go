package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParseRankings extracts the world ranking listing, roster included.
func (e *Extractor) ParseRankings(html string) ([]domain.TeamRankEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rankings page: %w", err)
	}

	var teams []domain.TeamRankEntry
	doc.Find(".ranked-team").Each(func(_ int, div *goquery.Selection) {
		name := text(div.Find(".name"))
		if name == "" {
			e.logger.Debug().Msg("skipping ranking row without team name")
			return
		}

		entry := domain.TeamRankEntry{
			Name:   name,
			Rank:   atoi(strings.TrimPrefix(text(div.Find(".position")), "#")),
			Points: digitsOnly(text(div.Find(".points"))),
			Change: text(div.Find(".change")),
		}
		if entry.Change == "" {
			entry.Change = "-"
		}

		if href, ok := div.Find("a.moreLink").First().Attr("href"); ok {
			entry.TeamID = teamIDFromHref(href)
		}

		div.Find(".lineup-con .player .text-ellipsis").Each(func(_ int, p *goquery.Selection) {
			if nick := text(p); nick != "" {
				entry.Players = append(entry.Players, nick)
			}
		})

		teams = append(teams, entry)
	})

	return teams, nil
}

// teamIDFromHref extracts the id from paths like /team/4608/natus-vincere.
func teamIDFromHref(href string) string {
	parts := strings.Split(strings.TrimSuffix(href, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// digitsOnly parses an integer out of text like "945 points".
func digitsOnly(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return atoi(b.String())
}
