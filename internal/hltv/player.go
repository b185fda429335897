package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParsePlayerProfile extracts a player's stats summary page. Returns
// ErrNotFound when the nickname is unresolvable. Stat boxes are matched by
// their lowercase label; absent or non-numeric values stay 0.
func (e *Extractor) ParsePlayerProfile(html, playerID string) (*domain.PlayerProfile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse player page: %w", err)
	}

	nickname := text(doc.Find(".summaryNickname"))
	if nickname == "" {
		return nil, domain.ErrNotFound
	}

	stats := map[string]string{}
	doc.Find(".summaryStatBreakdownDataValue").Each(func(_ int, value *goquery.Selection) {
		label := value.Parent().Find(".summaryStatBreakdownSubHeader").First()
		if label.Length() == 0 {
			label = value.Siblings().Filter(".summaryStatBreakdownSubHeader").First()
		}
		if name := strings.ToLower(text(label)); name != "" {
			stats[name] = text(value)
		}
	})

	return &domain.PlayerProfile{
		PlayerID: playerID,
		Nickname: nickname,
		Name:     text(doc.Find(".summaryRealname")),
		Team:     text(doc.Find(".SummaryTeamname a")),
		Rating:   looseFloat(stats["rating 2.0"]),
		DPR:      looseFloat(stats["deaths / round"]),
		KAST:     looseFloat(stats["kast"]),
		Impact:   looseFloat(stats["impact"]),
		ADR:      looseFloat(stats["damage / round"]),
		KPR:      looseFloat(stats["kills / round"]),
	}, nil
}
