package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParseMatchDetail extracts a full match page. It returns ErrNotFound when
// not even the team names resolve, which means the page is not a match page.
func (e *Extractor) ParseMatchDetail(html, matchID string) (*domain.MatchDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse match page: %w", err)
	}

	teams := doc.Find(".teamName")
	if teams.Length() < 2 {
		return nil, domain.ErrNotFound
	}

	detail := &domain.MatchDetail{
		MatchID: matchID,
		Team1:   text(teams.Eq(0)),
		Team2:   text(teams.Eq(1)),
		Event:   text(doc.Find(".event a")),
		Date:    text(doc.Find(".date")),
		Format:  DetectFormat(text(doc.Find(".preformatted-text"))),
		Status:  matchStatus(doc),
	}

	scores := doc.Find(".team .won, .team .lost, .team .tie")
	if scores.Length() >= 2 {
		detail.Team1Score = atoi(text(scores.Eq(0)))
		detail.Team2Score = atoi(text(scores.Eq(1)))
	}

	doc.Find(".mapholder").Each(func(_ int, mh *goquery.Selection) {
		detail.Maps = append(detail.Maps, e.parseMapHolder(mh))
	})

	doc.Find(".veto-box .padding").Each(func(_ int, v *goquery.Selection) {
		if line := text(v); line != "" {
			detail.Veto = append(detail.Veto, line)
		}
	})

	return detail, nil
}

func matchStatus(doc *goquery.Document) domain.MatchStatus {
	if doc.Find(".countdown").Length() > 0 {
		return domain.StatusScheduled
	}
	if doc.Find(".liveMatch, .live-match").Length() > 0 {
		return domain.StatusLive
	}
	return domain.StatusFinished
}

func (e *Extractor) parseMapHolder(mh *goquery.Selection) domain.MapResult {
	result := domain.MapResult{
		MapName: text(mh.Find(".mapname")),
	}
	if result.MapName == "" {
		result.MapName = "Unknown"
	}

	scores := mh.Find(".results-team-score")
	if scores.Length() > 0 {
		result.Team1Score = atoi(text(scores.Eq(0)))
	}
	if scores.Length() > 1 {
		result.Team2Score = atoi(text(scores.Eq(1)))
	}

	e.parseHalfScores(mh, &result)

	if stats := mh.Find("a[href*='mapstatsid']").First(); stats.Length() > 0 {
		if href, ok := stats.Attr("href"); ok {
			result.StatsURL = e.absoluteURL(href)
		}
	}

	return result
}

// parseHalfScores fills the CT/T split from the half-score spans, which read
// like (<span class="ct">9</span>:<span class="t">3</span>; ...). Spans come
// in team1/team2 pairs per half; an unexpected shape leaves zeros.
func (e *Extractor) parseHalfScores(mh *goquery.Selection, result *domain.MapResult) {
	spans := mh.Find(".results-center-half-score span").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass("ct") || s.HasClass("t")
	})
	if spans.Length() < 4 {
		return
	}

	assign := func(span *goquery.Selection, team1 bool) {
		score := atoi(text(span))
		switch {
		case team1 && span.HasClass("ct"):
			result.Team1CT += score
		case team1:
			result.Team1T += score
		case span.HasClass("ct"):
			result.Team2CT += score
		default:
			result.Team2T += score
		}
	}

	for i := 0; i+1 < spans.Length(); i += 2 {
		assign(spans.Eq(i), true)
		assign(spans.Eq(i+1), false)
	}
}
