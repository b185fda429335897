package hltv

import (
	"fmt"
	"strings"

	"hltv-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// Scoreboard column positions. The table carries 18 columns; rows missing
// trailing columns still parse, rows with fewer than minStatColumns are
// skipped.
const (
	colOpeningDuel = 1
	colKAST        = 4
	colClutches    = 6
	colKillsHS     = 7
	colAssists     = 9
	colDeaths      = 10
	colADR         = 12

	minStatColumns = 12
)

// ParseMapStats extracts the per-map scoreboard: one totalstats table per
// team (the CT/T split tables are skipped). Returns ErrNotFound when the
// page has no scoreboard at all.
func (e *Extractor) ParseMapStats(html string) (*domain.MapStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse map stats page: %w", err)
	}

	tables := doc.Find("table.stats-table.totalstats")
	if tables.Length() == 0 {
		return nil, domain.ErrNotFound
	}

	var stats domain.MapStats
	tables.EachWithBreak(func(i int, table *goquery.Selection) bool {
		team := domain.TeamMapStats{
			Name:    text(table.Find("thead th").First()),
			Players: e.parseStatsTable(table),
		}
		if i == 0 {
			stats.Team1 = team
		} else {
			stats.Team2 = team
		}
		return i < 1
	})

	return &stats, nil
}

func (e *Extractor) parseStatsTable(table *goquery.Selection) []domain.PlayerStatLine {
	teamName := text(table.Find("thead th").First())

	var players []domain.PlayerStatLine
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < minStatColumns {
			e.logger.Debug().Int("columns", cols.Length()).Msg("skipping short scoreboard row")
			return
		}

		line := domain.PlayerStatLine{Team: teamName}

		nameCell := cols.Eq(0)
		line.Nickname = text(nameCell.Find("a, .player-nick"))
		if line.Nickname == "" {
			line.Nickname = text(nameCell)
		}

		line.FirstKills, line.FirstDeaths = parseOpeningDuel(text(cols.Eq(colOpeningDuel)))
		line.KAST = looseFloat(text(cols.Eq(colKAST)))
		line.Clutches = text(cols.Eq(colClutches))

		killsCell := text(cols.Eq(colKillsHS))
		line.Kills = intPrefix(killsCell)
		line.Headshots = parenInt(killsCell)

		line.Assists = intPrefix(text(cols.Eq(colAssists)))
		line.Deaths = intPrefix(text(cols.Eq(colDeaths)))

		if cols.Length() > colADR {
			line.ADR = looseFloat(text(cols.Eq(colADR)))
		}
		line.Rating = looseFloat(text(cols.Eq(cols.Length() - 1)))

		players = append(players, line)
	})

	return players
}

// parseOpeningDuel splits the "K:D" opening kill/death cell.
func parseOpeningDuel(s string) (kills, deaths int) {
	before, after, found := strings.Cut(s, ":")
	if !found {
		return 0, 0
	}
	return intPrefix(strings.TrimSpace(before)), intPrefix(strings.TrimSpace(after))
}
