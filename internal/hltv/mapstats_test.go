package hltv

import (
	"errors"
	"fmt"
	"testing"

	"hltv-tracker/internal/domain"
)

// statsRow renders a full 18-column scoreboard row.
func statsRow(nick, openingKD, kast, clutch, kHS, assists, deaths, adr, rating string) string {
	return fmt.Sprintf(`<tr>
	<td><a>%s</a></td>
	<td>%s</td><td>2:1</td><td>3</td>
	<td>%s</td><td>70%%</td>
	<td>%s</td>
	<td>%s</td><td>20 (8)</td>
	<td>%s</td>
	<td>%s</td><td>13 (2)</td>
	<td>%s</td><td>80.0</td>
	<td>71%%</td><td>70%%</td><td>+2.1</td>
	<td>%s</td>
	</tr>`, nick, openingKD, kast, clutch, kHS, assists, deaths, adr, rating)
}

func statsPage(team1Rows, team2Rows string) string {
	return fmt.Sprintf(`<html><body>
	<table class="stats-table totalstats">
	<thead><tr><th>Astralis</th></tr></thead>
	<tbody>%s</tbody>
	</table>
	<table class="stats-table totalstats">
	<thead><tr><th>NIP</th></tr></thead>
	<tbody>%s</tbody>
	</table>
	</body></html>`, team1Rows, team2Rows)
}

func TestParseMapStats(t *testing.T) {
	t.Parallel()

	page := statsPage(
		statsRow("device", "4:2", "74.5%", "1v2 (1)", "21 (9)", "5 (2)", "14 (3)", "83,2", "1.19"),
		statsRow("REZ", "1:3", "68%", "-", "15 (4)", "3", "18 (5)", "71.0", "0.94"),
	)

	stats, err := testExtractor().ParseMapStats(page)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if stats.Team1.Name != "Astralis" || stats.Team2.Name != "NIP" {
		t.Fatalf("team names = %q/%q", stats.Team1.Name, stats.Team2.Name)
	}
	if len(stats.Team1.Players) != 1 || len(stats.Team2.Players) != 1 {
		t.Fatalf("player counts = %d/%d", len(stats.Team1.Players), len(stats.Team2.Players))
	}

	p := stats.Team1.Players[0]
	if p.Nickname != "device" {
		t.Fatalf("nickname = %q", p.Nickname)
	}
	if p.Kills != 21 || p.Headshots != 9 {
		t.Fatalf("kills/headshots = %d/%d, want 21/9", p.Kills, p.Headshots)
	}
	if p.Assists != 5 || p.Deaths != 14 {
		t.Fatalf("assists/deaths = %d/%d, want 5/14", p.Assists, p.Deaths)
	}
	if p.FirstKills != 4 || p.FirstDeaths != 2 {
		t.Fatalf("opening duels = %d:%d, want 4:2", p.FirstKills, p.FirstDeaths)
	}
	if p.KAST != 74.5 {
		t.Fatalf("kast = %v, want 74.5", p.KAST)
	}
	if p.ADR != 83.2 {
		t.Fatalf("adr = %v, want 83.2 (comma decimal normalized)", p.ADR)
	}
	if p.Rating != 1.19 {
		t.Fatalf("rating = %v, want 1.19", p.Rating)
	}
	if p.Clutches != "1v2 (1)" {
		t.Fatalf("clutch notation = %q, want verbatim", p.Clutches)
	}
	if p.Team != "Astralis" {
		t.Fatalf("team = %q", p.Team)
	}
}

func TestParseMapStats_MalformedADRDoesNotPoisonRow(t *testing.T) {
	t.Parallel()

	page := statsPage(
		statsRow("device", "4:2", "74.5%", "-", "21 (9)", "5", "14", "n/a", "1.19")+
			statsRow("blameF", "2:2", "71%", "-", "18 (6)", "4", "16", "77.7", "1.05"),
		statsRow("REZ", "1:3", "68%", "-", "15 (4)", "3", "18", "71.0", "0.94"),
	)

	stats, err := testExtractor().ParseMapStats(page)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(stats.Team1.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(stats.Team1.Players))
	}

	bad := stats.Team1.Players[0]
	if bad.ADR != 0 {
		t.Fatalf("unparseable adr = %v, want 0", bad.ADR)
	}
	if bad.Kills != 21 || bad.Deaths != 14 || bad.Rating != 1.19 {
		t.Fatalf("sibling fields poisoned: %+v", bad)
	}

	good := stats.Team1.Players[1]
	if good.ADR != 77.7 {
		t.Fatalf("sibling row adr = %v, want 77.7", good.ADR)
	}
}

func TestParseMapStats_ShortRowSkipped(t *testing.T) {
	t.Parallel()

	page := statsPage(
		`<tr><td>ghost</td><td>1:1</td></tr>`+
			statsRow("device", "4:2", "74.5%", "-", "21 (9)", "5", "14", "83.2", "1.19"),
		statsRow("REZ", "1:3", "68%", "-", "15 (4)", "3", "18", "71.0", "0.94"),
	)

	stats, err := testExtractor().ParseMapStats(page)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(stats.Team1.Players) != 1 {
		t.Fatalf("short row not skipped: %d players", len(stats.Team1.Players))
	}
	if stats.Team1.Players[0].Nickname != "device" {
		t.Fatalf("wrong surviving row: %q", stats.Team1.Players[0].Nickname)
	}
}

func TestParseMapStats_NoScoreboard(t *testing.T) {
	t.Parallel()

	_, err := testExtractor().ParseMapStats("<html><body><p>no stats</p></body></html>")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
