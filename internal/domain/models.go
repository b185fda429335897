package domain

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

type MatchFormat string

const (
	FormatBo1     MatchFormat = "bo1"
	FormatBo3     MatchFormat = "bo3"
	FormatBo5     MatchFormat = "bo5"
	FormatUnknown MatchFormat = ""
)

// MatchSummary is one row of the upcoming/live matches listing. MatchID may
// be empty when the listing markup carries no usable link; callers treat an
// empty id as "no detail available".
type MatchSummary struct {
	MatchID string      `json:"match_id"`
	Team1   string      `json:"team1"`
	Team2   string      `json:"team2"`
	Event   string      `json:"event"`
	Time    string      `json:"time"`
	Status  MatchStatus `json:"status"`
	URL     string      `json:"url"`
}

// LiveMatch is an immutable snapshot of an in-progress match. It is replaced
// wholesale on re-fetch, never patched in place.
type LiveMatch struct {
	MatchID         string      `json:"match_id"`
	Team1           string      `json:"team1"`
	Team2           string      `json:"team2"`
	Team1MapScore   int         `json:"team1_map_score"`
	Team2MapScore   int         `json:"team2_map_score"`
	CurrentMap      string      `json:"current_map"`
	Team1RoundScore int         `json:"team1_round_score"`
	Team2RoundScore int         `json:"team2_round_score"`
	Event           string      `json:"event"`
	Format          MatchFormat `json:"format"`
	URL             string      `json:"url"`

	// Side/phase and per-player states are only populated by providers
	// whose payload carries them (bo3gg).
	Team1Side  string       `json:"team1_side,omitempty"`
	Team2Side  string       `json:"team2_side,omitempty"`
	RoundPhase string       `json:"round_phase,omitempty"`
	Players    []LivePlayer `json:"players,omitempty"`
}

// LivePlayer is a per-player in-round state from a structured live provider.
type LivePlayer struct {
	Nickname string  `json:"nickname"`
	Team     string  `json:"team"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Assists  int     `json:"assists"`
	Health   int     `json:"health"`
	IsAlive  bool    `json:"is_alive"`
	Rating   float64 `json:"rating"`
}

type MapResult struct {
	MapName    string `json:"map_name"`
	Team1Score int    `json:"team1_score"`
	Team2Score int    `json:"team2_score"`
	Team1CT    int    `json:"team1_ct_score"`
	Team1T     int    `json:"team1_t_score"`
	Team2CT    int    `json:"team2_ct_score"`
	Team2T     int    `json:"team2_t_score"`
	StatsURL   string `json:"stats_url"`
}

type MatchDetail struct {
	MatchID    string      `json:"match_id"`
	Team1      string      `json:"team1"`
	Team2      string      `json:"team2"`
	Team1Score int         `json:"team1_score"`
	Team2Score int         `json:"team2_score"`
	Event      string      `json:"event"`
	Date       string      `json:"date"`
	Status     MatchStatus `json:"status"`
	Format     MatchFormat `json:"format"`
	Maps       []MapResult `json:"maps"`
	Veto       []string    `json:"veto"`
	URL        string      `json:"url"`
}

// PlayerStatLine is one scoreboard row. Duplicate nicknames across teams are
// legal and never merged.
type PlayerStatLine struct {
	Nickname    string  `json:"nickname"`
	Team        string  `json:"team"`
	Kills       int     `json:"kills"`
	Deaths      int     `json:"deaths"`
	Assists     int     `json:"assists"`
	ADR         float64 `json:"adr"`
	KAST        float64 `json:"kast"`
	Rating      float64 `json:"rating"`
	Headshots   int     `json:"headshots"`
	FirstKills  int     `json:"first_kills"`
	FirstDeaths int     `json:"first_deaths"`
	Clutches    string  `json:"clutches"`
}

type TeamMapStats struct {
	Name    string           `json:"name"`
	Players []PlayerStatLine `json:"players"`
}

type MapStats struct {
	Team1 TeamMapStats `json:"team1"`
	Team2 TeamMapStats `json:"team2"`
}

type MatchResult struct {
	MatchID string `json:"match_id"`
	Team1   string `json:"team1"`
	Team2   string `json:"team2"`
	Score1  int    `json:"score1"`
	Score2  int    `json:"score2"`
	Event   string `json:"event"`
	Winner  string `json:"winner"`
	URL     string `json:"url"`
}

type TeamRankEntry struct {
	TeamID  string   `json:"team_id"`
	Name    string   `json:"name"`
	Rank    int      `json:"rank"`
	Points  int      `json:"points"`
	Change  string   `json:"change"`
	Players []string `json:"players"`
}

// PlayerProfile aggregates a player's career stat summary. Numeric fields
// default to 0 when the source text is absent or non-numeric.
type PlayerProfile struct {
	PlayerID string  `json:"player_id"`
	Nickname string  `json:"nickname"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Rating   float64 `json:"rating"`
	DPR      float64 `json:"dpr"`
	KAST     float64 `json:"kast"`
	Impact   float64 `json:"impact"`
	ADR      float64 `json:"adr"`
	KPR      float64 `json:"kpr"`
}
