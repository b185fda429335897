package live

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const bo3ggBaseURL = "https://api.bo3.gg/api/v1"

// BO3ggProvider reads the bo3.gg structured live API. Its payload is richer
// than the scraped source: per-round scores, team sides and, when the
// snapshot call succeeds, per-player live states.
type BO3ggProvider struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewBO3ggProvider(logger zerolog.Logger) *BO3ggProvider {
	return &BO3ggProvider{
		baseURL: bo3ggBaseURL,
		client: &fasthttp.Client{
			ReadTimeout:         constants.ProviderTimeout,
			WriteTimeout:        constants.ProviderTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

type bo3ggTeam struct {
	Name string `json:"name"`
}

type bo3ggSideScore struct {
	GameScore int    `json:"game_score"`
	Side      string `json:"side"`
}

type bo3ggLiveUpdates struct {
	MapName    string         `json:"map_name"`
	Team1      bo3ggSideScore `json:"team_1"`
	Team2      bo3ggSideScore `json:"team_2"`
	RoundPhase string         `json:"round_phase"`
}

type bo3ggMatch struct {
	ID         int               `json:"id"`
	Team1      bo3ggTeam         `json:"team1"`
	Team2      bo3ggTeam         `json:"team2"`
	Team1Score int               `json:"team1_score"`
	Team2Score int               `json:"team2_score"`
	Tournament bo3ggTeam         `json:"tournament"`
	BoType     int               `json:"bo_type"`
	Live       *bo3ggLiveUpdates `json:"live_updates"`
}

type bo3ggMatchesResponse struct {
	Results []bo3ggMatch `json:"results"`
}

type bo3ggPlayerState struct {
	Nickname string  `json:"nickname"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Assists  int     `json:"assists"`
	Health   int     `json:"health"`
	IsAlive  bool    `json:"is_alive"`
	Rating   float64 `json:"rating"`
}

type bo3ggSnapshotTeam struct {
	Name         string             `json:"name"`
	PlayerStates []bo3ggPlayerState `json:"player_states"`
}

type bo3ggSnapshot struct {
	TeamOne bo3ggSnapshotTeam `json:"team_one"`
	TeamTwo bo3ggSnapshotTeam `json:"team_two"`
}

func (p *BO3ggProvider) LiveMatches(ctx context.Context) ([]domain.LiveMatch, error) {
	var resp bo3ggMatchesResponse
	if err := p.getJSON(ctx, p.baseURL+"/matches/live", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch bo3gg live matches: %w", err)
	}

	matches := make([]domain.LiveMatch, 0, len(resp.Results))
	for _, m := range resp.Results {
		live := domain.LiveMatch{
			MatchID:       strconv.Itoa(m.ID),
			Team1:         m.Team1.Name,
			Team2:         m.Team2.Name,
			Team1MapScore: m.Team1Score,
			Team2MapScore: m.Team2Score,
			Event:         m.Tournament.Name,
			Format:        boTypeFormat(m.BoType),
		}
		if m.Live != nil {
			live.CurrentMap = m.Live.MapName
			live.Team1RoundScore = m.Live.Team1.GameScore
			live.Team2RoundScore = m.Live.Team2.GameScore
			live.Team1Side = m.Live.Team1.Side
			live.Team2Side = m.Live.Team2.Side
			live.RoundPhase = m.Live.RoundPhase
		}
		matches = append(matches, live)
	}

	return matches, nil
}

func (p *BO3ggProvider) MatchLiveData(ctx context.Context, matchID, _ string) (*domain.LiveMatch, error) {
	matches, err := p.LiveMatches(ctx)
	if err != nil {
		return nil, err
	}

	for i := range matches {
		if matches[i].MatchID != matchID {
			continue
		}
		m := matches[i]

		// The detailed snapshot is best effort; the match state is
		// complete without it.
		var snapshot bo3ggSnapshot
		if err := p.getJSON(ctx, fmt.Sprintf("%s/matches/%s/snapshot", p.baseURL, matchID), &snapshot); err != nil {
			p.logger.Debug().Err(err).Str("match_id", matchID).Msg("bo3gg snapshot unavailable")
		} else {
			m.Players = snapshotPlayers(snapshot)
		}
		return &m, nil
	}

	return nil, domain.ErrNotFound
}

func (p *BO3ggProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func snapshotPlayers(s bo3ggSnapshot) []domain.LivePlayer {
	var players []domain.LivePlayer
	for _, team := range []bo3ggSnapshotTeam{s.TeamOne, s.TeamTwo} {
		for _, ps := range team.PlayerStates {
			players = append(players, domain.LivePlayer{
				Nickname: ps.Nickname,
				Team:     team.Name,
				Kills:    ps.Kills,
				Deaths:   ps.Deaths,
				Assists:  ps.Assists,
				Health:   ps.Health,
				IsAlive:  ps.IsAlive,
				Rating:   ps.Rating,
			})
		}
	}
	return players
}

func boTypeFormat(boType int) domain.MatchFormat {
	switch boType {
	case 5:
		return domain.FormatBo5
	case 3:
		return domain.FormatBo3
	case 1:
		return domain.FormatBo1
	default:
		return domain.FormatUnknown
	}
}

func (p *BO3ggProvider) getJSON(ctx context.Context, url string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(constants.ProviderTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("bo3gg API error: %d", resp.StatusCode())
	}
	return json.Unmarshal(resp.Body(), out)
}
