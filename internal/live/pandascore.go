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

const pandaScoreBaseURL = "https://api.pandascore.co"

// PandaScoreProvider reads the quota-constrained PandaScore REST API. The
// free tier has no per-match detail endpoint, so MatchLiveData degenerates
// to a scan of the running-matches listing.
type PandaScoreProvider struct {
	baseURL string
	token   string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewPandaScoreProvider(token string, logger zerolog.Logger) *PandaScoreProvider {
	return &PandaScoreProvider{
		baseURL: pandaScoreBaseURL,
		token:   token,
		client: &fasthttp.Client{
			ReadTimeout:         constants.ProviderTimeout,
			WriteTimeout:        constants.ProviderTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

type pandaOpponentWrap struct {
	Opponent struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"opponent"`
}

type pandaResult struct {
	TeamID int `json:"team_id"`
	Score  int `json:"score"`
}

type pandaGame struct {
	Status string `json:"status"`
	Map    *struct {
		Name string `json:"name"`
	} `json:"map"`
}

type pandaMatch struct {
	ID            int                 `json:"id"`
	Opponents     []pandaOpponentWrap `json:"opponents"`
	Results       []pandaResult       `json:"results"`
	Games         []pandaGame         `json:"games"`
	NumberOfGames int                 `json:"number_of_games"`
	League        struct {
		Name string `json:"name"`
	} `json:"league"`
}

func (p *PandaScoreProvider) LiveMatches(ctx context.Context) ([]domain.LiveMatch, error) {
	if p.token == "" {
		p.logger.Warn().Msg("pandascore token not configured")
		return nil, nil
	}

	var running []pandaMatch
	if err := p.getJSON(ctx, p.baseURL+"/csgo/matches/running", &running); err != nil {
		return nil, fmt.Errorf("failed to fetch pandascore running matches: %w", err)
	}

	matches := make([]domain.LiveMatch, 0, len(running))
	for _, m := range running {
		matches = append(matches, p.toLiveMatch(m))
	}
	return matches, nil
}

func (p *PandaScoreProvider) toLiveMatch(m pandaMatch) domain.LiveMatch {
	live := domain.LiveMatch{
		MatchID: strconv.Itoa(m.ID),
		Team1:   "TBD",
		Team2:   "TBD",
		Event:   m.League.Name,
		Format:  boTypeFormat(m.NumberOfGames),
	}

	if len(m.Opponents) > 0 {
		live.Team1 = m.Opponents[0].Opponent.Name
	}
	if len(m.Opponents) > 1 {
		live.Team2 = m.Opponents[1].Opponent.Name
	}

	for _, r := range m.Results {
		switch {
		case len(m.Opponents) > 0 && r.TeamID == m.Opponents[0].Opponent.ID:
			live.Team1MapScore = r.Score
		case len(m.Opponents) > 1 && r.TeamID == m.Opponents[1].Opponent.ID:
			live.Team2MapScore = r.Score
		}
	}

	// Round scores are not exposed on this tier; only the running map name.
	for _, g := range m.Games {
		if g.Status == "running" && g.Map != nil {
			live.CurrentMap = g.Map.Name
			break
		}
	}

	return live
}

func (p *PandaScoreProvider) MatchLiveData(ctx context.Context, matchID, _ string) (*domain.LiveMatch, error) {
	matches, err := p.LiveMatches(ctx)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].MatchID == matchID {
			return &matches[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (p *PandaScoreProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func (p *PandaScoreProvider) getJSON(ctx context.Context, url string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	deadline := time.Now().Add(constants.ProviderTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("pandascore API error: %d", resp.StatusCode())
	}
	return json.Unmarshal(resp.Body(), out)
}
