package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hltv-tracker/internal/domain"
	"hltv-tracker/internal/service"

	"github.com/rs/zerolog"
)

// sourceHint points the caller at the upstream site whenever data cannot be
// served; stale or guessed match data is worse than none.
const sourceHint = "data unavailable, consult https://www.hltv.org directly"

type TrackerServer struct {
	matchSvc   *service.MatchService
	liveSvc    *service.LiveService
	rankingSvc *service.RankingService
	playerSvc  *service.PlayerService
	logger     zerolog.Logger
}

func NewTrackerServer(matchSvc *service.MatchService, liveSvc *service.LiveService, rankingSvc *service.RankingService, playerSvc *service.PlayerService, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{
		matchSvc:   matchSvc,
		liveSvc:    liveSvc,
		rankingSvc: rankingSvc,
		playerSvc:  playerSvc,
		logger:     logger,
	}
}

func (s *TrackerServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/matches", s.handleListMatches)
	mux.HandleFunc("GET /api/v1/matches/live", s.handleListLiveMatches)
	mux.HandleFunc("GET /api/v1/matches/{id}", s.handleGetMatch)
	mux.HandleFunc("GET /api/v1/matches/{id}/live", s.handleGetMatchLive)
	mux.HandleFunc("GET /api/v1/results", s.handleListResults)
	mux.HandleFunc("GET /api/v1/mapstats", s.handleGetMapStats)
	mux.HandleFunc("GET /api/v1/rankings", s.handleListRankings)
	mux.HandleFunc("GET /api/v1/teams/search", s.handleSearchTeam)
	mux.HandleFunc("GET /api/v1/players/{id}", s.handleGetPlayer)
	mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *TrackerServer) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matchSvc.ListMatches(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *TrackerServer) handleListLiveMatches(w http.ResponseWriter, r *http.Request) {
	fetchDetails := r.URL.Query().Get("fetch_details") == "true"

	matches, err := s.liveSvc.ListLiveMatches(r.Context(), fetchDetails)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"provider": s.liveSvc.ProviderName(),
		"matches":  matches,
	})
}

func (s *TrackerServer) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	detail, err := s.matchSvc.GetMatchDetail(r.Context(), r.PathValue("id"), r.URL.Query().Get("url"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *TrackerServer) handleGetMatchLive(w http.ResponseWriter, r *http.Request) {
	match, err := s.liveSvc.GetMatchLiveData(r.Context(), r.PathValue("id"), r.URL.Query().Get("url"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, match)
}

func (s *TrackerServer) handleListResults(w http.ResponseWriter, r *http.Request) {
	max, _ := strconv.Atoi(r.URL.Query().Get("max"))

	results, err := s.matchSvc.ListResults(r.Context(), max)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *TrackerServer) handleGetMapStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.matchSvc.GetMapStats(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *TrackerServer) handleListRankings(w http.ResponseWriter, r *http.Request) {
	max, _ := strconv.Atoi(r.URL.Query().Get("max"))

	rankings, err := s.rankingSvc.ListRankings(r.Context(), max)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"rankings": rankings})
}

func (s *TrackerServer) handleSearchTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.rankingSvc.SearchTeam(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, team)
}

func (s *TrackerServer) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	profile, err := s.playerSvc.GetPlayerInfo(r.Context(), r.PathValue("id"), r.URL.Query().Get("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *TrackerServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"live_provider": s.liveSvc.ProviderName(),
	})
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *TrackerServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrBlocked), errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, map[string]any{
		"error": err.Error(),
		"hint":  sourceHint,
	})
}
