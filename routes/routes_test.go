package routes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/config"
	"github.com/Dosada05/tournament-engine/handlers"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

const testSecret = "test-secret"

type stubBracketService struct {
	lastInput services.GenerateScheduleInput
	err       error
}

func (s *stubBracketService) GenerateSchedule(ctx context.Context, input services.GenerateScheduleInput) ([]*models.Match, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Match{{ID: 1, TournamentID: input.TournamentID, Status: models.MatchStatusScheduled}}, nil
}

func (s *stubBracketService) ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	if tournamentID != 1 {
		return nil, services.ErrTournamentNotFound
	}
	return []*models.Match{}, nil
}

type stubMatchService struct {
	err error
}

func (s *stubMatchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	return nil, services.ErrMatchNotFound
}

func (s *stubMatchService) CompleteMatch(ctx context.Context, matchID int, input services.ScoreInput) (*services.CompleteMatchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.CompleteMatchResult{MatchID: matchID, Status: models.MatchStatusCompleted}, nil
}

func (s *stubMatchService) UpdateLiveScore(ctx context.Context, matchID int, input services.ScoreInput) (*models.Match, error) {
	return nil, s.err
}

type stubStandingsService struct{}

func (stubStandingsService) GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	return []models.Standing{{Rank: 1, TeamID: 5, TeamName: "Reds", Points: 3}}, nil
}

func (stubStandingsService) GetTopScorers(ctx context.Context, tournamentID int, limit int) ([]models.ScorerEntry, error) {
	return []models.ScorerEntry{{PlayerName: "Alice", TeamName: "Reds", Goals: limit}}, nil
}

type stubTournamentRepo struct{}

func (stubTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	if id != 1 {
		return nil, repositories.ErrTournamentNotFound
	}
	return &models.Tournament{ID: 1, Name: "Cup", Format: models.FormatKnockout}, nil
}

type stubTeamRepo struct{}

func (stubTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	return []*models.Team{{ID: 5, Name: "Reds"}}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

type testServer struct {
	handler  http.Handler
	brackets *stubBracketService
	matches  *stubMatchService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWTSecretKey:       testSecret,
		CORSAllowedOrigins: []string{"*"},
		RateLimit:          config.RateLimit{Requests: 1000, Window: time.Minute},
	}
	ts := &testServer{brackets: &stubBracketService{}, matches: &stubMatchService{}}
	ts.handler = SetupRoutes(cfg, Handlers{
		Tournament: handlers.NewTournamentHandler(
			services.NewTournamentService(stubTournamentRepo{}, stubTeamRepo{}),
			ts.brackets,
			stubStandingsService{},
		),
		Match:     handlers.NewMatchHandler(ts.matches),
		WebSocket: handlers.NewWebSocketHandler(brackets.NewHub(nil), cfg.CORSAllowedOrigins, nil),
		Health:    handlers.NewHealthHandler(stubPinger{}),
	}, slog.Default())
	return ts
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 5,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{name: "schedule without token", method: http.MethodPost, path: "/api/v1/tournaments/1/schedule"},
		{name: "complete without token", method: http.MethodPost, path: "/api/v1/matches/1/complete"},
		{name: "score with bad signature", method: http.MethodPatch, path: "/api/v1/matches/1/score", token: signedToken(t, "other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, `{"score_a":1,"score_b":0}`, tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGenerateSchedule(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/tournaments/1/schedule", `{"team_ids":[1,2,3,4],"venues":["Arena"]}`, signedToken(t, testSecret))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, decode(t, rec), "matches")
	assert.Equal(t, 1, ts.brackets.lastInput.TournamentID)
	assert.Equal(t, []int{1, 2, 3, 4}, ts.brackets.lastInput.TeamIDs)
	assert.Equal(t, []string{"Arena"}, ts.brackets.lastInput.Venues)
}

func TestGenerateSchedule_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid team count", err: services.ErrInvalidTeamCount, want: http.StatusUnprocessableEntity},
		{name: "team not registered", err: services.ErrTeamNotInTournament, want: http.StatusUnprocessableEntity},
		{name: "unknown tournament", err: services.ErrTournamentNotFound, want: http.StatusNotFound},
		{name: "unexpected", err: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.brackets.err = tt.err

			rec := ts.do(t, http.MethodPost, "/api/v1/tournaments/1/schedule", `{"team_ids":[1,2,3]}`, signedToken(t, testSecret))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCompleteMatch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "ok", want: http.StatusOK},
		{name: "draw in knockout", err: services.ErrDrawNotAllowed, want: http.StatusConflict},
		{name: "winner conflict", err: services.ErrWinnerConflict, want: http.StatusConflict},
		{name: "not ready", err: services.ErrMatchNotReady, want: http.StatusConflict},
		{name: "negative", err: services.ErrNegativeScore, want: http.StatusBadRequest},
		{name: "missing match", err: services.ErrMatchNotFound, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.matches.err = tt.err

			rec := ts.do(t, http.MethodPost, "/api/v1/matches/3/complete", `{"score_a":3,"score_b":1}`, signedToken(t, testSecret))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCompleteMatch_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	token := signedToken(t, testSecret)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/matches/abc/complete", `{"score_a":1,"score_b":0}`, token).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/matches/3/complete", `{"score_a":"one"}`, token).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/v1/matches/3/complete", `{"winner":1}`, token).Code)
}

func TestReadRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/tournaments/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"teams"`)

	rec = ts.do(t, http.MethodGet, "/api/v1/tournaments/2", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/tournaments/1/matches", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/tournaments/1/standings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "standings")

	rec = ts.do(t, http.MethodGet, "/api/v1/tournaments/1/scorers?limit=3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"goals": 3`)

	rec = ts.do(t, http.MethodGet, "/api/v1/tournaments/1/scorers?limit=-1", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/matches/9", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSwaggerPathsAreRouted(t *testing.T) {
	ts := newTestServer(t)
	mux, ok := ts.handler.(chi.Routes)
	require.True(t, ok)

	routed := make(map[string]bool)
	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		routed[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.NotEmpty(t, doc.Paths)

	prefix := strings.TrimSuffix(doc.BasePath, "/")
	for path, operations := range doc.Paths {
		for method := range operations {
			key := strings.ToUpper(method) + " " + prefix + path
			assert.True(t, routed[key], "documented %s is not routed", key)
		}
	}
	assert.True(t, routed["GET /health"])
}
