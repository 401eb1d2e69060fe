// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitScore records a submission when it beats the stored best.
	SubmitScore(ctx context.Context, sub model.Submission) (types.SubmitResult, error)

	// Read operations expose leaderboard data.
	Leaderboard(ctx context.Context, category string, n int) ([]Entry, error)
	Overview(ctx context.Context, n int) (map[string][]Entry, error)
	Categories(ctx context.Context) []string
	History(ctx context.Context, userID int64) (map[string]float64, error)

	// Destructive operations; the admin gate runs before these are reached.
	DeleteScore(ctx context.Context, category string, userID int64) error
	DeleteCategory(ctx context.Context, category string) error
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoresHandler      *ScoresHandler
	leaderboardHandler *LeaderboardHandler
	categoriesHandler  *CategoriesHandler
	historyHandler     *HistoryHandler
	adminToken         string
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int, adminToken string) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scoresHandler:      NewScoresHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		categoriesHandler:  NewCategoriesHandler(deps),
		historyHandler:     NewHistoryHandler(deps),
		adminToken:         adminToken,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scores", RequestIDMiddleware(MetricsMiddleware(s.scoresHandler.HandlePostScore, "scores")))
	mux.HandleFunc("/leaderboard", RequestIDMiddleware(MetricsMiddleware(s.leaderboardHandler.HandleGetOverview, "leaderboard")))
	mux.HandleFunc("/leaderboard/", RequestIDMiddleware(MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard_category")))
	mux.HandleFunc("/categories", RequestIDMiddleware(MetricsMiddleware(s.categoriesHandler.HandleListCategories, "categories")))
	mux.HandleFunc("/categories/", RequestIDMiddleware(MetricsMiddleware(AdminMiddleware(s.adminToken, s.categoriesHandler.HandleDelete), "categories_delete")))
	mux.HandleFunc("/history/", RequestIDMiddleware(MetricsMiddleware(s.historyHandler.HandleGetHistory, "history")))
}

// scoreRequest mirrors the JSON schema for POST /scores.
type scoreRequest struct {
	Category string  `json:"category"`
	UserID   int64   `json:"user_id"`
	Score    float64 `json:"score"`
}

func (r scoreRequest) validate() error {
	switch {
	case r.Category == "":
		return errors.New("missing category")
	case r.UserID == 0:
		return errors.New("missing user_id")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// pathSuffix extracts the path segment after prefix, rejecting nested paths.
func pathSuffix(path, prefix string) (string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
