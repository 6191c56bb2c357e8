// Package api serves read-only portfolio data over HTTP: the profile, a random
// dad joke, the snake leaderboard, and per-player progress.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/questfolio/questfolio/internal/jokes"
	"github.com/questfolio/questfolio/internal/profile"
	"github.com/questfolio/questfolio/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
)

// ScoreStore is the subset of storage the API reads from.
type ScoreStore interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	LoadProgress(name string) (storage.PlayerRecord, bool, error)
	PlayerHighScore(gameID, player string) (int, error)
}

// Server handles HTTP requests.
type Server struct {
	profile profile.Profile
	jokes   *jokes.Book
	store   ScoreStore // nil when persistence is disabled
	logger  *log.Logger
	started time.Time
}

// NewServer creates a new API server. store may be nil.
func NewServer(p profile.Profile, book *jokes.Book, store ScoreStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		profile: p,
		jokes:   book,
		store:   store,
		logger:  logger,
		started: time.Now(),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/profile", s.handleProfile)
		r.Get("/joke", s.handleJoke)
		r.Get("/scores", s.handleScores)
		r.Get("/players/{name}", s.handlePlayer)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type healthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Uptime    string `json:"uptime"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Storage:   "enabled",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		RequestID: middleware.GetReqID(r.Context()),
	}
	if s.store == nil {
		resp.Status = "degraded"
		resp.Storage = "disabled"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.profile)
}

func (s *Server) handleJoke(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jokes.Random())
}

type scoresResponse struct {
	Game   string               `json:"game"`
	Scores []storage.ScoreEntry `json:"scores"`
	Stats  *storage.GameStats   `json:"stats"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage disabled")
		return
	}

	limit := defaultScoreLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxScoreLimit)
	}

	scores, err := s.store.TopScores(storage.GameSnake, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	stats, err := s.store.GetGameStats(storage.GameSnake)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}

	writeJSON(w, http.StatusOK, scoresResponse{Game: storage.GameSnake, Scores: scores, Stats: stats})
}

type playerResponse struct {
	storage.PlayerRecord
	BestScore int `json:"best_score"`
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage disabled")
		return
	}

	name := chi.URLParam(r, "name")
	rec, ok, err := s.store.LoadProgress(name)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	best, err := s.store.PlayerHighScore(storage.GameSnake, name)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playerResponse{PlayerRecord: rec, BestScore: best})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
