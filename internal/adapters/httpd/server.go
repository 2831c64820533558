// Package httpd is the HTTP driver: it holds the growing answer queue per
// session and replays the stateless engine on every request, mirroring how
// a web front end drives a long-running support case.
package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fernwald/espalier/internal/human"
	"github.com/fernwald/espalier/internal/logging"
	"github.com/fernwald/espalier/pkg/domain"
	"github.com/fernwald/espalier/pkg/ports"
)

// Runner is the engine capability the driver needs.
type Runner interface {
	Run(ctx context.Context, seed domain.Seed, answers []string) (domain.State, error)
}

// Server drives workflow sessions over HTTP.
type Server struct {
	engine Runner
	store  ports.SessionStore
	logger *slog.Logger
}

// NewHandler builds the driver's HTTP handler.
func NewHandler(engine Runner, store ports.SessionStore, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{engine: engine, store: store, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/sessions", s.createSession)
	r.Get("/sessions/{id}", s.getSession)
	r.Post("/sessions/{id}/answers", s.submitAnswer)
	return r
}

type runResponse struct {
	SessionID string       `json:"session_id"`
	Status    string       `json:"status"`
	Awaiting  string       `json:"awaiting,omitempty"`
	Question  string       `json:"question,omitempty"`
	State     domain.State `json:"state"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var seed domain.Seed
	if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if seed.CustomerName == "" || seed.Email == "" || seed.Query == "" {
		s.writeError(w, http.StatusBadRequest, "customer_name, email and query are required")
		return
	}
	if seed.Priority == "" {
		seed.Priority = "high"
	}
	if seed.TicketID == 0 {
		seed.TicketID = 123
	}

	session := &ports.Session{
		ID:        uuid.NewString(),
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
	s.runAndRespond(w, r, session, true)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.runAndRespond(w, r, session, false)
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Answer == "" {
		s.writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	session.Answers = append(session.Answers, body.Answer)
	s.runAndRespond(w, r, session, true)
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*ports.Session, bool) {
	id := chi.URLParam(r, "id")
	session, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.writeError(w, http.StatusNotFound, "session not found")
		} else {
			s.logger.Error("session load failed", "session_id", id, "err", err)
			s.writeError(w, http.StatusInternalServerError, "session store error")
		}
		return nil, false
	}
	return session, true
}

// runAndRespond replays the workflow for the session and reports its
// status. The engine reruns from the seed every time; only the session's
// answer queue persists between calls.
func (s *Server) runAndRespond(w http.ResponseWriter, r *http.Request, session *ports.Session, save bool) {
	state, err := s.engine.Run(r.Context(), session.Seed, session.Answers)
	if err != nil {
		s.logger.Error("workflow run failed", "session_id", session.ID, "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if save {
		if err := s.store.Save(r.Context(), session); err != nil {
			s.logger.Error("session save failed", "session_id", session.ID, "err", err)
			s.writeError(w, http.StatusInternalServerError, "session store error")
			return
		}
	}

	resp := runResponse{SessionID: session.ID, Status: "completed", State: state}
	if ability, suspended := state.Suspended(); suspended {
		resp.Status = "suspended"
		resp.Awaiting = ability
		resp.Question = human.Prompt(state, ability)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("response encoding failed", "session_id", session.ID, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
