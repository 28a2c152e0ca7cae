// ABOUTME: HTTP JSON API exposing per-session metadata containers
// ABOUTME: One session per processing pass, queryable across sessions

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nainya/metastore/internal/logger"
	"github.com/nainya/metastore/internal/metrics"
	"github.com/nainya/metastore/pkg/dateutil"
	"github.com/nainya/metastore/pkg/metadata"
)

// session pairs one container with the mutex that serializes access to
// it. The container itself is single-owner and unsynchronized; handlers
// run on separate goroutines, so every container read or mutation must
// hold mu.
type session struct {
	mu sync.Mutex
	md *metadata.Metadata
}

// Server manages metadata containers keyed by session ID and exposes
// them over an HTTP JSON API. The session map is guarded by mu; each
// container is guarded by its own session mutex.
type Server struct {
	mu       sync.RWMutex
	sessions map[string]*session

	http    *http.Server
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewServer creates the API server listening on addr.
func NewServer(addr string, log *logger.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		sessions: make(map[string]*session),
		log:      log,
		metrics:  m,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /v1/sessions/query", s.handleQuerySessions)
	mux.HandleFunc("GET /v1/sessions/{id}", s.handleDumpSession)
	mux.HandleFunc("DELETE /v1/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /v1/sessions/{id}/values", s.handlePostValue)
	mux.HandleFunc("GET /v1/sessions/{id}/values", s.handleGetValues)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      Instrument(mux, m, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the instrumented HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start starts the API server and blocks until shutdown.
func (s *Server) Start() error {
	s.log.LogServerReady(s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.LogServerShutdown()
	return s.http.Shutdown(ctx)
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &session{md: metadata.New()}
	s.mu.Unlock()

	s.metrics.SessionsCreatedTotal.Inc()
	s.metrics.SessionsLive.Inc()
	s.log.SessionLogger(id).Info("Session created").Send()

	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) handleDumpSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	sess.mu.Lock()
	dump := make(map[string][]string)
	for _, name := range sess.md.Names() {
		dump[name] = sess.md.GetValues(name)
	}
	size := sess.md.Size()
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"size":       size,
		"values":     dump,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	// In-flight handlers may still hold the session
	sess.mu.Lock()
	size := sess.md.Size()
	sess.mu.Unlock()

	s.metrics.RecordSessionEnd(size)
	s.log.SessionLogger(id).Info("Session discarded").Int("names", size).Send()
	w.WriteHeader(http.StatusNoContent)
}

type valueRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Mode  string `json:"mode"` // "add" (default) or "set"
}

func (s *Server) handlePostValue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = "add"
	}

	sess.mu.Lock()
	err := s.apply(sess.md, mode, req.Name, req.Value)
	sess.mu.Unlock()
	s.log.LogContainerOp(id, mode, req.Name, err)

	var pte *metadata.PropertyTypeError
	switch {
	case errors.As(err, &pte):
		s.metrics.RecordContainerOp(mode, "rejected")
		writeError(w, http.StatusConflict, pte.Error())
	case err != nil:
		s.metrics.RecordContainerOp(mode, "error")
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.metrics.RecordContainerOp(mode, "ok")
		w.WriteHeader(http.StatusNoContent)
	}
}

// apply routes the mutation through the typed property layer when the
// name has a registered definition, so declared constraints (the
// single-value guard, composite fan-out) hold over the wire too.
// Values stored under a DATE property are run through the normalizer to
// record how many producer dates arrive unparseable.
func (s *Server) apply(md *metadata.Metadata, mode, name, value string) error {
	p := metadata.PropertyByName(name)
	var err error
	switch mode {
	case "add":
		if p != nil {
			err = md.AddProperty(p, value)
		} else {
			md.Add(name, value)
		}
	case "set":
		if p != nil {
			md.SetProperty(p, value)
		} else {
			md.Set(name, value)
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	if err == nil && p != nil && p.PrimaryProperty().ValueType() == metadata.ValueDate {
		_, ok := dateutil.Parse(value)
		s.metrics.RecordDateParse(ok)
	}
	return err
}

func (s *Server) handleGetValues(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := s.session(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	sess.mu.Lock()
	values := sess.md.GetValues(name)
	multi := sess.md.IsMultiValued(name)
	sess.mu.Unlock()

	if len(values) == 0 {
		writeError(w, http.StatusNotFound, "no values for name")
		return
	}
	s.metrics.RecordContainerOp("get", "ok")
	writeJSON(w, http.StatusOK, map[string]any{
		"name":         name,
		"values":       values,
		"multi_valued": multi,
	})
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	value := r.URL.Query().Get("value")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	// Lock order: s.mu (read) before a session mutex, everywhere
	s.mu.RLock()
	ids := make([]string, 0)
	for id, sess := range s.sessions {
		sess.mu.Lock()
		values := sess.md.GetValues(name)
		sess.mu.Unlock()
		for _, v := range values {
			if value == "" || v == value {
				ids = append(ids, id)
				break
			}
		}
	}
	s.mu.RUnlock()

	s.metrics.RecordContainerOp("query", "ok")
	writeJSON(w, http.StatusOK, map[string]any{"session_ids": ids})
}
