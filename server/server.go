// Package server exposes a note event store over HTTP/JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/notestore/model"
	"github.com/jsphweid/notestore/store"
	"github.com/rs/cors"
)

// Server owns a store and serializes every access to it behind one mutex,
// since stores are not safe for concurrent use.
type Server struct {
	mu    sync.Mutex
	store store.Store

	log         *slog.Logger
	newID       func() string
	origins     []string
	logDebounce time.Duration
	debounced   func(func())
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithIDFunc sets how ids are minted for posted events that arrive without one.
func WithIDFunc(fn func() string) Option {
	return func(s *Server) { s.newID = fn }
}

func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithLogDebounce sets how long the server waits after the last mutation
// before logging the store size.
func WithLogDebounce(d time.Duration) Option {
	return func(s *Server) { s.logDebounce = d }
}

func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:       st,
		log:         slog.Default(),
		newID:       uuid.NewString,
		origins:     []string{"*"},
		logDebounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.debounced = debounce.New(s.logDebounce)
	return s
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/events", s.handleAdd).Methods(http.MethodPost)
	router.HandleFunc("/events", s.handleUpdate).Methods(http.MethodPatch)
	router.HandleFunc("/events", s.handleDeleteMany).Methods(http.MethodDelete)
	router.HandleFunc("/events", s.handleRange).Methods(http.MethodGet)
	router.HandleFunc("/events/{id}", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/events/{id}", s.handleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	router.Use(s.logRequests)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	})
	return c.Handler(router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// changed schedules a single size report once a burst of mutations settles.
func (s *Server) changed() {
	s.debounced(func() {
		s.mu.Lock()
		n := s.store.Len()
		s.mu.Unlock()
		s.log.Info("store changed", "events", n)
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var events []model.NoteEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode events: "+err.Error())
		return
	}
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = s.newID()
		}
	}

	s.mu.Lock()
	s.store.AddEvents(events)
	s.mu.Unlock()
	s.changed()

	writeJSON(w, http.StatusCreated, events)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patches []model.NoteEventUpdate
	if err := json.NewDecoder(r.Body).Decode(&patches); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode patches: "+err.Error())
		return
	}
	for _, p := range patches {
		if p.ID == "" {
			writeError(w, http.StatusBadRequest, "Every patch needs an id")
			return
		}
	}

	s.mu.Lock()
	s.store.UpdateEvents(patches)
	s.mu.Unlock()
	s.changed()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMany(w http.ResponseWriter, r *http.Request) {
	var body model.DeleteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode ids: "+err.Error())
		return
	}

	s.mu.Lock()
	s.store.DeleteEvents(body.IDs)
	s.mu.Unlock()
	s.changed()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	e, ok := s.store.GetEvent(id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No event with id %q", id))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	s.store.DeleteEvent(id)
	s.mu.Unlock()
	s.changed()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	start, err := tickParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := tickParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	events := s.store.GetEventsByRange(start, end)
	s.mu.Unlock()

	// stable output for clients; the store itself promises no order
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTicks != events[j].StartTicks {
			return events[i].StartTicks < events[j].StartTicks
		}
		return events[i].ID < events[j].ID
	})
	if events == nil {
		events = []model.NoteEvent{}
	}
	writeJSON(w, http.StatusOK, model.RangeResponse{Start: start, End: end, Events: events})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.store.Len()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, model.StatsResponse{Events: n})
}

func tickParam(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q must be an unsigned integer", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}
