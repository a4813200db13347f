// Package remotetest runs an in-memory item collaborator for tests.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/idilsaglam/items/internal/model"
)

// Server mimics the collaborator's /api routes. Faults can be injected per route.
type Server struct {
	t   testing.TB
	srv *httptest.Server

	mu           sync.Mutex
	items        []model.Item
	nextID       int64
	listStatus   int
	createStatus int
	healthStatus int
	listBody     []byte
	listGate     chan struct{}
	requestIDs   []string
	calls        map[string]int
}

// New starts a collaborator and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{t: t, nextID: 1, items: []model.Item{}, calls: map[string]int{}}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/items", s.listItems).Methods(http.MethodGet)
	api.HandleFunc("/items", s.createItem).Methods(http.MethodPost)

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// URL is the API base, suitable for remote.New.
func (s *Server) URL() string { return s.srv.URL + "/api" }

// Close stops the server. Later calls fail at the transport level.
func (s *Server) Close() { s.srv.Close() }

// Items returns a copy of the stored collection.
func (s *Server) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.items...)
}

// Seed replaces the stored collection and continues ids after the largest one.
func (s *Server) Seed(items ...model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.Item{}, items...)
	s.nextID = 1
	for _, it := range items {
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
	}
}

// FailList makes GET /items answer with status until reset with 0.
func (s *Server) FailList(status int) { s.set(&s.listStatus, status) }

// FailCreate makes POST /items answer with status until reset with 0.
func (s *Server) FailCreate(status int) { s.set(&s.createStatus, status) }

// FailHealth makes GET /health answer with status until reset with 0.
func (s *Server) FailHealth(status int) { s.set(&s.healthStatus, status) }

// ListBody makes GET /items answer 200 with a raw body until reset with nil.
func (s *Server) ListBody(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listBody = b
}

// HoldList blocks GET /items until the returned release func is called.
// Held requests are released when the test ends.
func (s *Server) HoldList() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.listGate = gate
	s.mu.Unlock()
	var once sync.Once
	release = func() {
		once.Do(func() {
			s.mu.Lock()
			if s.listGate == gate {
				s.listGate = nil
			}
			s.mu.Unlock()
			close(gate)
		})
	}
	s.t.Cleanup(release)
	return release
}

// Calls returns how many requests hit route ("health", "list" or "create").
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// RequestIDs returns every X-Request-ID seen, in arrival order.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) set(field *int, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*field = status
}

func (s *Server) record(route string, r *http.Request) {
	s.calls[route]++
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.record("health", r)
	status := s.healthStatus
	s.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "API is running"})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.record("list", r)
	gate := s.listGate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	s.mu.Lock()
	status, raw := s.listStatus, s.listBody
	items := append([]model.Item{}, s.items...)
	s.mu.Unlock()

	switch {
	case status != 0:
		writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
	case raw != nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	default:
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("create", r)
	if s.createStatus != 0 {
		writeJSON(w, s.createStatus, map[string]string{"detail": http.StatusText(s.createStatus)})
		return
	}

	it := model.Item{ID: s.nextID, IsAvailable: true}
	if body.Name != nil {
		it.Name = *body.Name
	}
	if body.Description != nil {
		it.Description = *body.Description
	}
	if body.Price != nil {
		it.Price = *body.Price
	}
	if body.IsAvailable != nil {
		it.IsAvailable = *body.IsAvailable
	}
	s.items = append(s.items, it)
	s.nextID++
	writeJSON(w, http.StatusOK, it)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
