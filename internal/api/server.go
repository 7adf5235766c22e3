// Package api exposes the model over HTTP for front ends that prefer a local
// API to the CLI. The model is single-writer, so every handler serializes
// access through one mutex.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
	"github.com/ajitpratap0/knotbook/internal/storage"
	"github.com/ajitpratap0/knotbook/internal/uniquelist"
)

// Server is an HTTP server that exposes person and wedding operations.
type Server struct {
	mu        sync.Mutex
	mgr       *model.Manager
	store     storage.Storage
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies. store may be
// nil, in which case mutations are kept in memory only.
func NewServer(mgr *model.Manager, store storage.Storage, logger *slog.Logger, authToken string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		mgr:       mgr,
		store:     store,
		logger:    logger,
		authToken: authToken,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check and metrics, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", expvar.Handler())

	mux.HandleFunc("GET /v1/persons", s.auth(s.handleListPersons))
	mux.HandleFunc("POST /v1/persons", s.auth(s.handleAddPerson))
	mux.HandleFunc("PUT /v1/persons", s.auth(s.handleEditPerson))
	mux.HandleFunc("DELETE /v1/persons", s.auth(s.handleDeletePerson))
	mux.HandleFunc("POST /v1/persons/clear-tags", s.auth(s.handleClearTags))

	mux.HandleFunc("GET /v1/weddings", s.auth(s.handleListWeddings))
	mux.HandleFunc("POST /v1/weddings", s.auth(s.handleAddWedding))
	mux.HandleFunc("DELETE /v1/weddings", s.auth(s.handleDeleteWedding))

	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))

	return s.requestID(mux)
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// --- request/response shapes ---

// personPayload is the wire shape of a person in requests.
type personPayload struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Job     string   `json:"job"`
	Tags    []string `json:"tags"`
}

func (p personPayload) toPerson() (models.Person, error) {
	tags := make([]models.Tag, 0, len(p.Tags))
	for _, name := range p.Tags {
		t, err := models.NewTag(name)
		if err != nil {
			return models.Person{}, err
		}
		tags = append(tags, t)
	}
	person := models.NewPerson(p.Name, p.Phone, p.Email, p.Address, p.Job, tags)
	if err := person.Validate(); err != nil {
		return models.Person{}, err
	}
	return person, nil
}

// weddingPayload is the wire shape of a wedding in requests.
type weddingPayload struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
}

func (p weddingPayload) toWedding() (models.Wedding, error) {
	w := models.NewWedding(p.Name, p.Date, p.Venue)
	if err := w.Validate(); err != nil {
		return models.Wedding{}, err
	}
	return w, nil
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pred := model.PersonPredicate(model.ShowAllPersons)
	if kw := keywords(r, "name"); len(kw) > 0 {
		pred = model.NameContainsKeywords(kw)
	} else if kw := keywords(r, "tag"); len(kw) > 0 {
		pred = model.TagContainsKeywords(kw)
	}
	if err := s.mgr.UpdateFilteredPersons(pred); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to filter persons")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"persons": s.mgr.FilteredPersons().Items()})
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req personPayload
	if !s.decode(w, r, &req) {
		return
	}
	person, err := req.toPerson()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mgr.AddPerson(person); err != nil {
		if errors.Is(err, uniquelist.ErrDuplicate) {
			s.writeError(w, http.StatusConflict, "person already exists")
			return
		}
		s.logger.Error("failed to add person", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to add person")
		return
	}
	s.persist(w)
}

// editPersonRequest carries the person to edit and its replacement.
type editPersonRequest struct {
	Target personPayload `json:"target"`
	Edited personPayload `json:"edited"`
}

func (s *Server) handleEditPerson(w http.ResponseWriter, r *http.Request) {
	var req editPersonRequest
	if !s.decode(w, r, &req) {
		return
	}
	target, err := req.Target.toPerson()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	edited, err := req.Edited.toPerson()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Dropped-tag severance works from the stored tag set, not whatever tag
	// set the client echoed back in the target.
	stored, ok := s.findPerson(target)
	if !ok {
		s.writeError(w, http.StatusNotFound, "person not found")
		return
	}
	if err := s.mgr.SetPerson(stored, edited); err != nil {
		s.writePersonMutationError(w, err)
		return
	}
	// Participant references must be swapped before the person view refresh,
	// and memberships for dropped tags severed.
	s.mgr.SyncPersonEdit(stored, edited)
	s.mgr.SyncPersonTagRemoval(edited, removedTags(stored, edited))
	if err := s.mgr.UpdateFilteredPersons(model.ShowAllPersons); err != nil {
		s.logger.Error("failed to refresh person view", "error", err)
	}
	s.persist(w)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	var req personPayload
	if !s.decode(w, r, &req) {
		return
	}
	target, err := req.toPerson()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Sever all tag-derived memberships before the person disappears. The
	// stored tag set is authoritative; the client may send identity fields
	// only.
	stored, ok := s.findPerson(target)
	if !ok {
		s.writeError(w, http.StatusNotFound, "person not found")
		return
	}
	s.mgr.SyncPersonTagRemoval(stored, stored.Tags)
	if err := s.mgr.DeletePerson(stored); err != nil {
		s.writePersonMutationError(w, err)
		return
	}
	s.persist(w)
}

func (s *Server) handleClearTags(w http.ResponseWriter, r *http.Request) {
	var req personPayload
	if !s.decode(w, r, &req) {
		return
	}
	target, err := req.toPerson()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The caller supplies identity fields; operate on the stored person so
	// the full current tag set is cleared.
	stored, ok := s.findPerson(target)
	if !ok {
		s.writeError(w, http.StatusNotFound, "person not found")
		return
	}
	edited, err := s.mgr.ClearAllTags(stored)
	if err != nil {
		s.writePersonMutationError(w, err)
		return
	}
	s.mgr.SyncPersonEdit(stored, edited)
	s.persistValue(w, edited)
}

func (s *Server) handleListWeddings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pred := model.WeddingPredicate(model.ShowAllWeddings)
	if kw := keywords(r, "name"); len(kw) > 0 {
		pred = model.WeddingNameContainsKeywords(kw)
	}
	if err := s.mgr.UpdateFilteredWeddings(pred); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to filter weddings")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"weddings": s.mgr.FilteredWeddings().Items()})
}

func (s *Server) handleAddWedding(w http.ResponseWriter, r *http.Request) {
	var req weddingPayload
	if !s.decode(w, r, &req) {
		return
	}
	wedding, err := req.toWedding()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mgr.AddWedding(wedding); err != nil {
		if errors.Is(err, uniquelist.ErrDuplicate) {
			s.writeError(w, http.StatusConflict, "wedding already exists")
			return
		}
		s.logger.Error("failed to add wedding", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to add wedding")
		return
	}
	s.persist(w)
}

func (s *Server) handleDeleteWedding(w http.ResponseWriter, r *http.Request) {
	var req weddingPayload
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mgr.DeleteWedding(models.Wedding{Name: req.Name}); err != nil {
		if errors.Is(err, uniquelist.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "wedding not found")
			return
		}
		s.logger.Error("failed to delete wedding", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete wedding")
		return
	}
	s.persist(w)
}

// statsResponse is returned by GET /v1/stats.
type statsResponse struct {
	Persons          int `json:"persons"`
	Weddings         int `json:"weddings"`
	Participants     int `json:"participants"`
	FilteredPersons  int `json:"filtered_persons"`
	FilteredWeddings int `json:"filtered_weddings"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := statsResponse{
		Persons:          len(s.mgr.AddressBook().Persons()),
		FilteredPersons:  s.mgr.FilteredPersons().Len(),
		FilteredWeddings: s.mgr.FilteredWeddings().Len(),
	}
	for _, wed := range s.mgr.WeddingBook().Weddings() {
		stats.Weddings++
		stats.Participants += wed.Participants.Len()
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// --- helpers ---

// findPerson returns the stored person weakly equal to target.
func (s *Server) findPerson(target models.Person) (models.Person, bool) {
	for _, p := range s.mgr.AddressBook().Persons() {
		if p.SameIdentity(target) {
			return p, true
		}
	}
	return models.Person{}, false
}

// removedTags returns the tags present on old but absent from edited.
func removedTags(old, edited models.Person) []models.Tag {
	var out []models.Tag
	for _, t := range old.Tags {
		if !edited.HasTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// keywords returns the non-empty comma/space separated values of the query
// parameter.
func keywords(r *http.Request, param string) []string {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil
	}
	return strings.FieldsFunc(raw, func(c rune) bool { return c == ',' || c == ' ' })
}

// decode reads the request body as JSON into v, reporting failures itself.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// persist saves both books after a successful mutation and acknowledges it.
func (s *Server) persist(w http.ResponseWriter) {
	s.persistValue(w, map[string]bool{"ok": true})
}

// persistValue saves both books and writes v as the success body.
func (s *Server) persistValue(w http.ResponseWriter, v any) {
	if s.store != nil {
		if err := s.store.SaveAddressBook(s.mgr.AddressBook()); err != nil {
			s.logger.Error("failed to save address book", "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to save data")
			return
		}
		if err := s.store.SaveWeddingBook(s.mgr.WeddingBook()); err != nil {
			s.logger.Error("failed to save wedding book", "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to save data")
			return
		}
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) writePersonMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, uniquelist.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "person not found")
	case errors.Is(err, uniquelist.ErrDuplicate):
		s.writeError(w, http.StatusConflict, "edit collides with another person")
	default:
		s.logger.Error("person mutation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "person mutation failed")
	}
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
