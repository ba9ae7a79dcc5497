// Package apitest provides an in-memory stand-in for the admin API, for use
// in tests. It records every request it receives.
package apitest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"haloradio-admin/pkg/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Call is one recorded request
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Failure makes the next request to a route fail
type Failure struct {
	Status  int    // HTTP status; 0 means 200
	Message string // when set, answered as {ok:false,error:Message}
	Raw     string // when Message is empty, written verbatim as the body
}

// Server is the fake admin API
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	items     []models.PlaylistItem
	requests  []models.SongRequest
	schedules []models.Schedule
	chat      []models.ChatMessage
	calls     []Call
	failures  map[string]Failure // key: "METHOD pattern"
}

// NewServer starts a fake admin API seeded with items
func NewServer(items ...models.PlaylistItem) *Server {
	s := &Server{
		items:    append([]models.PlaylistItem(nil), items...),
		failures: make(map[string]Failure),
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/api/admin/playlist", s.handleList)
	r.Post("/api/admin/playlist", s.handleAdd)
	r.Post("/api/admin/playlist/reorder", s.handleReorder)
	r.Get("/api/admin/playlist/csv", s.handleExport)
	r.Post("/api/admin/playlist/csv", s.handleImport)
	r.Delete("/api/admin/playlist/{id}", s.handleDelete)

	r.Get("/api/admin/requests", s.handleListRequests)
	r.Get("/api/admin/requests/new_count", s.handleNewCount)
	r.Post("/api/admin/requests/{id}/status", s.handleRequestStatus)
	r.Get("/api/admin/schedules", s.handleListSchedules)
	r.Post("/api/admin/schedules", s.handleAddSchedule)
	r.Delete("/api/admin/schedules/{id}", s.handleDeleteSchedule)
	r.Get("/api/admin/chat", s.handleListChat)
	r.Delete("/api/admin/chat/{id}", s.handleDeleteChat)

	s.Server = httptest.NewServer(r)
	return s
}

// FailNext arranges for the next request matching method and route pattern
// (e.g. "POST", "/api/admin/playlist/reorder") to fail.
func (s *Server) FailNext(method, pattern string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+pattern] = f
}

// Calls returns a copy of the recorded requests
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded requests for one method and path
func (s *Server) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets recorded requests
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Items returns a copy of the stored playlist
func (s *Server) Items() []models.PlaylistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PlaylistItem(nil), s.items...)
}

// SetItems replaces the stored playlist, e.g. to simulate another admin
func (s *Server) SetItems(items []models.PlaylistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.PlaylistItem(nil), items...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// takeFailure pops a queued failure for the current route
func (s *Server) takeFailure(w http.ResponseWriter, r *http.Request) bool {
	key := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()

	s.mu.Lock()
	f, ok := s.failures[key]
	delete(s.failures, key)
	s.mu.Unlock()
	if !ok {
		return false
	}

	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	if f.Message != "" {
		writeJSON(w, status, models.Envelope{OK: false, Error: f.Message})
		return true
	}
	w.WriteHeader(status)
	io.WriteString(w, f.Raw)
	return true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, models.PlaylistListResponse{Items: s.Items()})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}

	var entry models.PlaylistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "Invalid JSON"})
		return
	}

	s.mu.Lock()
	s.items = append(s.items, models.PlaylistItem{
		ID:        uuid.NewString(),
		Day:       entry.Day,
		StartHHMM: entry.StartHHMM,
		EndHHMM:   entry.EndHHMM,
		Program:   entry.Program,
		Tracks:    entry.Tracks,
		SortKey:   s.nextSortKeyLocked(entry.Day),
	})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.Envelope{OK: true})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			writeJSON(w, http.StatusOK, models.Envelope{OK: true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.Envelope{Error: "Item tidak ditemukan."})
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}

	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "Invalid JSON"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for pos, id := range req.IDs {
		for i := range s.items {
			if s.items[i].ID == id && s.items[i].Day == req.Day {
				s.items[i].SortKey = float64((pos + 1) * 10)
			}
		}
	}
	writeJSON(w, http.StatusOK, models.Envelope{OK: true})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}

	items := s.Items()
	sort.SliceStable(items, func(i, j int) bool { return items[i].Day < items[j].Day })

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="playlist.csv"`)
	cw := csv.NewWriter(w)
	cw.Write([]string{"day", "start_hhmm", "end_hhmm", "program", "tracks"})
	for _, it := range items {
		cw.Write([]string{strconv.Itoa(it.Day), it.StartHHMM, it.EndHHMM, it.Program, it.Tracks})
	}
	cw.Flush()
}

// handleImport inserts every row; rows matching an existing day+start are
// updated instead. mode "replace" clears the playlist first.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "File CSV wajib diunggah."})
		return
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: fmt.Sprintf("CSV tidak valid: %v", err)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r.FormValue("mode") == "replace" {
		s.items = nil
	}

	inserted, updated := 0, 0
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue
		}
		day, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		if idx := s.findLocked(day, row[1]); idx >= 0 {
			s.items[idx].EndHHMM, s.items[idx].Program, s.items[idx].Tracks = row[2], row[3], row[4]
			updated++
			continue
		}
		s.items = append(s.items, models.PlaylistItem{
			ID: uuid.NewString(), Day: day, StartHHMM: row[1], EndHHMM: row[2],
			Program: row[3], Tracks: row[4], SortKey: s.nextSortKeyLocked(day),
		})
		inserted++
	}

	writeJSON(w, http.StatusOK, models.Envelope{OK: true, Inserted: inserted, Updated: updated})
}

func (s *Server) findLocked(day int, start string) int {
	for i, it := range s.items {
		if it.Day == day && it.StartHHMM == start {
			return i
		}
	}
	return -1
}

func (s *Server) nextSortKeyLocked(day int) float64 {
	var max float64
	for _, it := range s.items {
		if it.Day == day && it.SortKey > max {
			max = it.SortKey
		}
	}
	return max + 10
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
