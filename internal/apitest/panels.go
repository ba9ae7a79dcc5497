package apitest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"haloradio-admin/pkg/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SetRequests replaces the stored song requests
func (s *Server) SetRequests(items ...models.SongRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append([]models.SongRequest(nil), items...)
}

// Requests returns a copy of the stored song requests
func (s *Server) Requests() []models.SongRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SongRequest(nil), s.requests...)
}

// SetSchedules replaces the stored broadcast schedules
func (s *Server) SetSchedules(items ...models.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = append([]models.Schedule(nil), items...)
}

// Schedules returns a copy of the stored broadcast schedules
func (s *Server) Schedules() []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Schedule(nil), s.schedules...)
}

// SetChat replaces the stored chat messages
func (s *Server) SetChat(items ...models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append([]models.ChatMessage(nil), items...)
}

// Chat returns a copy of the stored chat messages
func (s *Server) Chat() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.chat...)
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	status := r.URL.Query().Get("status")

	items := []models.SongRequest{}
	for _, it := range s.Requests() {
		if status == "" || it.Status == status {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt.Time) })
	writeJSON(w, http.StatusOK, models.SongRequestListResponse{Items: items})
}

func (s *Server) handleNewCount(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	count := 0
	for _, it := range s.Requests() {
		if it.Status == models.RequestNew {
			count++
		}
	}
	writeJSON(w, http.StatusOK, models.CountResponse{OK: true, Count: count})
}

func (s *Server) handleRequestStatus(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}

	var body models.StatusUpdate
	json.NewDecoder(r.Body).Decode(&body)
	status := strings.TrimSpace(body.Status)
	switch status {
	case models.RequestNew, models.RequestInProgress, models.RequestDone:
	default:
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "Status tidak valid."})
		return
	}

	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests[i].Status = status
			writeJSON(w, http.StatusOK, models.Envelope{OK: true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.Envelope{Error: "ID tidak ditemukan."})
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	items := s.Schedules()
	sort.SliceStable(items, func(i, j int) bool { return items[i].StartTime.After(items[j].StartTime.Time) })
	writeJSON(w, http.StatusOK, models.ScheduleListResponse{Items: items})
}

func (s *Server) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}

	var entry models.ScheduleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "Format waktu tidak valid (gunakan ISO 8601)."})
		return
	}
	if strings.TrimSpace(entry.Title) == "" || entry.StartTime.IsZero() || entry.EndTime.IsZero() {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "Title, start_time, end_time wajib diisi."})
		return
	}
	if !entry.EndTime.After(entry.StartTime.Time) {
		writeJSON(w, http.StatusBadRequest, models.Envelope{Error: "End time harus setelah start time."})
		return
	}

	s.mu.Lock()
	s.schedules = append(s.schedules, models.Schedule{
		ID:          uuid.NewString(),
		Title:       entry.Title,
		Host:        entry.Host,
		Description: entry.Description,
		StartTime:   entry.StartTime,
		EndTime:     entry.EndTime,
	})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.Envelope{OK: true})
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.schedules {
		if it.ID == id {
			s.schedules = append(s.schedules[:i], s.schedules[i+1:]...)
			writeJSON(w, http.StatusOK, models.Envelope{OK: true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.Envelope{Error: "ID tidak ditemukan."})
}

func (s *Server) handleListChat(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	flaggedOnly := r.URL.Query().Get("flagged") == "1"
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	items := []models.ChatMessage{}
	for _, it := range s.Chat() {
		if !flaggedOnly || it.Flagged {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].TS.After(items[j].TS.Time) })
	if len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, models.ChatListResponse{Items: items})
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.chat {
		if it.ID == id {
			s.chat = append(s.chat[:i], s.chat[i+1:]...)
			writeJSON(w, http.StatusOK, models.Envelope{OK: true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.Envelope{Error: "Pesan tidak ditemukan."})
}
