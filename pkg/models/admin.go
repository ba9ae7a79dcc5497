package models

// Song request statuses, in workflow order
const (
	RequestNew        = "New"
	RequestInProgress = "In-Progress"
	RequestDone       = "Done"
)

// RequestStatuses lists every status the server accepts
var RequestStatuses = []string{RequestNew, RequestInProgress, RequestDone}

// SongRequest is a listener's song request
type SongRequest struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt Timestamp `json:"created_at"`
}

// SongRequestListResponse is the body of GET /api/admin/requests
type SongRequestListResponse struct {
	Items []SongRequest `json:"items"`
}

// StatusUpdate is the body of POST /api/admin/requests/{id}/status
type StatusUpdate struct {
	Status string `json:"status"`
}

// CountResponse is the body of GET /api/admin/requests/new_count
type CountResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// Schedule is one broadcast schedule entry
type Schedule struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Host        string    `json:"host"`
	Description string    `json:"description"`
	StartTime   Timestamp `json:"start_time"`
	EndTime     Timestamp `json:"end_time"`
}

// ScheduleEntry is the payload for creating a schedule
type ScheduleEntry struct {
	Title       string    `json:"title"`
	Host        string    `json:"host"`
	Description string    `json:"description"`
	StartTime   Timestamp `json:"start_time"`
	EndTime     Timestamp `json:"end_time"`
}

// ScheduleListResponse is the body of GET /api/admin/schedules
type ScheduleListResponse struct {
	Items []Schedule `json:"items"`
}

// ChatMessage is one message of the public live chat
type ChatMessage struct {
	ID      string    `json:"_id"`
	Name    string    `json:"name"`
	Text    string    `json:"text"`
	IP      string    `json:"ip,omitempty"`
	Flagged bool      `json:"flagged"`
	TS      Timestamp `json:"ts"`
}

// ChatListResponse is the body of GET /api/admin/chat
type ChatListResponse struct {
	Items []ChatMessage `json:"items"`
}
