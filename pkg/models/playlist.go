package models

// PlaylistItem represents one program slot in the weekly playlist. The server
// owns every field; the client only holds a cached copy.
type PlaylistItem struct {
	ID        string  `json:"_id"`
	Day       int     `json:"day"`        // 0 = Monday ... 6 = Sunday
	StartHHMM string  `json:"start_hhmm"` // station local time
	EndHHMM   string  `json:"end_hhmm"`
	Program   string  `json:"program"`
	Tracks    string  `json:"tracks"`
	SortKey   float64 `json:"sort_key,omitempty"` // absent is treated as 0
}

// PlaylistEntry is the payload for creating a playlist item
type PlaylistEntry struct {
	Day       int    `json:"day"`
	StartHHMM string `json:"start_hhmm"`
	EndHHMM   string `json:"end_hhmm"`
	Program   string `json:"program"`
	Tracks    string `json:"tracks"`
}

// ReorderRequest carries the new canonical order of one day
type ReorderRequest struct {
	Day int      `json:"day"`
	IDs []string `json:"ids"`
}

// ImportResult reports the outcome of a CSV import
type ImportResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Envelope is the common {ok, error} response shape of the admin API.
type Envelope struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Inserted int    `json:"inserted,omitempty"`
	Updated  int    `json:"updated,omitempty"`
}

// PlaylistListResponse is the body of GET /api/admin/playlist
type PlaylistListResponse struct {
	Items []PlaylistItem `json:"items"`
}
