package adminapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"haloradio-admin/pkg/models"
)

// Paths of the request, schedule and chat endpoints
const (
	RequestsPath     = "/api/admin/requests"
	RequestCountPath = "/api/admin/requests/new_count"
	SchedulesPath    = "/api/admin/schedules"
	ChatPath         = "/api/admin/chat"
)

// RequestStatusPath is where the status of one song request is changed
func RequestStatusPath(id string) string {
	return RequestsPath + "/" + url.PathEscape(id) + "/status"
}

// ListRequests fetches song requests, newest first. An empty status lists
// all of them.
func (c *Client) ListRequests(ctx context.Context, status string) ([]models.SongRequest, error) {
	const op = "list requests"

	path := RequestsPath
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	var res models.SongRequestListResponse
	if err := c.doJSON(op, req, &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []models.SongRequest{}
	}
	return res.Items, nil
}

// SetRequestStatus moves a song request to status
func (c *Client) SetRequestStatus(ctx context.Context, id, status string) error {
	const op = "update request status"

	req, err := c.newJSONRequest(ctx, http.MethodPost, RequestStatusPath(id), models.StatusUpdate{Status: status})
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}

// NewRequestCount returns how many song requests are still New
func (c *Client) NewRequestCount(ctx context.Context) (int, error) {
	const op = "count new requests"

	req, err := c.newRequest(ctx, http.MethodGet, RequestCountPath, nil)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	var res models.CountResponse
	if err := c.doJSON(op, req, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// ListSchedules fetches every broadcast schedule, latest start first
func (c *Client) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	const op = "list schedules"

	req, err := c.newRequest(ctx, http.MethodGet, SchedulesPath, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	var res models.ScheduleListResponse
	if err := c.doJSON(op, req, &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []models.Schedule{}
	}
	return res.Items, nil
}

// AddSchedule creates a broadcast schedule
func (c *Client) AddSchedule(ctx context.Context, entry models.ScheduleEntry) error {
	const op = "add schedule"

	req, err := c.newJSONRequest(ctx, http.MethodPost, SchedulesPath, entry)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}

// DeleteSchedule removes the schedule with the given id
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	const op = "delete schedule"

	req, err := c.newRequest(ctx, http.MethodDelete, SchedulesPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}

// ListChat fetches chat messages, newest first. limit <= 0 leaves the
// server default.
func (c *Client) ListChat(ctx context.Context, flaggedOnly bool, limit int) ([]models.ChatMessage, error) {
	const op = "list chat"

	q := url.Values{}
	if flaggedOnly {
		q.Set("flagged", "1")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := ChatPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	var res models.ChatListResponse
	if err := c.doJSON(op, req, &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []models.ChatMessage{}
	}
	return res.Items, nil
}

// DeleteChatMessage removes one chat message
func (c *Client) DeleteChatMessage(ctx context.Context, id string) error {
	const op = "delete chat message"

	req, err := c.newRequest(ctx, http.MethodDelete, ChatPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}
