// Package adminapi is a client for the station back-office admin API.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"haloradio-admin/internal/logging"
	"haloradio-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Paths of the playlist endpoints, relative to the base URL
const (
	PlaylistPath        = "/api/admin/playlist"
	PlaylistReorderPath = "/api/admin/playlist/reorder"
	PlaylistCSVPath     = "/api/admin/playlist/csv"
)

// RequestIDHeader carries the per-call correlation id
const RequestIDHeader = "X-Request-Id"

// Options configures a Client
type Options struct {
	BaseURL           string
	SessionCookieName string
	SessionCookie     string
	UserAgent         string
	Timeout           time.Duration // zero: no explicit timeout
	HTTPClient        *http.Client  // optional, overrides Timeout
	Logger            *logrus.Logger
}

// Client talks to the playlist endpoints of the admin API
type Client struct {
	base       *url.URL
	httpClient *http.Client
	cookie     *http.Cookie
	userAgent  string
	logger     *logrus.Logger
}

// NewClient creates a new admin API client
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Client{
		base:       base,
		httpClient: httpClient,
		userAgent:  opts.UserAgent,
		logger:     logger,
	}
	if opts.SessionCookie != "" {
		c.cookie = &http.Cookie{Name: opts.SessionCookieName, Value: opts.SessionCookie}
	}
	return c, nil
}

// URL resolves an API path against the base URL
func (c *Client) URL(path string) string {
	return c.base.String() + path
}

// ExportURL is the location of the server-generated CSV export
func (c *Client) ExportURL() string {
	return c.URL(PlaylistCSVPath)
}

// ListPlaylist fetches the full playlist collection
func (c *Client) ListPlaylist(ctx context.Context) ([]models.PlaylistItem, error) {
	const op = "list playlist"

	req, err := c.newRequest(ctx, http.MethodGet, PlaylistPath, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	var res models.PlaylistListResponse
	if err := c.doJSON(op, req, &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []models.PlaylistItem{}
	}
	return res.Items, nil
}

// AddPlaylistItem creates a new playlist item
func (c *Client) AddPlaylistItem(ctx context.Context, entry models.PlaylistEntry) error {
	const op = "add playlist item"

	req, err := c.newJSONRequest(ctx, http.MethodPost, PlaylistPath, entry)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}

// DeletePlaylistItem removes the item with the given id
func (c *Client) DeletePlaylistItem(ctx context.Context, id string) error {
	const op = "delete playlist item"

	req, err := c.newRequest(ctx, http.MethodDelete, PlaylistPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}

// ReorderDay submits ids as the new canonical order of day
func (c *Client) ReorderDay(ctx context.Context, day int, ids []string) error {
	const op = "reorder playlist"

	req, err := c.newJSONRequest(ctx, http.MethodPost, PlaylistReorderPath, models.ReorderRequest{Day: day, IDs: ids})
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	_, err = c.doEnvelope(op, req)
	return err
}

// ExportCSV streams the server's CSV export into w and returns the number of
// bytes written.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) (int64, error) {
	const op = "export playlist csv"

	req, err := c.newRequest(ctx, http.MethodGet, PlaylistCSVPath, nil)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}

	resp, err := c.send(req)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return 0, statusError(op, resp.StatusCode, data)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Op: op, Err: err}
	}
	return n, nil
}

// ImportCSV uploads a CSV file. The meaning of mode is defined by the server.
func (c *Client) ImportCSV(ctx context.Context, filename string, r io.Reader, mode string) (*models.ImportResult, error) {
	const op = "import playlist csv"

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read csv: %w", err)}
	}
	if err := mw.WriteField("mode", mode); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, PlaylistCSVPath, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.doEnvelope(op, req)
	if err != nil {
		return nil, err
	}
	return &models.ImportResult{Inserted: env.Inserted, Updated: env.Updated}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.New().String())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// send performs the request and logs its outcome
func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)

	entry := c.logger.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": req.Header.Get(RequestIDHeader),
		"duration":   time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Warn("Admin API request failed")
		return nil, err
	}
	entry.WithField("status_code", resp.StatusCode).Debug("Admin API request")
	return resp, nil
}

// doJSON decodes a successful JSON body into out. Non-2xx answers are turned
// into APIError when they carry an envelope, TransportError otherwise.
func (c *Client) doJSON(op string, req *http.Request, out any) error {
	resp, err := c.send(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	return nil
}

// statusError classifies a non-2xx answer. A body that is an envelope with
// ok false or an error message is a server refusal, whatever the status.
func statusError(op string, status int, body []byte) error {
	var env struct {
		OK    *bool  `json:"ok"`
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil && (env.Error != "" || (env.OK != nil && !*env.OK)) {
		return &APIError{Op: op, Message: env.Error}
	}
	return &TransportError{Op: op, StatusCode: status, Err: errors.New("unexpected status")}
}

// doEnvelope runs a mutation and checks the {ok, error} envelope
func (c *Client) doEnvelope(op string, req *http.Request) (*models.Envelope, error) {
	var env models.Envelope
	if err := c.doJSON(op, req, &env); err != nil {
		return nil, err
	}
	if !env.OK {
		return nil, &APIError{Op: op, Message: env.Error}
	}
	return &env, nil
}
