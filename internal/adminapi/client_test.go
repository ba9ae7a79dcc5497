package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"haloradio-admin/internal/apitest"
	"haloradio-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() []models.PlaylistItem {
	return []models.PlaylistItem{
		{ID: "a", Day: 0, StartHHMM: "06:00", EndHHMM: "08:00", Program: "Pagi Ceria", SortKey: 10},
		{ID: "b", Day: 0, StartHHMM: "08:00", EndHHMM: "10:00", Program: "Kopi Siang", SortKey: 20},
		{ID: "c", Day: 1, StartHHMM: "19:00", EndHHMM: "21:00", Program: "Malam Minggu"},
	}
}

func newTestClient(t *testing.T, srv *apitest.Server) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: srv.URL, UserAgent: "test-agent"})
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "/api"})
	assert.Error(t, err)
}

func TestListPlaylist(t *testing.T) {
	srv := apitest.NewServer(seed()...)
	defer srv.Close()
	c := newTestClient(t, srv)

	items, err := c.ListPlaylist(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Pagi Ceria", items[0].Program)
	assert.Equal(t, 0.0, items[2].SortKey, "absent sort key decodes as zero")
}

func TestListPlaylistEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	c, err := NewClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	items, err := c.ListPlaylist(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRequestHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{
		BaseURL:           srv.URL + "/",
		SessionCookieName: "session",
		SessionCookie:     "s3cr3t",
		UserAgent:         "haloradio-admin",
	})
	require.NoError(t, err)

	_, err = c.ListPlaylist(context.Background())
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/admin/playlist", got.URL.Path)
	assert.Equal(t, "haloradio-admin", got.UserAgent())
	assert.NotEmpty(t, got.Header.Get(RequestIDHeader))
	cookie, err := got.Cookie("session")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", cookie.Value)
}

func TestAddPlaylistItem(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	c := newTestClient(t, srv)

	entry := models.PlaylistEntry{Day: 3, StartHHMM: "10:00", EndHHMM: "11:00", Program: "Dangdut", Tracks: "a\nb"}
	require.NoError(t, c.AddPlaylistItem(context.Background(), entry))

	calls := srv.CallsTo(http.MethodPost, PlaylistPath)
	require.Len(t, calls, 1)
	var sent models.PlaylistEntry
	require.NoError(t, json.Unmarshal(calls[0].Body, &sent))
	assert.Equal(t, entry, sent)

	items := srv.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Dangdut", items[0].Program)
}

func TestServerRejectionBecomesAPIError(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	c := newTestClient(t, srv)

	srv.FailNext(http.MethodPost, PlaylistPath, apitest.Failure{Message: "Jadwal bentrok."})
	err := c.AddPlaylistItem(context.Background(), models.PlaylistEntry{Program: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Jadwal bentrok.", apiErr.Message)

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Jadwal bentrok.", msg)
}

func TestServerRejectionWithErrorStatus(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	c := newTestClient(t, srv)

	srv.FailNext(http.MethodPost, PlaylistReorderPath, apitest.Failure{Status: http.StatusBadRequest, Message: "ids tidak valid"})
	err := c.ReorderDay(context.Background(), 0, []string{"x"})

	msg, ok := ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "ids tidak valid", msg)
}

func TestBareRefusalWithErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(c *Client) error
	}{
		{"reorder", PlaylistReorderPath, func(c *Client) error {
			return c.ReorderDay(context.Background(), 0, []string{"x"})
		}},
		{"export", PlaylistCSVPath, func(c *Client) error {
			_, err := c.ExportCSV(context.Background(), &bytes.Buffer{})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer()
			defer srv.Close()
			c := newTestClient(t, srv)

			method := http.MethodPost
			if tt.path == PlaylistCSVPath {
				method = http.MethodGet
			}
			srv.FailNext(method, tt.path, apitest.Failure{Status: http.StatusBadRequest, Raw: `{"ok":false}`})

			err := tt.call(c)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Empty(t, apiErr.Message)
		})
	}
}

func TestTransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		failure apitest.Failure
		status  int
	}{
		{"html error page", apitest.Failure{Status: http.StatusBadGateway, Raw: "<html>bad gateway</html>"}, http.StatusBadGateway},
		{"garbage body", apitest.Failure{Raw: "not json"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer()
			defer srv.Close()
			c := newTestClient(t, srv)

			srv.FailNext(http.MethodGet, PlaylistPath, tt.failure)
			_, err := c.ListPlaylist(context.Background())

			var tErr *TransportError
			require.True(t, errors.As(err, &tErr), "got %v", err)
			assert.Equal(t, tt.status, tErr.StatusCode)
			_, isServer := ServerMessage(err)
			assert.False(t, isServer)
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := apitest.NewServer()
	c := newTestClient(t, srv)
	srv.Close()

	err := c.DeletePlaylistItem(context.Background(), "a")
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Zero(t, tErr.StatusCode)
}

func TestDeletePlaylistItem(t *testing.T) {
	srv := apitest.NewServer(seed()...)
	defer srv.Close()
	c := newTestClient(t, srv)

	require.NoError(t, c.DeletePlaylistItem(context.Background(), "b"))
	assert.Len(t, srv.Items(), 2)
	assert.Len(t, srv.CallsTo(http.MethodDelete, "/api/admin/playlist/b"), 1)

	err := c.DeletePlaylistItem(context.Background(), "missing")
	msg, ok := ServerMessage(err)
	require.True(t, ok)
	assert.NotEmpty(t, msg)
}

func TestReorderDayPayload(t *testing.T) {
	srv := apitest.NewServer(seed()...)
	defer srv.Close()
	c := newTestClient(t, srv)

	require.NoError(t, c.ReorderDay(context.Background(), 0, []string{"b", "a"}))

	calls := srv.CallsTo(http.MethodPost, PlaylistReorderPath)
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"day":0,"ids":["b","a"]}`, string(calls[0].Body))
}

func TestExportCSV(t *testing.T) {
	srv := apitest.NewServer(seed()...)
	defer srv.Close()
	c := newTestClient(t, srv)

	var buf bytes.Buffer
	n, err := c.ExportCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasPrefix(buf.String(), "day,start_hhmm,end_hhmm,program,tracks\n"))
	assert.Contains(t, buf.String(), "Kopi Siang")
	assert.Equal(t, srv.URL+PlaylistCSVPath, c.ExportURL())
}

func TestImportCSV(t *testing.T) {
	srv := apitest.NewServer(seed()...)
	defer srv.Close()
	c := newTestClient(t, srv)

	csvData := "day,start_hhmm,end_hhmm,program,tracks\n" +
		"0,06:00,08:00,Pagi Baru,\n" +
		"4,12:00,13:00,Jumat Berkah,\n"

	res, err := c.ImportCSV(context.Background(), "playlist.csv", strings.NewReader(csvData), "merge")
	require.NoError(t, err)
	assert.Equal(t, &models.ImportResult{Inserted: 1, Updated: 1}, res)

	calls := srv.CallsTo(http.MethodPost, PlaylistCSVPath)
	require.Len(t, calls, 1)
	assert.Contains(t, string(calls[0].Body), `name="mode"`)
}
