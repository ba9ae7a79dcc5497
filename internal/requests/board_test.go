package requests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"haloradio-admin/internal/adminapi"
	"haloradio-admin/internal/apitest"
	"haloradio-admin/internal/logging"
	"haloradio-admin/internal/notify"
	"haloradio-admin/internal/panel"
	"haloradio-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)

func request(id, status string, minutes int) models.SongRequest {
	return models.SongRequest{
		ID:        id,
		Name:      "Pendengar " + id,
		Title:     "Lagu " + id,
		Status:    status,
		CreatedAt: models.Timestamp{Time: base.Add(time.Duration(minutes) * time.Minute)},
	}
}

func newBoard(t *testing.T, items ...models.SongRequest) (*Board, *apitest.Server, *notify.Notifier) {
	t.Helper()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	srv.SetRequests(items...)

	client, err := adminapi.NewClient(adminapi.Options{BaseURL: srv.URL})
	require.NoError(t, err)

	n := notify.NewNotifier(logging.Discard(), 10)
	return New(Options{Store: client, Notifier: n}), srv, n
}

func TestLoadNewestFirstWithCount(t *testing.T) {
	b, _, _ := newBoard(t,
		request("r1", models.RequestNew, 0),
		request("r2", models.RequestDone, 5),
		request("r3", models.RequestNew, 10),
	)

	require.NoError(t, b.Load(context.Background()))

	items := b.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "r3", items[0].ID)
	assert.Equal(t, 2, b.NewCount())
}

func TestSetFilter(t *testing.T) {
	b, srv, n := newBoard(t,
		request("r1", models.RequestNew, 0),
		request("r2", models.RequestDone, 5),
	)

	require.NoError(t, b.SetFilter(context.Background(), models.RequestDone))
	require.Len(t, b.Items(), 1)
	assert.Equal(t, "r2", b.Items()[0].ID)

	calls := srv.CallsTo(http.MethodGet, adminapi.RequestsPath)
	require.NotEmpty(t, calls)
	assert.Equal(t, models.RequestDone, calls[len(calls)-1].Query.Get("status"))
	assert.False(t, b.ShouldPoll(), "a Done-only list never gains entries")

	srv.ResetCalls()
	err := b.SetFilter(context.Background(), "Archived")
	var verr *panel.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, srv.Calls())
	assert.Equal(t, models.RequestDone, b.Filter())

	last, _ := n.Last()
	assert.Equal(t, MsgInvalidStatus, last.Message)
}

func TestShouldPoll(t *testing.T) {
	b, _, _ := newBoard(t)
	assert.True(t, b.ShouldPoll())

	require.NoError(t, b.SetFilter(context.Background(), models.RequestNew))
	assert.True(t, b.ShouldPoll())

	require.NoError(t, b.SetFilter(context.Background(), models.RequestInProgress))
	assert.False(t, b.ShouldPoll())
}

func TestSetStatus(t *testing.T) {
	b, srv, n := newBoard(t, request("r1", models.RequestNew, 0))
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.SetStatus(context.Background(), "r1", models.RequestInProgress))

	assert.Equal(t, models.RequestInProgress, srv.Requests()[0].Status)
	assert.Equal(t, models.RequestInProgress, b.Items()[0].Status)
	assert.Equal(t, 0, b.NewCount())

	calls := srv.CallsTo(http.MethodPost, adminapi.RequestStatusPath("r1"))
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"status":"In-Progress"}`, string(calls[0].Body))

	last, _ := n.Last()
	assert.Equal(t, MsgStatusUpdated, last.Message)
}

func TestSetStatusRejectedStillReloads(t *testing.T) {
	b, srv, n := newBoard(t, request("r1", models.RequestNew, 0))
	require.NoError(t, b.Load(context.Background()))
	srv.ResetCalls()

	err := b.SetStatus(context.Background(), "missing", models.RequestDone)
	require.Error(t, err)

	assert.Len(t, srv.CallsTo(http.MethodGet, adminapi.RequestsPath), 1)
	notices := n.History()
	require.NotEmpty(t, notices)
	assert.Equal(t, "ID tidak ditemukan.", notices[len(notices)-1].Message)
}

func TestSetStatusTransportFailureSkipsReload(t *testing.T) {
	b, srv, n := newBoard(t, request("r1", models.RequestNew, 0))
	require.NoError(t, b.Load(context.Background()))
	srv.ResetCalls()

	srv.FailNext(http.MethodPost, "/api/admin/requests/{id}/status", apitest.Failure{Status: http.StatusBadGateway, Raw: "bad gateway"})
	require.Error(t, b.SetStatus(context.Background(), "r1", models.RequestDone))

	assert.Empty(t, srv.CallsTo(http.MethodGet, adminapi.RequestsPath))
	last, _ := n.Last()
	assert.Equal(t, MsgStatusFailed, last.Message)
}

func TestSetStatusValidatesLocally(t *testing.T) {
	b, srv, _ := newBoard(t, request("r1", models.RequestNew, 0))

	err := b.SetStatus(context.Background(), "r1", "Selesai")
	var verr *panel.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, srv.Calls())
}

func TestCountFailureShowsZero(t *testing.T) {
	b, srv, n := newBoard(t, request("r1", models.RequestNew, 0))

	srv.FailNext(http.MethodGet, adminapi.RequestCountPath, apitest.Failure{Status: http.StatusInternalServerError, Raw: "oops"})
	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, 0, b.NewCount())
	assert.Empty(t, n.History(), "the counter fails quietly")
	assert.Equal(t, 1, b.RefreshCount(context.Background()))
}

func TestLoadFailureKeepsList(t *testing.T) {
	b, srv, n := newBoard(t, request("r1", models.RequestNew, 0))
	require.NoError(t, b.Load(context.Background()))

	srv.FailNext(http.MethodGet, adminapi.RequestsPath, apitest.Failure{Status: http.StatusBadGateway, Raw: "bad gateway"})
	require.Error(t, b.Load(context.Background()))

	assert.Len(t, b.Items(), 1)
	last, _ := n.Last()
	assert.Equal(t, MsgLoadFailed, last.Message)
}

func TestPaging(t *testing.T) {
	var items []models.SongRequest
	for i := 0; i < 23; i++ {
		items = append(items, request(fmt.Sprintf("r%02d", i), models.RequestNew, i))
	}
	b, _, _ := newBoard(t, items...)
	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, 3, b.TotalPages())
	assert.Equal(t, 1, b.Page())
	assert.Len(t, b.PageItems(), PageSize)
	assert.Equal(t, 1, b.PrevPage(), "cannot go before the first page")

	assert.Equal(t, 3, b.SetPage(9))
	assert.Len(t, b.PageItems(), 3)
	assert.Equal(t, 3, b.NextPage(), "cannot go past the last page")

	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, 1, b.Page(), "a reload starts on the first page")
}

func TestEmptyBoardHasOnePage(t *testing.T) {
	b, _, _ := newBoard(t)
	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, 1, b.TotalPages())
	assert.Empty(t, b.PageItems())
	out := b.Render(false)
	assert.Contains(t, out, MsgEmpty)
	assert.Contains(t, out, "Page 1/1")
}

func TestRender(t *testing.T) {
	r := request("r1", models.RequestNew, 30)
	r.Name = "Budi\x1b[2J"
	b, _, _ := newBoard(t, r)
	require.NoError(t, b.Load(context.Background()))

	out := b.Render(false)
	assert.Contains(t, out, "Request baru: 1")
	assert.Contains(t, out, "Lagu r1")
	assert.Contains(t, out, "19/10/2026 09:30 WIB")
	assert.NotContains(t, out, "\x1b[2J", "listener input is not passed to the terminal raw")
	assert.Contains(t, out, "Page 1/1")
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"new", models.RequestNew, true},
		{" IN-PROGRESS ", models.RequestInProgress, true},
		{"Done", models.RequestDone, true},
		{"selesai", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
