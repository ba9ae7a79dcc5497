// Package requests is the listener song request panel: a status-filtered,
// paged list with status changes and the counter of requests still New.
package requests

import (
	"context"
	"slices"
	"strings"

	"haloradio-admin/internal/logging"
	"haloradio-admin/internal/notify"
	"haloradio-admin/internal/panel"
	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"

	"github.com/sirupsen/logrus"
)

// PageSize is the number of requests shown per page
const PageSize = 10

// User-facing messages
const (
	MsgStatusUpdated = "Status diperbarui."
	MsgStatusFailed  = "Gagal update status"
	MsgInvalidStatus = "Status tidak valid."
	MsgLoadFailed    = "Gagal memuat request."
	MsgEmpty         = "Belum ada request."
)

// Store is the remote source of song requests
type Store interface {
	ListRequests(ctx context.Context, status string) ([]models.SongRequest, error)
	SetRequestStatus(ctx context.Context, id, status string) error
	NewRequestCount(ctx context.Context) (int, error)
}

// Options configures a Board
type Options struct {
	Store    Store
	Notifier *notify.Notifier
	Clock    *station.Clock
	Logger   *logrus.Logger
}

// Board holds the loaded requests, the status filter and the current page
type Board struct {
	store    Store
	notifier *notify.Notifier
	clock    *station.Clock
	logger   *logrus.Logger

	filter   string
	items    []models.SongRequest
	page     int
	newCount int
}

// New creates an empty board showing every status
func New(opts Options) *Board {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewNotifier(logger, 0)
	}
	clock := opts.Clock
	if clock == nil {
		clock = station.Jakarta()
	}

	return &Board{
		store:    opts.Store,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		items:    []models.SongRequest{},
		page:     1,
	}
}

// ValidStatus reports whether status is one the server accepts
func ValidStatus(status string) bool {
	return slices.Contains(models.RequestStatuses, status)
}

// ParseStatus maps a status typed in any letter case to the server's
// spelling.
func ParseStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, status := range models.RequestStatuses {
		if strings.EqualFold(s, status) {
			return status, true
		}
	}
	return "", false
}

// Filter returns the status filter; "" shows every request
func (b *Board) Filter() string {
	return b.filter
}

// SetFilter changes the status filter and reloads
func (b *Board) SetFilter(ctx context.Context, status string) error {
	if status != "" && !ValidStatus(status) {
		verr := &panel.ValidationError{Field: "status", Message: MsgInvalidStatus, Code: "INVALID_STATUS"}
		b.notifier.Error(verr.Message)
		return verr
	}
	b.filter = status
	return b.Load(ctx)
}

// Load fetches the requests matching the filter, goes back to the first page
// and refreshes the New counter. On failure the previous list is kept.
func (b *Board) Load(ctx context.Context) error {
	items, err := b.store.ListRequests(ctx, b.filter)
	if err != nil {
		panel.Report(b.notifier, b.logger, "load requests", err, MsgLoadFailed, MsgLoadFailed)
		return err
	}

	b.items = items
	b.page = 1
	b.logger.WithFields(logrus.Fields{
		"items":  len(items),
		"filter": b.filter,
	}).Debug("Requests loaded")

	b.RefreshCount(ctx)
	return nil
}

// RefreshCount updates the number of New requests. A failed lookup shows 0.
func (b *Board) RefreshCount(ctx context.Context) int {
	count, err := b.store.NewRequestCount(ctx)
	if err != nil {
		b.logger.WithError(err).Debug("New request count unavailable")
		count = 0
	}
	b.newCount = count
	return count
}

// NewCount returns the last known number of New requests
func (b *Board) NewCount() int {
	return b.newCount
}

// SetStatus moves request id to status. The list is reloaded whenever the
// server answered, accepted or not.
func (b *Board) SetStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		verr := &panel.ValidationError{Field: "status", Message: MsgInvalidStatus, Code: "INVALID_STATUS"}
		b.notifier.Error(verr.Message)
		return verr
	}

	err := b.store.SetRequestStatus(ctx, id, status)
	if err != nil {
		panel.Report(b.notifier, b.logger, "update request status", err, MsgStatusFailed, MsgStatusFailed)
	} else {
		b.notifier.Success(MsgStatusUpdated)
	}

	if panel.Answered(err) {
		if loadErr := b.Load(ctx); err == nil {
			err = loadErr
		}
	}
	return err
}

// ShouldPoll reports whether the current filter can gain new entries, which
// is when it shows every request or only New ones.
func (b *Board) ShouldPoll() bool {
	return b.filter == "" || b.filter == models.RequestNew
}

// Items returns a copy of every loaded request
func (b *Board) Items() []models.SongRequest {
	return slices.Clone(b.items)
}

// TotalPages is at least 1, even for an empty list
func (b *Board) TotalPages() int {
	pages := (len(b.items) + PageSize - 1) / PageSize
	return max(pages, 1)
}

// Page returns the current 1-based page
func (b *Board) Page() int {
	return b.page
}

// SetPage moves to page, clamped to the available pages
func (b *Board) SetPage(page int) int {
	b.page = min(max(page, 1), b.TotalPages())
	return b.page
}

// NextPage moves one page forward, stopping at the last page
func (b *Board) NextPage() int {
	return b.SetPage(b.page + 1)
}

// PrevPage moves one page back, stopping at the first page
func (b *Board) PrevPage() int {
	return b.SetPage(b.page - 1)
}

// PageItems returns the requests of the current page
func (b *Board) PageItems() []models.SongRequest {
	start := (b.page - 1) * PageSize
	if start >= len(b.items) {
		return []models.SongRequest{}
	}
	end := min(start+PageSize, len(b.items))
	return slices.Clone(b.items[start:end])
}
