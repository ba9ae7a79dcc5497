// Package timeline keeps the client-side copy of the weekly playlist and turns
// user intents (select a day, add, delete, move, import) into admin API calls.
//
// The server is the only writer: every successful mutation is followed by a
// full reload, and nothing is applied locally before the server confirms it.
// A Timeline is driven from a single goroutine, the way UI event handlers
// are; it does not serialize concurrent mutations.
package timeline

import (
	"context"
	"io"

	"haloradio-admin/internal/logging"
	"haloradio-admin/internal/notify"
	"haloradio-admin/internal/panel"
	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"

	"github.com/sirupsen/logrus"
)

// Store is the remote source of truth for the playlist
type Store interface {
	ListPlaylist(ctx context.Context) ([]models.PlaylistItem, error)
	AddPlaylistItem(ctx context.Context, entry models.PlaylistEntry) error
	DeletePlaylistItem(ctx context.Context, id string) error
	ReorderDay(ctx context.Context, day int, ids []string) error
	ImportCSV(ctx context.Context, filename string, r io.Reader, mode string) (*models.ImportResult, error)
	ExportURL() string
}

// Renderer receives a fresh view after every state change
type Renderer interface {
	Render(v View)
}

// Options configures a Timeline
type Options struct {
	Store     Store
	Notifier  *notify.Notifier
	Confirmer panel.Confirmer // nil confirms everything
	Renderer  Renderer        // nil renders nothing
	Clock     *station.Clock
	Logger    *logrus.Logger
}

// Timeline is the playlist state machine of one admin session
type Timeline struct {
	store    Store
	notifier *notify.Notifier
	confirm  panel.Confirmer
	renderer Renderer
	clock    *station.Clock
	logger   *logrus.Logger

	activeDay int
	items     []models.PlaylistItem
}

// New creates a timeline whose active day is the current station weekday and
// whose collection is empty until Load is called.
func New(opts Options) *Timeline {
	clock := opts.Clock
	if clock == nil {
		clock = station.Jakarta()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewNotifier(logger, 0)
	}

	return &Timeline{
		store:     opts.Store,
		notifier:  notifier,
		confirm:   opts.Confirmer,
		renderer:  opts.Renderer,
		clock:     clock,
		logger:    logger,
		activeDay: clock.Today(),
		items:     []models.PlaylistItem{},
	}
}

// ActiveDay returns the selected weekday partition
func (t *Timeline) ActiveDay() int {
	return t.activeDay
}

// Items returns a copy of the mirrored collection
func (t *Timeline) Items() []models.PlaylistItem {
	out := make([]models.PlaylistItem, len(t.items))
	copy(out, t.items)
	return out
}

// DayItems returns the active day's items in display order
func (t *Timeline) DayItems() []models.PlaylistItem {
	return ForDay(t.items, t.activeDay)
}

// ExportURL is where the server serves the CSV export
func (t *Timeline) ExportURL() string {
	return t.store.ExportURL()
}

// SelectDay switches the active day and re-renders. No request is made.
func (t *Timeline) SelectDay(day int) error {
	if !station.ValidDay(day) {
		return &panel.ValidationError{Field: "day", Message: MsgInvalidDay, Code: "INVALID_DAY"}
	}
	t.activeDay = day
	t.render()
	return nil
}

// Load replaces the collection with the server's and re-renders. On failure
// the previous collection is kept.
func (t *Timeline) Load(ctx context.Context) error {
	items, err := t.store.ListPlaylist(ctx)
	if err != nil {
		t.fail("load", err, MsgLoadFailed, MsgLoadFailed)
		return err
	}

	t.items = items
	t.logger.WithField("items", len(items)).Debug("Playlist loaded")
	t.render()
	return nil
}

// Add validates entry locally, submits it and, once accepted, reloads and
// jumps to the entry's day. Invalid entries never reach the server.
func (t *Timeline) Add(ctx context.Context, entry models.PlaylistEntry) error {
	entry = NormalizeEntry(entry)
	if verr := ValidateEntry(entry); verr != nil {
		t.notifier.Error(verr.Message)
		return verr
	}

	if err := t.store.AddPlaylistItem(ctx, entry); err != nil {
		t.fail("add", err, MsgAddFailed, MsgAddFailed)
		return err
	}
	t.notifier.Success(MsgAdded)

	if err := t.Load(ctx); err != nil {
		return err
	}
	return t.SelectDay(entry.Day)
}

// Delete asks for confirmation, deletes id and reloads
func (t *Timeline) Delete(ctx context.Context, id string) error {
	if err := panel.Confirm(t.confirm, MsgDeleteConfirm); err != nil {
		return err
	}

	if err := t.store.DeletePlaylistItem(ctx, id); err != nil {
		t.fail("delete", err, MsgDeleteFailed, MsgDeleteFailed)
		return err
	}
	t.notifier.Success(MsgDeleted)

	if err := t.Load(ctx); err != nil {
		return err
	}
	return t.SelectDay(t.activeDay)
}

// Move shifts id by delta positions within the active day. The new order is
// only submitted, never applied locally; it shows up once the reload after a
// successful submit echoes it back. Unknown ids and moves past either end
// are silent no-ops.
func (t *Timeline) Move(ctx context.Context, id string, delta int) error {
	day := t.activeDay
	ids, ok := MovedOrder(ForDay(t.items, day), id, delta)
	if !ok {
		t.logger.WithFields(logrus.Fields{
			"id":    id,
			"day":   day,
			"delta": delta,
		}).Debug("Move ignored")
		return nil
	}

	if err := t.store.ReorderDay(ctx, day, ids); err != nil {
		t.fail("reorder", err, MsgReorderRejected, MsgReorderFailed)
		return err
	}

	if err := t.Load(ctx); err != nil {
		return err
	}
	if err := t.SelectDay(day); err != nil {
		return err
	}
	t.notifier.Success(MsgReordered)
	return nil
}

// MoveUp moves id one position earlier
func (t *Timeline) MoveUp(ctx context.Context, id string) error {
	return t.Move(ctx, id, -1)
}

// MoveDown moves id one position later
func (t *Timeline) MoveDown(ctx context.Context, id string) error {
	return t.Move(ctx, id, 1)
}

// ImportCSV uploads a CSV file and reloads on success
func (t *Timeline) ImportCSV(ctx context.Context, filename string, r io.Reader, mode string) (*models.ImportResult, error) {
	res, err := t.store.ImportCSV(ctx, filename, r, mode)
	if err != nil {
		t.fail("import", err, MsgImportFailed, MsgImportFailed)
		return nil, err
	}
	t.notifier.Successf(MsgImportSucceeded, res.Inserted, res.Updated)

	if err := t.Load(ctx); err != nil {
		return res, err
	}
	return res, t.SelectDay(t.activeDay)
}

// fail publishes the user-facing message for err: the server's own message
// when it sent one, rejected when it refused without one, and transport for
// everything else.
func (t *Timeline) fail(op string, err error, rejected, transport string) {
	t.logger.WithFields(logrus.Fields{
		"op":         op,
		"active_day": t.activeDay,
	}).WithError(err).Warn("Playlist operation failed")
	t.notifier.Error(panel.FailureMessage(err, rejected, transport))
}

func (t *Timeline) render() {
	if t.renderer != nil {
		t.renderer.Render(t.View())
	}
}
