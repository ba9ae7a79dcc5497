// Package schedules is the broadcast schedule panel: list, add and delete
// dated programs entered in station local time.
package schedules

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

// User-facing messages
const (
	MsgTitleRequired  = "Judul program wajib diisi."
	MsgTimesRequired  = "Waktu mulai & selesai wajib diisi."
	MsgEndBeforeStart = "Waktu selesai harus setelah waktu mulai."
	MsgAdded          = "Jadwal siaran ditambahkan."
	MsgSaveFailed     = "Gagal menyimpan."
	MsgDeleteConfirm  = "Hapus jadwal ini?"
	MsgDeleted        = "Jadwal dihapus."
	MsgDeleteFailed   = "Gagal hapus"
	MsgLoadFailed     = "Gagal memuat jadwal."
	MsgEmpty          = "Belum ada jadwal siaran."
)

// Store is the remote source of broadcast schedules
type Store interface {
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	AddSchedule(ctx context.Context, entry models.ScheduleEntry) error
	DeleteSchedule(ctx context.Context, id string) error
}

// Draft is a schedule as typed by the admin. Start and End are station
// local "yyyy-mm-dd HH:MM".
type Draft struct {
	Title       string
	Host        string
	Description string
	Start       string
	End         string
}

// Options configures a Manager
type Options struct {
	Store     Store
	Notifier  *notify.Notifier
	Confirmer panel.Confirmer // nil confirms everything
	Clock     *station.Clock
	Logger    *logrus.Logger
}

// Manager holds the loaded schedules
type Manager struct {
	store    Store
	notifier *notify.Notifier
	confirm  panel.Confirmer
	clock    *station.Clock
	logger   *logrus.Logger

	items []models.Schedule
}

// New creates a manager with nothing loaded
func New(opts Options) *Manager {
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

	return &Manager{
		store:    opts.Store,
		notifier: notifier,
		confirm:  opts.Confirmer,
		clock:    clock,
		logger:   logger,
		items:    []models.Schedule{},
	}
}

// Items returns the loaded schedules in server order
func (m *Manager) Items() []models.Schedule {
	return slices.Clone(m.items)
}

// Load replaces the schedules with the server's. On failure the previous
// list is kept.
func (m *Manager) Load(ctx context.Context) error {
	items, err := m.store.ListSchedules(ctx)
	if err != nil {
		panel.Report(m.notifier, m.logger, "load schedules", err, MsgLoadFailed, MsgLoadFailed)
		return err
	}
	m.items = items
	m.logger.WithField("items", len(items)).Debug("Schedules loaded")
	return nil
}

// Entry validates a draft and converts its local times to instants
func (m *Manager) Entry(d Draft) (models.ScheduleEntry, *panel.ValidationError) {
	entry := models.ScheduleEntry{
		Title:       strings.TrimSpace(d.Title),
		Host:        strings.TrimSpace(d.Host),
		Description: strings.TrimSpace(d.Description),
	}
	if entry.Title == "" {
		return entry, &panel.ValidationError{Field: "title", Message: MsgTitleRequired, Code: "MISSING_TITLE"}
	}

	start, err := m.clock.ParseLocal(d.Start)
	if err != nil {
		return entry, &panel.ValidationError{Field: "start_time", Message: MsgTimesRequired, Code: "INVALID_TIME"}
	}
	end, err := m.clock.ParseLocal(d.End)
	if err != nil {
		return entry, &panel.ValidationError{Field: "end_time", Message: MsgTimesRequired, Code: "INVALID_TIME"}
	}
	if !end.After(start) {
		return entry, &panel.ValidationError{Field: "end_time", Message: MsgEndBeforeStart, Code: "END_BEFORE_START"}
	}

	entry.StartTime = models.Timestamp{Time: start.UTC()}
	entry.EndTime = models.Timestamp{Time: end.UTC()}
	return entry, nil
}

// Add validates d, submits it and reloads. Invalid drafts never reach the
// server.
func (m *Manager) Add(ctx context.Context, d Draft) error {
	entry, verr := m.Entry(d)
	if verr != nil {
		m.notifier.Error(verr.Message)
		return verr
	}

	if err := m.store.AddSchedule(ctx, entry); err != nil {
		panel.Report(m.notifier, m.logger, "add schedule", err, MsgSaveFailed, MsgSaveFailed)
		return err
	}
	m.notifier.Success(MsgAdded)
	return m.Load(ctx)
}

// Delete asks for confirmation, deletes id and reloads whenever the server
// answered.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := panel.Confirm(m.confirm, MsgDeleteConfirm); err != nil {
		return err
	}

	err := m.store.DeleteSchedule(ctx, id)
	if err != nil {
		panel.Report(m.notifier, m.logger, "delete schedule", err, MsgDeleteFailed, MsgDeleteFailed)
	} else {
		m.notifier.Success(MsgDeleted)
	}

	if panel.Answered(err) {
		if loadErr := m.Load(ctx); err == nil {
			err = loadErr
		}
	}
	return err
}

// Render draws the schedule table with full date ranges
func (m *Manager) Render(color bool) string {
	if len(m.items) == 0 {
		return MsgEmpty + "\n"
	}

	rows := make([][]string, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, []string{
			it.ID,
			m.clock.FormatRange(it.StartTime.Time, it.EndTime.Time),
			panel.Sanitize(it.Title),
			panel.Sanitize(it.Host),
			panel.Sanitize(it.Description),
		})
	}
	return panel.Table(color, []string{"ID", "Waktu", "Program", "Penyiar", "Deskripsi"}, rows) + "\n"
}
