// Package chat is the live chat moderation panel: list recent or flagged
// messages and delete them.
package chat

import (
	"context"
	"slices"

	"haloradio-admin/internal/logging"
	"haloradio-admin/internal/notify"
	"haloradio-admin/internal/panel"
	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"

	"github.com/sirupsen/logrus"
)

// DefaultLimit is how many messages are fetched per load
const DefaultLimit = 200

// User-facing messages
const (
	MsgDeleteConfirm = "Hapus pesan ini?"
	MsgDeleted       = "Pesan dihapus."
	MsgDeleteFailed  = "Gagal hapus"
	MsgLoadFailed    = "Gagal memuat chat."
	MsgEmpty         = "Belum ada pesan."
	MsgFlagged       = "Flagged"
)

// Store is the remote source of chat messages
type Store interface {
	ListChat(ctx context.Context, flaggedOnly bool, limit int) ([]models.ChatMessage, error)
	DeleteChatMessage(ctx context.Context, id string) error
}

// Options configures a Moderator
type Options struct {
	Store     Store
	Notifier  *notify.Notifier
	Confirmer panel.Confirmer // nil confirms everything
	Clock     *station.Clock
	Logger    *logrus.Logger
	Limit     int // defaults to DefaultLimit
}

// Moderator holds the loaded messages and the flagged-only switch
type Moderator struct {
	store    Store
	notifier *notify.Notifier
	confirm  panel.Confirmer
	clock    *station.Clock
	logger   *logrus.Logger
	limit    int

	flaggedOnly bool
	messages    []models.ChatMessage
}

// New creates a moderator showing every message
func New(opts Options) *Moderator {
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
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &Moderator{
		store:    opts.Store,
		notifier: notifier,
		confirm:  opts.Confirmer,
		clock:    clock,
		logger:   logger,
		limit:    limit,
		messages: []models.ChatMessage{},
	}
}

// Messages returns the loaded messages, newest first
func (m *Moderator) Messages() []models.ChatMessage {
	return slices.Clone(m.messages)
}

// FlaggedOnly reports whether only flagged messages are listed
func (m *Moderator) FlaggedOnly() bool {
	return m.flaggedOnly
}

// SetFlaggedOnly switches the flagged filter and reloads
func (m *Moderator) SetFlaggedOnly(ctx context.Context, flagged bool) error {
	m.flaggedOnly = flagged
	return m.Load(ctx)
}

// Load replaces the messages with the server's. On failure the previous list
// is kept.
func (m *Moderator) Load(ctx context.Context) error {
	messages, err := m.store.ListChat(ctx, m.flaggedOnly, m.limit)
	if err != nil {
		panel.Report(m.notifier, m.logger, "load chat", err, MsgLoadFailed, MsgLoadFailed)
		return err
	}
	m.messages = messages
	m.logger.WithFields(logrus.Fields{
		"items":   len(messages),
		"flagged": m.flaggedOnly,
	}).Debug("Chat loaded")
	return nil
}

// Delete asks for confirmation, deletes message id and reloads whenever the
// server answered.
func (m *Moderator) Delete(ctx context.Context, id string) error {
	if err := panel.Confirm(m.confirm, MsgDeleteConfirm); err != nil {
		return err
	}

	err := m.store.DeleteChatMessage(ctx, id)
	if err != nil {
		panel.Report(m.notifier, m.logger, "delete chat message", err, MsgDeleteFailed, MsgDeleteFailed)
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

// Render draws the message table. Listener text is sanitized before it
// reaches the terminal.
func (m *Moderator) Render(color bool) string {
	if len(m.messages) == 0 {
		return MsgEmpty + "\n"
	}

	rows := make([][]string, 0, len(m.messages))
	for _, msg := range m.messages {
		flag := "-"
		if msg.Flagged {
			flag = MsgFlagged
		}
		rows = append(rows, []string{
			msg.ID,
			m.clock.FormatDateTime(msg.TS.Time),
			panel.Sanitize(msg.Name),
			panel.Sanitize(msg.Text),
			panel.OrDash(panel.Sanitize(msg.IP)),
			flag,
		})
	}
	return panel.Table(color, []string{"ID", "Waktu", "Nama", "Pesan", "IP", "Flag"}, rows) + "\n"
}
