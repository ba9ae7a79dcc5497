package panel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"haloradio-admin/internal/adminapi"
	"haloradio-admin/internal/logging"
	"haloradio-admin/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	ok  bool
	err error
}

func (a answer) Confirm(string) (bool, error) {
	return a.ok, a.err
}

func TestConfirm(t *testing.T) {
	assert.NoError(t, Confirm(nil, "?"))
	assert.NoError(t, Confirm(answer{ok: true}, "?"))
	assert.ErrorIs(t, Confirm(answer{ok: false}, "?"), ErrCanceled)

	boom := errors.New("no tty")
	err := Confirm(answer{err: boom}, "?")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCanceled)
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &adminapi.APIError{Op: "x", Message: "ID tidak ditemukan."}, "ID tidak ditemukan."},
		{"bare refusal", &adminapi.APIError{Op: "x"}, "rejected"},
		{"transport", &adminapi.TransportError{Op: "x", Err: errors.New("dial")}, "transport"},
		{"other", errors.New("boom"), "transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureMessage(tt.err, "rejected", "transport"))
		})
	}
}

func TestAnswered(t *testing.T) {
	assert.True(t, Answered(nil))
	assert.True(t, Answered(&adminapi.APIError{Op: "x"}))
	assert.False(t, Answered(&adminapi.TransportError{Op: "x", Err: errors.New("dial")}))
}

func TestReportPublishesError(t *testing.T) {
	n := notify.NewNotifier(logging.Discard(), 5)
	Report(n, logging.Discard(), "delete", &adminapi.APIError{Op: "delete"}, "Gagal hapus", "Gagal hapus")

	last, ok := n.Last()
	require.True(t, ok)
	assert.True(t, last.IsError())
	assert.Equal(t, "Gagal hapus", last.Message)
}

func TestPollRefreshesUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- Poll(ctx, 5*time.Millisecond, logging.Discard(), func(context.Context) error {
			if calls.Add(1) == 3 {
				cancel()
			}
			return errors.New("ignored")
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Poll did not stop after cancel")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestPollRejectsZeroInterval(t *testing.T) {
	err := Poll(context.Background(), 0, logging.Discard(), func(context.Context) error { return nil })
	assert.Error(t, err)
}
