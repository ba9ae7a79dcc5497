// Package panel holds what every admin panel shares: confirmation prompts,
// field validation errors, failure notices and periodic refresh.
package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"haloradio-admin/internal/adminapi"
	"haloradio-admin/internal/notify"

	"github.com/sirupsen/logrus"
)

// ErrCanceled is returned when the user declines a confirmation prompt
var ErrCanceled = errors.New("canceled by user")

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Confirm asks c and returns ErrCanceled when the answer is no. A nil
// Confirmer confirms everything.
func Confirm(c Confirmer, prompt string) error {
	if c == nil {
		return nil
	}
	ok, err := c.Confirm(prompt)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return ErrCanceled
	}
	return nil
}

// ValidationError represents a rejected form field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// FailureMessage picks the user-facing text for err: the server's own message
// when it sent one, rejected when it refused without one, and transport for
// everything else.
func FailureMessage(err error, rejected, transport string) string {
	serverMsg, ok := adminapi.ServerMessage(err)
	if !ok {
		return transport
	}
	if serverMsg != "" {
		return serverMsg
	}
	return rejected
}

// Answered reports whether the server answered a request, successfully or
// with a refusal. Panels refresh after every answered mutation.
func Answered(err error) bool {
	if err == nil {
		return true
	}
	_, ok := adminapi.ServerMessage(err)
	return ok
}

// Report logs a failed panel operation and publishes its notice
func Report(n *notify.Notifier, logger *logrus.Logger, op string, err error, rejected, transport string) {
	logger.WithField("op", op).WithError(err).Warn("Admin operation failed")
	n.Error(FailureMessage(err, rejected, transport))
}

// Poll calls refresh every interval until ctx is done. Refresh errors are
// logged and polling continues; they have already been reported to the user.
func Poll(ctx context.Context, interval time.Duration, logger *logrus.Logger, refresh func(context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := refresh(ctx); err != nil {
				logger.WithError(err).Debug("Refresh failed")
			}
		}
	}
}
