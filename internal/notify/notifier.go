// Package notify is the shared notification service of the admin client. One
// Notifier is constructed per session and handed to every panel.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level distinguishes success notices from errors
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notice is a single user-facing message
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// IsError reports whether the notice reports a failure
func (n Notice) IsError() bool {
	return n.Level == LevelError
}

// Notifier fans notices out to subscribers and keeps a short history
type Notifier struct {
	mutex     sync.RWMutex
	history   []Notice
	limit     int
	listeners []chan Notice
	logger    *logrus.Logger
	now       func() time.Time
}

// NewNotifier creates a notifier keeping the last limit notices
func NewNotifier(logger *logrus.Logger, limit int) *Notifier {
	if limit <= 0 {
		limit = 20
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Notifier{
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// Success publishes a success notice
func (n *Notifier) Success(msg string) {
	n.publish(LevelSuccess, msg)
}

// Successf publishes a formatted success notice
func (n *Notifier) Successf(format string, args ...any) {
	n.publish(LevelSuccess, fmt.Sprintf(format, args...))
}

// Error publishes an error notice
func (n *Notifier) Error(msg string) {
	n.publish(LevelError, msg)
}

func (n *Notifier) publish(level Level, msg string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	notice := Notice{Level: level, Message: msg, At: n.now()}
	n.history = append(n.history, notice)
	if len(n.history) > n.limit {
		n.history = n.history[len(n.history)-n.limit:]
	}

	n.logger.WithFields(logrus.Fields{
		"level":   level.String(),
		"message": msg,
	}).Debug("Notice published")

	n.notifyListeners(notice)
}

// History returns the retained notices, oldest first
func (n *Notifier) History() []Notice {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	out := make([]Notice, len(n.history))
	copy(out, n.history)
	return out
}

// Last returns the most recent notice
func (n *Notifier) Last() (Notice, bool) {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	if len(n.history) == 0 {
		return Notice{}, false
	}
	return n.history[len(n.history)-1], true
}

// Subscribe adds a listener for new notices
func (n *Notifier) Subscribe() <-chan Notice {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	ch := make(chan Notice, 10)
	n.listeners = append(n.listeners, ch)
	return ch
}

// Unsubscribe removes a listener and closes its channel
func (n *Notifier) Unsubscribe(ch <-chan Notice) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	for i, listener := range n.listeners {
		if listener == ch {
			close(listener)
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			break
		}
	}
}

// notifyListeners must be called with the lock held. Slow listeners whose
// buffer is full are dropped.
func (n *Notifier) notifyListeners(notice Notice) {
	kept := n.listeners[:0]
	for _, listener := range n.listeners {
		select {
		case listener <- notice:
			kept = append(kept, listener)
		default:
			close(listener)
		}
	}
	n.listeners = kept
}
