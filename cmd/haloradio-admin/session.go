package main

import (
	"context"
	"fmt"
	"io"

	"haloradio-admin/internal/adminapi"
	"haloradio-admin/internal/config"
	"haloradio-admin/internal/logging"
	"haloradio-admin/internal/notify"
	"haloradio-admin/internal/panel"
	"haloradio-admin/internal/station"
	"haloradio-admin/internal/timeline"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// session wires the shared services of one command invocation
type session struct {
	cfg       *config.Config
	logger    *logrus.Logger
	closer    io.Closer
	client    *adminapi.Client
	notifier  *notify.Notifier
	clock     *station.Clock
	confirmer panel.Confirmer
	timeline  *timeline.Timeline
	view      *lastView
	styles    timeline.Styles
	out       io.Writer
	errOut    io.Writer

	// set while notices are printed as they arrive
	follow <-chan notify.Notice
}

// lastView keeps only the final view; a command may re-render several times
type lastView struct {
	view *timeline.View
}

func (l *lastView) Render(v timeline.View) {
	l.view = &v
}

// loadConfig reads the config file and environment, applies the global
// flags and validates the result once.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if v := c.String("api"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if c.Bool("no-color") {
		cfg.UI.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSession builds the services of a command. confirmer is used for
// deletions unless the config turns confirmations off.
func newSession(c *cli.Context, confirmer panel.Confirmer) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	client, err := adminapi.NewClient(adminapi.Options{
		BaseURL:           cfg.API.BaseURL,
		SessionCookieName: cfg.API.SessionCookieName,
		SessionCookie:     cfg.API.SessionCookie,
		UserAgent:         cfg.API.UserAgent,
		Timeout:           cfg.Timeout(),
		Logger:            logger,
	})
	if err != nil {
		closer.Close()
		return nil, err
	}

	if !cfg.UI.ConfirmDeletes {
		confirmer = nil
	}
	s := &session{
		cfg:       cfg,
		logger:    logger,
		closer:    closer,
		client:    client,
		notifier:  notify.NewNotifier(logger, 20),
		clock:     station.NewClock(cfg.Station.UTCOffsetHours, cfg.Station.ZoneLabel, nil),
		confirmer: confirmer,
		view:      &lastView{},
		styles:    timeline.DefaultStyles(cfg.UI.Color),
		out:       c.App.Writer,
		errOut:    c.App.ErrWriter,
	}
	s.timeline = timeline.New(timeline.Options{
		Store:     client,
		Notifier:  s.notifier,
		Confirmer: confirmer,
		Renderer:  s.view,
		Clock:     s.clock,
		Logger:    logger,
	})

	logger.WithFields(logrus.Fields{
		"api":        cfg.API.BaseURL,
		"active_day": s.timeline.ActiveDay(),
	}).Debug("Session ready")
	return s, nil
}

// confirmerFor asks in the terminal unless --yes was given
func confirmerFor(c *cli.Context) panel.Confirmer {
	if c.Bool("yes") {
		return nil
	}
	return huhConfirmer{}
}

// spinner shows progress on stderr; without colors it prints plain lines so
// it also works when no terminal is attached.
func (s *session) spinner(title string) *spinner.Spinner {
	return spinner.New().
		Title(title).
		Accessible(!s.cfg.UI.Color).
		Output(s.errOut)
}

// selectDay applies the --day flag; -1 keeps the default active day
func (s *session) selectDay(c *cli.Context) error {
	day := c.Int("day")
	if day < 0 {
		return nil
	}
	if err := s.timeline.SelectDay(day); err != nil {
		return fmt.Errorf("invalid --day %d: must be between 0 and 6", day)
	}
	return nil
}

// watch re-runs refresh every poll interval until the command is
// interrupted, printing notices as they come. Without --watch it returns at
// once.
func (s *session) watch(c *cli.Context, refresh func(ctx context.Context) error) error {
	if !c.Bool("watch") {
		return nil
	}

	s.printNotices(s.notifier.History())
	s.follow = s.notifier.Subscribe()
	return panel.Poll(c.Context, s.cfg.PollInterval(), s.logger, func(ctx context.Context) error {
		err := refresh(ctx)
		s.drainNotices()
		return err
	})
}

// drainNotices prints the notices waiting on the follow channel
func (s *session) drainNotices() {
	for {
		select {
		case n, ok := <-s.follow:
			if !ok {
				return
			}
			s.printNotices([]notify.Notice{n})
		default:
			return
		}
	}
}

// finish prints the final view and the notices not shown yet, then releases
// resources.
func (s *session) finish() {
	defer s.closer.Close()

	if s.view.view != nil {
		fmt.Fprint(s.out, timeline.RenderText(*s.view.view, s.styles))
		if line := s.onAir(*s.view.view); line != "" {
			fmt.Fprintln(s.out, s.styles.Live.Render(line))
		}
	}

	if s.follow != nil {
		s.drainNotices()
		s.notifier.Unsubscribe(s.follow)
		return
	}
	s.printNotices(s.notifier.History())
}

func (s *session) printNotices(notices []notify.Notice) {
	for _, n := range notices {
		fmt.Fprintln(s.out, s.noticeStyle(n).Render(n.Message))
	}
}

// onAir describes the live slot of v with its full date range, if any
func (s *session) onAir(v timeline.View) string {
	for _, slot := range v.Slots {
		if !slot.Live {
			continue
		}
		now := s.clock.Now()
		start, err := s.clock.At(now, slot.Item.StartHHMM)
		if err != nil {
			return ""
		}
		end, err := s.clock.At(now, slot.Item.EndHHMM)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("Sedang tayang: %s, %s", slot.Program, s.clock.FormatRange(start, end))
	}
	return ""
}

func (s *session) noticeStyle(n notify.Notice) lipgloss.Style {
	if !s.cfg.UI.Color {
		return lipgloss.NewStyle()
	}
	if n.IsError() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
}
