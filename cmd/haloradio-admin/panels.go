package main

import (
	"context"
	"fmt"

	"haloradio-admin/internal/chat"
	"haloradio-admin/internal/requests"
	"haloradio-admin/internal/schedules"

	"github.com/urfave/cli/v2"
)

func (s *session) requestBoard() *requests.Board {
	return requests.New(requests.Options{
		Store:    s.client,
		Notifier: s.notifier,
		Clock:    s.clock,
		Logger:   s.logger,
	})
}

func (s *session) scheduleManager() *schedules.Manager {
	return schedules.New(schedules.Options{
		Store:     s.client,
		Notifier:  s.notifier,
		Confirmer: s.confirmer,
		Clock:     s.clock,
		Logger:    s.logger,
	})
}

func (s *session) chatModerator(limit int) *chat.Moderator {
	return chat.New(chat.Options{
		Store:     s.client,
		Notifier:  s.notifier,
		Confirmer: s.confirmer,
		Clock:     s.clock,
		Logger:    s.logger,
		Limit:     limit,
	})
}

func listRequests(c *cli.Context) error {
	status := ""
	if v := c.String("status"); v != "" {
		parsed, ok := requests.ParseStatus(v)
		if !ok {
			return cli.Exit(fmt.Sprintf("unknown --status %q: use New, In-Progress or Done", v), 2)
		}
		status = parsed
	}

	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	board := s.requestBoard()
	if err := board.SetFilter(c.Context, status); err != nil {
		return reported(err)
	}
	board.SetPage(c.Int("page"))
	fmt.Fprint(s.out, board.Render(s.cfg.UI.Color))

	return s.watch(c, func(ctx context.Context) error {
		if !board.ShouldPoll() {
			board.RefreshCount(ctx)
			return nil
		}
		page := board.Page()
		if err := board.Load(ctx); err != nil {
			return err
		}
		board.SetPage(page)
		fmt.Fprint(s.out, board.Render(s.cfg.UI.Color))
		return nil
	})
}

func setRequestStatus(c *cli.Context) error {
	id, raw := c.Args().Get(0), c.Args().Get(1)
	if id == "" || raw == "" {
		return cli.Exit("usage: requests set <id> <New|In-Progress|Done>", 2)
	}
	status, ok := requests.ParseStatus(raw)
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown status %q: use New, In-Progress or Done", raw), 2)
	}

	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	board := s.requestBoard()
	err = board.SetStatus(c.Context, id, status)
	if err == nil {
		fmt.Fprint(s.out, board.Render(s.cfg.UI.Color))
	}
	return reported(err)
}

func countRequests(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.closer.Close()

	fmt.Fprintln(s.out, s.requestBoard().RefreshCount(c.Context))
	return nil
}

func listSchedules(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	m := s.scheduleManager()
	if err := m.Load(c.Context); err != nil {
		return reported(err)
	}
	fmt.Fprint(s.out, m.Render(s.cfg.UI.Color))
	return nil
}

func addSchedule(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	draft := schedules.Draft{
		Title:       c.String("title"),
		Host:        c.String("host"),
		Description: c.String("desc"),
		Start:       c.String("start"),
		End:         c.String("end"),
	}
	if c.Bool("interactive") {
		if err := scheduleForm(&draft); err != nil {
			return err
		}
	}

	m := s.scheduleManager()
	err = m.Add(c.Context, draft)
	if err == nil {
		fmt.Fprint(s.out, m.Render(s.cfg.UI.Color))
	}
	return reported(err)
}

func deleteSchedule(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("missing <id>", 2)
	}

	s, err := newSession(c, confirmerFor(c))
	if err != nil {
		return err
	}
	defer s.finish()

	return reported(canceledOK(s.scheduleManager().Delete(c.Context, id)))
}

func listChat(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	m := s.chatModerator(c.Int("limit"))
	if err := m.SetFlaggedOnly(c.Context, c.Bool("flagged")); err != nil {
		return reported(err)
	}
	fmt.Fprint(s.out, m.Render(s.cfg.UI.Color))

	return s.watch(c, func(ctx context.Context) error {
		if err := m.Load(ctx); err != nil {
			return err
		}
		fmt.Fprint(s.out, m.Render(s.cfg.UI.Color))
		return nil
	})
}

func deleteChat(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("missing <id>", 2)
	}

	s, err := newSession(c, confirmerFor(c))
	if err != nil {
		return err
	}
	defer s.finish()

	return reported(canceledOK(s.chatModerator(0).Delete(c.Context, id)))
}

func watchFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "refresh every ui.poll_interval_seconds until interrupted",
	}
}

func yesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"}
}

func requestsCommand() *cli.Command {
	return &cli.Command{
		Name:    "requests",
		Aliases: []string{"req"},
		Usage:   "Review listener song requests",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List requests, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New, In-Progress or Done (default: all)"},
					&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1, Usage: "page to show"},
					watchFlag(),
				},
				Action: listRequests,
			},
			{
				Name:      "set",
				Usage:     "Change the status of a request",
				ArgsUsage: "<id> <New|In-Progress|Done>",
				Action:    setRequestStatus,
			},
			{
				Name:   "count",
				Usage:  "Print how many requests are still New",
				Action: countRequests,
			},
		},
	}
}

func schedulesCommand() *cli.Command {
	return &cli.Command{
		Name:    "schedules",
		Aliases: []string{"sch"},
		Usage:   "Manage dated broadcast schedules",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List schedules, latest start first",
				Action: listSchedules,
			},
			{
				Name:  "add",
				Usage: "Add a schedule",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "program title"},
					&cli.StringFlag{Name: "host", Usage: "host name"},
					&cli.StringFlag{Name: "desc", Usage: "description"},
					&cli.StringFlag{Name: "start", Usage: "start, yyyy-mm-dd HH:MM station time"},
					&cli.StringFlag{Name: "end", Usage: "end, yyyy-mm-dd HH:MM station time"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "fill the schedule in a form"},
				},
				Action: addSchedule,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a schedule",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    deleteSchedule,
			},
		},
	}
}

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Moderate the live chat",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent messages, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "flagged", Aliases: []string{"f"}, Usage: "only flagged messages"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: chat.DefaultLimit, Usage: "messages to fetch"},
					watchFlag(),
				},
				Action: listChat,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a message",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    deleteChat,
			},
		},
	}
}
