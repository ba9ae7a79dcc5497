package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"haloradio-admin/internal/panel"
	"haloradio-admin/internal/station"
	"haloradio-admin/internal/timeline"
	"haloradio-admin/internal/ytlink"
	"haloradio-admin/pkg/models"

	"github.com/urfave/cli/v2"
)

// errReported marks failures the user has already been told about
var errReported = cli.Exit("", 1)

// canceledOK treats a declined confirmation as success
func canceledOK(err error) error {
	if errors.Is(err, panel.ErrCanceled) {
		return nil
	}
	return err
}

// reported converts an operation error into an exit status; the notice for
// it is printed by session.finish.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return errReported
}

func showPlaylist(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	if err := s.timeline.Load(c.Context); err != nil {
		return reported(err)
	}
	return s.selectDay(c)
}

func listDays(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	today := station.NewClock(cfg.Station.UTCOffsetHours, cfg.Station.ZoneLabel, nil).Today()
	for i, name := range station.DayNames {
		suffix := ""
		if i == today {
			suffix = timeline.MsgTodaySuffix
		}
		fmt.Fprintf(c.App.Writer, "%d  %s%s\n", i, name, suffix)
	}
	return nil
}

func addPlaylist(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	entry := models.PlaylistEntry{
		Day:       c.Int("day"),
		StartHHMM: c.String("start"),
		EndHHMM:   c.String("end"),
		Program:   c.String("program"),
		Tracks:    c.String("tracks"),
	}
	if entry.Day < 0 {
		entry.Day = s.timeline.ActiveDay()
	}
	if c.Bool("interactive") {
		if err := entryForm(&entry, s.clock.Today()); err != nil {
			return err
		}
	}

	return reported(s.timeline.Add(c.Context, entry))
}

func deletePlaylist(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("missing <id>", 2)
	}

	s, err := newSession(c, confirmerFor(c))
	if err != nil {
		return err
	}
	defer s.finish()

	if err := s.timeline.Load(c.Context); err != nil {
		return reported(err)
	}
	if err := s.selectDay(c); err != nil {
		return err
	}

	return reported(canceledOK(s.timeline.Delete(c.Context, id)))
}

func moveAction(delta int) cli.ActionFunc {
	return func(c *cli.Context) error {
		id := c.Args().First()
		if id == "" {
			return cli.Exit("missing <id>", 2)
		}

		s, err := newSession(c, nil)
		if err != nil {
			return err
		}
		defer s.finish()

		if err := s.timeline.Load(c.Context); err != nil {
			return reported(err)
		}
		if err := s.selectDay(c); err != nil {
			return err
		}
		return reported(s.timeline.Move(c.Context, id, delta))
	}
}

func exportPlaylist(c *cli.Context) error {
	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.closer.Close()

	out := c.String("out")
	if out == "" {
		fmt.Fprintln(c.App.Writer, s.timeline.ExportURL())
		return nil
	}

	written, err := downloadTo(out, func(w io.Writer) (int64, error) {
		var n int64
		err := s.spinner("Mengunduh CSV...").Context(c.Context).ActionWithErr(func(ctx context.Context) error {
			var err error
			n, err = s.client.ExportCSV(ctx, w)
			return err
		}).Run()
		return n, err
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "%s (%d bytes)\n", out, written)
	return nil
}

// downloadTo writes to a temporary file next to out and renames it into
// place only when fetch succeeds, so a failed download leaves nothing behind.
func downloadTo(out string, fetch func(io.Writer) (int64, error)) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(out), ".haloradio-export-*.csv")
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer os.Remove(tmp.Name())

	n, err := fetch(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return n, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return n, nil
}

func importPlaylist(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("missing <file>", 2)
	}

	s, err := newSession(c, nil)
	if err != nil {
		return err
	}
	defer s.finish()

	mode := c.String("mode")
	if mode == "" {
		mode = s.cfg.UI.DefaultImportMode
	}
	if c.Bool("interactive") {
		if err := importModeForm(&mode); err != nil {
			return err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	upload := func(ctx context.Context) error {
		_, err := s.timeline.ImportCSV(ctx, filepath.Base(path), file, mode)
		return err
	}
	if err := s.spinner("Mengunggah CSV...").Context(c.Context).ActionWithErr(upload).Run(); err != nil {
		return reported(err)
	}
	return nil
}

func ytLinks(c *cli.Context) error {
	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if input == "" {
		return cli.Exit("Isi dulu URL atau kata kunci.", 2)
	}

	if ytlink.IsResultsURL(input) {
		fmt.Fprintln(c.App.Writer, input)
		return nil
	}
	if watch, ok := ytlink.WatchURL(input); ok {
		short, _ := ytlink.ShortURL(input)
		fmt.Fprintf(c.App.Writer, "watch: %s\nshort: %s\n", watch, short)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "search: %s\n", ytlink.SearchURL(input))
	return nil
}
