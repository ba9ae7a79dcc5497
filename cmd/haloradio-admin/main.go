package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "haloradio-admin",
		Usage: "Manage the station's playlist, requests, schedules and chat from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./haloradio-admin.toml",
				Usage:   "path to the TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "api",
				Usage: "admin API base url (overrides config and HALORADIO_API_URL)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Commands: []*cli.Command{
			playlistCommand(),
			requestsCommand(),
			schedulesCommand(),
			chatCommand(),
			ytCommand(),
		},
	}
}

func dayFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "day",
		Aliases: []string{"d"},
		Value:   -1,
		Usage:   "weekday index, 0 = Senin ... 6 = Minggu (default: today)",
	}
}

func playlistCommand() *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Show and edit the weekly playlist timeline",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the timeline of one day",
				Flags:  []cli.Flag{dayFlag()},
				Action: showPlaylist,
			},
			{
				Name:   "days",
				Usage:  "List the weekday indices",
				Action: listDays,
			},
			{
				Name:  "add",
				Usage: "Add a program slot",
				Flags: []cli.Flag{
					dayFlag(),
					&cli.StringFlag{Name: "program", Aliases: []string{"p"}, Usage: "program name"},
					&cli.StringFlag{Name: "start", Usage: "start time, HH:MM"},
					&cli.StringFlag{Name: "end", Usage: "end time, HH:MM"},
					&cli.StringFlag{Name: "tracks", Usage: "free-text track list"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "fill the entry in a form"},
				},
				Action: addPlaylist,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a program slot",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{dayFlag(), yesFlag()},
				Action:    deletePlaylist,
			},
			{
				Name:      "up",
				Usage:     "Move a slot one position earlier",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{dayFlag()},
				Action:    moveAction(-1),
			},
			{
				Name:      "down",
				Usage:     "Move a slot one position later",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{dayFlag()},
				Action:    moveAction(1),
			},
			{
				Name:  "export",
				Usage: "Download the playlist CSV, or print its url",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "file to write the CSV to"},
				},
				Action: exportPlaylist,
			},
			{
				Name:      "import",
				Usage:     "Upload a playlist CSV",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "import mode understood by the server (default from config)"},
					&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "choose the mode in a prompt"},
				},
				Action: importPlaylist,
			},
		},
	}
}

func ytCommand() *cli.Command {
	return &cli.Command{
		Name:      "yt",
		Usage:     "Normalise a YouTube link or id, or build a search link",
		ArgsUsage: "<url | id | keywords>",
		Action:    ytLinks,
	}
}
