package main

import (
	"haloradio-admin/internal/schedules"
	"haloradio-admin/internal/station"
	"haloradio-admin/internal/timeline"
	"haloradio-admin/pkg/models"

	"github.com/charmbracelet/huh"
)

// huhConfirmer asks yes/no questions in the terminal
type huhConfirmer struct{}

func (huhConfirmer) Confirm(prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Ya").
		Negative("Batal").
		Value(&ok).
		Run()
	return ok, err
}

// entryForm lets the user fill in or correct a playlist entry
func entryForm(entry *models.PlaylistEntry, today int) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Hari").
				Options(dayOptions(today)...).
				Value(&entry.Day),
			huh.NewInput().
				Title("Program").
				Value(&entry.Program),
			huh.NewInput().
				Title("Mulai (HH:MM)").
				Placeholder("06:00").
				Value(&entry.StartHHMM),
			huh.NewInput().
				Title("Selesai (HH:MM)").
				Placeholder("09:00").
				Value(&entry.EndHHMM),
			huh.NewText().
				Title("Daftar lagu").
				Value(&entry.Tracks),
		),
	).Run()
}

// scheduleForm lets the user fill in or correct a broadcast schedule
func scheduleForm(d *schedules.Draft) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Judul program").
				Value(&d.Title),
			huh.NewInput().
				Title("Penyiar").
				Value(&d.Host),
			huh.NewInput().
				Title("Mulai (yyyy-mm-dd HH:MM)").
				Placeholder("2026-10-20 06:00").
				Value(&d.Start),
			huh.NewInput().
				Title("Selesai (yyyy-mm-dd HH:MM)").
				Placeholder("2026-10-20 09:00").
				Value(&d.End),
			huh.NewText().
				Title("Deskripsi").
				Value(&d.Description),
		),
	).Run()
}

func dayOptions(today int) []huh.Option[int] {
	opts := make([]huh.Option[int], len(station.DayNames))
	for i, name := range station.DayNames {
		if i == today {
			name += timeline.MsgTodaySuffix
		}
		opts[i] = huh.NewOption(name, i)
	}
	return opts
}

// importModes are the modes the admin API accepts for CSV uploads
var importModes = []string{"merge", "replace"}

// importModeForm lets the user pick the CSV import mode
func importModeForm(mode *string) error {
	return huh.NewSelect[string]().
		Title("Mode import").
		Options(huh.NewOptions(importModes...)...).
		Value(mode).
		Run()
}
