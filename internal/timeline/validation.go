package timeline

import (
	"strings"

	"haloradio-admin/internal/panel"
	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"
)

// NormalizeEntry trims surrounding whitespace from every text field
func NormalizeEntry(entry models.PlaylistEntry) models.PlaylistEntry {
	entry.StartHHMM = strings.TrimSpace(entry.StartHHMM)
	entry.EndHHMM = strings.TrimSpace(entry.EndHHMM)
	entry.Program = strings.TrimSpace(entry.Program)
	entry.Tracks = strings.TrimSpace(entry.Tracks)
	return entry
}

// ValidateEntry checks an already normalized entry before it is submitted
func ValidateEntry(entry models.PlaylistEntry) *panel.ValidationError {
	if !station.ValidDay(entry.Day) {
		return &panel.ValidationError{
			Field:   "day",
			Message: MsgInvalidDay,
			Code:    "INVALID_DAY",
		}
	}

	if entry.Program == "" {
		return &panel.ValidationError{
			Field:   "program",
			Message: MsgProgramRequired,
			Code:    "MISSING_PROGRAM",
		}
	}

	if !station.ValidHHMM(entry.StartHHMM) {
		return &panel.ValidationError{
			Field:   "start_hhmm",
			Message: MsgInvalidTime,
			Code:    "INVALID_TIME_FORMAT",
		}
	}
	if !station.ValidHHMM(entry.EndHHMM) {
		return &panel.ValidationError{
			Field:   "end_hhmm",
			Message: MsgInvalidTime,
			Code:    "INVALID_TIME_FORMAT",
		}
	}

	return nil
}
