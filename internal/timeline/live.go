package timeline

import (
	"time"

	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"
)

// IsLive reports whether item is on air at now. now is converted to station
// time; the window is [start, end) in minutes of the item's own day. Items
// with unparsable times are never live.
func IsLive(item models.PlaylistItem, now time.Time, clock *station.Clock) bool {
	local := clock.In(now)
	if station.Weekday(local) != item.Day {
		return false
	}

	start, err := station.Minutes(item.StartHHMM)
	if err != nil {
		return false
	}
	end, err := station.Minutes(item.EndHHMM)
	if err != nil {
		return false
	}

	mins := station.MinuteOfDay(local)
	return mins >= start && mins < end
}
