package timeline

import (
	"testing"
	"time"

	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"
)

// wib builds an instant from station wall-clock values
func wib(day, hour, minute int) time.Time {
	// 2026-10-19 is a Monday
	return time.Date(2026, 10, 19+day, hour, minute, 0, 0, time.FixedZone("WIB", 7*3600))
}

func TestIsLive(t *testing.T) {
	clock := station.Jakarta()
	item := models.PlaylistItem{Day: 2, StartHHMM: "08:00", EndHHMM: "10:00"}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"at start", wib(2, 8, 0), true},
		{"inside", wib(2, 9, 59), true},
		{"at end", wib(2, 10, 0), false},
		{"before", wib(2, 7, 59), false},
		{"other day same time", wib(3, 9, 0), false},
		// 01:30 UTC Wednesday is 08:30 WIB Wednesday
		{"utc input converted", time.Date(2026, 10, 21, 1, 30, 0, 0, time.UTC), true},
		// 23:30 UTC Tuesday is already 06:30 WIB Wednesday
		{"utc previous day", time.Date(2026, 10, 20, 23, 30, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLive(item, tt.now, clock); got != tt.want {
				t.Errorf("IsLive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsLiveMalformedTimes(t *testing.T) {
	clock := station.Jakarta()
	item := models.PlaylistItem{Day: 0, StartHHMM: "pagi", EndHHMM: "10:00"}
	if IsLive(item, wib(0, 9, 0), clock) {
		t.Error("malformed start must never be live")
	}
}

func TestIsLiveInvertedWindow(t *testing.T) {
	clock := station.Jakarta()
	// end before start is accepted as data but has an empty window
	item := models.PlaylistItem{Day: 0, StartHHMM: "23:00", EndHHMM: "01:00"}
	if IsLive(item, wib(0, 23, 30), clock) {
		t.Error("inverted window must never be live")
	}
}
