package timeline

import (
	"fmt"

	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"
)

// DayTab is one entry of the day selector
type DayTab struct {
	Day    int
	Name   string
	Active bool
	Today  bool
}

// Slot is one rendered row of the timeline
type Slot struct {
	Item        models.PlaylistItem
	Position    int
	TimeLabel   string // "06:00–08:00 WIB"
	Program     string
	Live        bool
	CanMoveUp   bool
	CanMoveDown bool
}

// View is everything needed to draw the playlist panel
type View struct {
	Day     int
	DayName string
	Tabs    []DayTab
	Slots   []Slot
	Empty   string // set when the day has no items
}

// View builds the current view model. Live flags are evaluated against the
// clock at call time.
func (t *Timeline) View() View {
	return BuildView(t.items, t.activeDay, t.clock)
}

// BuildView renders items for day into a view model
func BuildView(items []models.PlaylistItem, day int, clock *station.Clock) View {
	now := clock.Now()
	today := station.Weekday(now)

	v := View{
		Day:     day,
		DayName: station.DayName(day),
		Tabs:    make([]DayTab, 0, len(station.DayNames)),
	}
	for i, name := range station.DayNames {
		v.Tabs = append(v.Tabs, DayTab{Day: i, Name: name, Active: i == day, Today: i == today})
	}

	ordered := ForDay(items, day)
	if len(ordered) == 0 {
		v.Empty = fmt.Sprintf(MsgEmptyDay, v.DayName)
		return v
	}

	v.Slots = make([]Slot, 0, len(ordered))
	for i, it := range ordered {
		program := it.Program
		if program == "" {
			program = placeholderProgram
		}
		v.Slots = append(v.Slots, Slot{
			Item:        it,
			Position:    i,
			TimeLabel:   fmt.Sprintf("%s–%s %s", it.StartHHMM, it.EndHHMM, clock.Label()),
			Program:     program,
			Live:        IsLive(it, now, clock),
			CanMoveUp:   i > 0,
			CanMoveDown: i < len(ordered)-1,
		})
	}
	return v
}
