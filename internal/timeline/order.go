package timeline

import (
	"sort"

	"haloradio-admin/pkg/models"
)

// Less is the display order within a day: sort key ascending, then start
// time. The id only separates items that agree on both.
func Less(a, b models.PlaylistItem) bool {
	if a.SortKey != b.SortKey {
		return a.SortKey < b.SortKey
	}
	if a.StartHHMM != b.StartHHMM {
		return a.StartHHMM < b.StartHHMM
	}
	return a.ID < b.ID
}

// ForDay returns the items of one day partition in display order. The input
// slice is not modified.
func ForDay(items []models.PlaylistItem, day int) []models.PlaylistItem {
	out := make([]models.PlaylistItem, 0, len(items))
	for _, it := range items {
		if it.Day == day {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// IndexOf returns the position of id in items, or -1
func IndexOf(items []models.PlaylistItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// MovedOrder computes the id order of a day after moving id by delta
// positions. ordered must already be in display order. ok is false when id is
// unknown or the target falls outside the day, in which case nothing should
// be submitted.
func MovedOrder(ordered []models.PlaylistItem, id string, delta int) (ids []string, ok bool) {
	idx := IndexOf(ordered, id)
	if idx < 0 {
		return nil, false
	}
	to := idx + delta
	if to < 0 || to >= len(ordered) || to == idx {
		return nil, false
	}

	ids = make([]string, 0, len(ordered))
	for i, it := range ordered {
		if i != idx {
			ids = append(ids, it.ID)
		}
	}
	ids = append(ids[:to], append([]string{id}, ids[to:]...)...)
	return ids, true
}
