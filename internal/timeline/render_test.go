package timeline

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"haloradio-admin/internal/station"
	"haloradio-admin/pkg/models"
)

func TestRenderText(t *testing.T) {
	clock := station.NewClock(7, "WIB", func() time.Time { return mondayMorning })
	v := BuildView(seedDay(), 0, clock)

	out := RenderText(v, DefaultStyles(false))

	for _, want := range []string{"Senin", "[Hari ini]", "Minggu", "06:00–09:00 WIB", "Kopi Pagi", "id:C", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered timeline missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var slotLines []string
	for _, l := range lines {
		if strings.Contains(l, "id:") {
			slotLines = append(slotLines, l)
		}
	}
	if len(slotLines) != 3 {
		t.Fatalf("expected 3 slot lines, got %d:\n%s", len(slotLines), out)
	}
	if !strings.Contains(slotLines[1], "●") {
		t.Errorf("expected the second slot to be marked live: %q", slotLines[1])
	}
}

func TestRenderTextEmptyDay(t *testing.T) {
	clock := station.NewClock(7, "WIB", func() time.Time { return mondayMorning })
	v := BuildView(nil, 6, clock)

	out := RenderText(v, DefaultStyles(false))
	if !strings.Contains(out, "Belum ada playlist untuk Minggu.") {
		t.Errorf("expected empty state, got:\n%s", out)
	}
}

func TestBuildViewPlaceholderProgram(t *testing.T) {
	clock := station.Jakarta()
	v := BuildView([]models.PlaylistItem{{ID: "x", Day: 3, StartHHMM: "01:00", EndHHMM: "02:00"}}, 3, clock)
	if len(v.Slots) != 1 || v.Slots[0].Program != "-" {
		t.Errorf("expected placeholder program, got %+v", v.Slots)
	}
	if v.Slots[0].CanMoveUp || v.Slots[0].CanMoveDown {
		t.Error("a single slot cannot move either way")
	}
}

func TestWriterRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &WriterRenderer{Out: &buf, Styles: DefaultStyles(false)}
	clock := station.NewClock(7, "WIB", func() time.Time { return mondayMorning })

	r.Render(BuildView(seedDay(), 4, clock))
	if !strings.Contains(buf.String(), "Jumat Malam") {
		t.Errorf("expected Friday slot in output:\n%s", buf.String())
	}
}
