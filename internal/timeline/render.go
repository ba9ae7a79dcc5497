package timeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles used to draw a View
type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Badge     lipgloss.Style
	TimeChip  lipgloss.Style
	Program   lipgloss.Style
	Live      lipgloss.Style
	Tracks    lipgloss.Style
	Muted     lipgloss.Style
	Empty     lipgloss.Style
}

// DefaultStyles returns the terminal palette; plain styles when color is off
func DefaultStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Tab: plain, ActiveTab: plain.Underline(true), Badge: plain,
			TimeChip: plain, Program: plain, Live: plain, Tracks: plain.PaddingLeft(4),
			Muted: plain, Empty: plain,
		}
	}

	return Styles{
		Tab:       lipgloss.NewStyle().Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
		Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		TimeChip:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Program:   lipgloss.NewStyle().Bold(true),
		Live:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Tracks:    lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("245")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
	}
}

// RenderText draws the day tabs followed by the active day's slots
func RenderText(v View, st Styles) string {
	var b strings.Builder

	tabs := make([]string, 0, len(v.Tabs))
	for _, tab := range v.Tabs {
		label := tab.Name
		if tab.Today {
			label += " " + st.Badge.Render("["+MsgTodayBadge+"]")
		}
		if tab.Active {
			tabs = append(tabs, st.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, st.Tab.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if v.Empty != "" {
		b.WriteString(st.Empty.Render(v.Empty))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range v.Slots {
		marker := "  "
		if s.Live {
			marker = st.Live.Render("● ")
		}
		fmt.Fprintf(&b, "%s%d. %s  %s  %s\n",
			marker,
			s.Position+1,
			st.TimeChip.Render(s.TimeLabel),
			st.Program.Render(s.Program),
			st.Muted.Render(moveHint(s)+" id:"+s.Item.ID),
		)
		if s.Item.Tracks != "" {
			b.WriteString(st.Tracks.Render(s.Item.Tracks))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// moveHint shows which reorder actions are available for a slot
func moveHint(s Slot) string {
	up, down := "▲", "▼"
	if !s.CanMoveUp {
		up = " "
	}
	if !s.CanMoveDown {
		down = " "
	}
	return up + down
}

// WriterRenderer prints every view to an io.Writer
type WriterRenderer struct {
	Out    io.Writer
	Styles Styles
}

// Render implements Renderer
func (r *WriterRenderer) Render(v View) {
	fmt.Fprint(r.Out, RenderText(v, r.Styles))
}
