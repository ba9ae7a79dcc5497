package requests

import (
	"fmt"
	"strings"

	"haloradio-admin/internal/panel"
	"haloradio-admin/pkg/models"

	"github.com/charmbracelet/lipgloss"
)

var statusColors = map[string]lipgloss.Color{
	models.RequestNew:        lipgloss.Color("42"),
	models.RequestInProgress: lipgloss.Color("214"),
	models.RequestDone:       lipgloss.Color("245"),
}

// Render draws the current page with the New counter and the pager
func (b *Board) Render(color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request baru: %d\n", b.newCount)

	items := b.PageItems()
	if len(items) == 0 {
		sb.WriteString(MsgEmpty + "\n")
	} else {
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				it.ID,
				panel.Sanitize(it.Name),
				panel.OrDash(panel.Sanitize(it.Phone)),
				panel.Sanitize(it.Title),
				b.clock.FormatDateTime(it.CreatedAt.Time),
				statusLabel(it.Status, color),
			})
		}
		sb.WriteString(panel.Table(color, []string{"ID", "Nama", "Telepon", "Judul", "Waktu", "Status"}, rows))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Page %d/%d\n", b.page, b.TotalPages())
	return sb.String()
}

func statusLabel(status string, color bool) string {
	if !color {
		return status
	}
	c, ok := statusColors[status]
	if !ok {
		return status
	}
	return lipgloss.NewStyle().Foreground(c).Render(status)
}
