package panel

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows under headers as a bordered terminal table
func Table(color bool, headers []string, rows [][]string) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell
	if color {
		header = cell.Bold(true).Foreground(lipgloss.Color("212"))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	if color {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240")))
	}
	return t.String()
}

// Sanitize makes user-supplied text safe to print: control characters,
// including terminal escape sequences, become spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// OrDash returns s, or "-" when s is blank
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
