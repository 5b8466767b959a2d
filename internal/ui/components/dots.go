package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jsvoboda/lexidrill/internal/ui/theme"
)

// DotState describes one position in a drill progress row.
type DotState int

const (
	DotPending DotState = iota
	DotRight
	DotWrong
	DotSkipped
)

// DotRow renders a row of colored progress dots, one per drilled word.
// The current position is drawn as a hollow ring. Rows wider than the
// given width wrap onto extra lines.
type DotRow struct {
	States  []DotState
	Current int
	Width   int
}

func (d DotRow) View() string {
	if len(d.States) == 0 {
		return ""
	}

	perLine := d.Width / 2
	if perLine < 1 {
		perLine = len(d.States)
	}

	var lines []string
	var line strings.Builder
	count := 0

	for i, state := range d.States {
		glyph := "●"
		if i == d.Current {
			glyph = "◉"
		}

		var style lipgloss.Style
		switch state {
		case DotRight:
			style = theme.DotCorrect
		case DotWrong:
			style = theme.DotMistake
		case DotSkipped:
			style = theme.DotUnknown
		default:
			style = theme.DotUnseen
		}

		if count > 0 {
			line.WriteString(" ")
		}
		line.WriteString(style.Render(glyph))
		count++

		if count >= perLine {
			lines = append(lines, line.String())
			line.Reset()
			count = 0
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}
