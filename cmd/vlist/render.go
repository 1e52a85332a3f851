package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/section"
	"github.com/wippyai/virtual-list/viewport"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A3FC0"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	altCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	footerStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// span is the part of an entry that falls inside the drawing area, in
// whole cells along the scroll axis.
type span struct {
	entry viewport.Entry
	from  int
	to    int
}

// clip converts entries to cell spans relative to offset. Spans never
// overlap; rounding losses go to the later entry.
func clip(entries []viewport.Entry, offset float64, extent int) []span {
	spans := make([]span, 0, len(entries))
	for _, e := range entries {
		from := max(0, int(math.Floor(e.Offset-offset)))
		to := min(extent, int(math.Ceil(e.End()-offset)))
		if n := len(spans); n > 0 {
			from = max(from, spans[n-1].to)
		}
		if from >= to {
			continue
		}
		spans = append(spans, span{entry: e, from: from, to: to})
	}
	return spans
}

func label(e viewport.Entry) string {
	switch e.Kind {
	case section.KindHeader:
		return fmt.Sprintf("▍ %v", e.Payload)
	case section.KindFooter:
		return fmt.Sprintf("  · end of %v", e.Payload)
	default:
		title := "Item"
		if r, ok := e.Payload.(row); ok {
			title = r.title
		}
		return fmt.Sprintf("  #%-6d %s %d", e.Index, title, e.ItemIndex+1)
	}
}

func styleOf(e viewport.Entry) lipgloss.Style {
	switch e.Kind {
	case section.KindHeader:
		return headerStyle
	case section.KindFooter:
		return footerStyle
	default:
		if e.Index%2 == 1 {
			return altCellStyle
		}
		return cellStyle
	}
}

// fit pads or truncates text to exactly width terminal cells.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}

// paint draws entries into a width x height block of lines.
func paint(entries []viewport.Entry, dir virtuallist.Direction, offset float64, width, height int) []string {
	if dir == virtuallist.Horizontal {
		return paintColumns(clip(entries, offset, width), width, height)
	}
	return paintRows(clip(entries, offset, height), width, height)
}

func paintRows(spans []span, width, height int) []string {
	lines := make([]string, height)
	blank := strings.Repeat(" ", max(0, width))
	for i := range lines {
		lines[i] = blank
	}
	for _, s := range spans {
		style := styleOf(s.entry)
		for r := s.from; r < s.to; r++ {
			text := ""
			if r == s.from {
				text = label(s.entry)
			}
			lines[r] = style.Render(fit(text, width))
		}
	}
	return lines
}

func paintColumns(spans []span, width, height int) []string {
	lines := make([]string, height)
	for l := range lines {
		var b strings.Builder
		cursor := 0
		for _, s := range spans {
			b.WriteString(strings.Repeat(" ", s.from-cursor))
			text := ""
			if l == 0 {
				text = strings.TrimSpace(label(s.entry))
			}
			b.WriteString(styleOf(s.entry).Render(fit(text, s.to-s.from)))
			cursor = s.to
		}
		b.WriteString(strings.Repeat(" ", max(0, width-cursor)))
		lines[l] = b.String()
	}
	return lines
}
