package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/config"
	"github.com/wippyai/virtual-list/section"
	"github.com/wippyai/virtual-list/viewport"
)

func testConfig(sections ...config.SectionConfig) *config.Config {
	return &config.Config{
		Version: 1,
		List: config.ListConfig{
			Direction:         virtuallist.Vertical,
			InitialRows:       5,
			EstimatedItemSize: 1,
			UpperThreshold:    3,
			LowerThreshold:    3,
			Alignment:         virtuallist.AlignStart,
		},
		Data: config.DataConfig{
			ItemCount:   500,
			MinItemSize: 1,
			MaxItemSize: 1,
			Seed:        1,
			Sections:    sections,
		},
	}
}

func TestDataset(t *testing.T) {
	cfg := testConfig(
		config.SectionConfig{Title: "A", Items: 30, Header: 1, Footer: 1},
		config.SectionConfig{Title: "B", Items: 70, Header: 2},
	)
	cfg.Data.MaxItemSize = 3

	d := newDataset(&cfg.Data)
	if len(d.sizes) != 100 {
		t.Fatalf("sizes = %d, want 100", len(d.sizes))
	}
	for i, s := range d.sizes {
		if s < 1 || s > 3 || s != float64(int(s)) {
			t.Fatalf("size(%d) = %v, want a whole number in [1, 3]", i, s)
		}
	}

	again := newDataset(&cfg.Data)
	for i := range d.sizes {
		if d.sizes[i] != again.sizes[i] {
			t.Fatalf("size(%d) differs between runs with the same seed", i)
		}
	}

	before := append([]float64(nil), d.sizes...)
	d.reshuffle(50)
	for i := 0; i < 50; i++ {
		if d.sizes[i] != before[i] {
			t.Fatalf("reshuffle(50) changed size(%d)", i)
		}
	}

	if got := d.size(100); got == got {
		t.Errorf("size(100) = %v, want NaN", got)
	}

	sections, err := section.Resolve(d.nodes(), cfg.Data.ItemCount)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(sections) != 2 || sections[1].Start != 30 || sections[1].End != 100 {
		t.Fatalf("sections = %+v", sections)
	}
	if sections[0].Footer == nil || sections[1].Footer != nil {
		t.Errorf("footers = %v, %v", sections[0].Footer != nil, sections[1].Footer != nil)
	}
	if got := sections[1].Header.Size(virtuallist.Vertical); got != 2 {
		t.Errorf("header size = %v, want 2", got)
	}
}

func TestDataset_Plain(t *testing.T) {
	cfg := testConfig()
	d := newDataset(&cfg.Data)
	sections, err := section.Resolve(d.nodes(), cfg.Data.ItemCount)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(sections) != 1 || sections[0].ItemCount != 500 {
		t.Errorf("sections = %+v", sections)
	}
}

func TestClip(t *testing.T) {
	entries := []viewport.Entry{
		{Kind: section.KindHeader, Offset: 8, Size: 2},
		{Kind: section.KindCell, Index: 0, Offset: 10, Size: 3},
		{Kind: section.KindCell, Index: 1, Offset: 13, Size: 0},
		{Kind: section.KindCell, Index: 2, Offset: 13, Size: 2.5},
		{Kind: section.KindCell, Index: 3, Offset: 15.5, Size: 4},
		{Kind: section.KindCell, Index: 4, Offset: 19.5, Size: 4},
	}
	got := clip(entries, 9, 10)

	want := []struct {
		index    int
		from, to int
	}{
		{0, 0, 1}, // header, partly scrolled away
		{0, 1, 4},
		{2, 4, 7},
		{3, 7, 10},
	}
	if len(got) != len(want) {
		t.Fatalf("clip() = %d spans, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].entry.Index != w.index || got[i].from != w.from || got[i].to != w.to {
			t.Errorf("span %d = %d [%d, %d), want %d [%d, %d)", i,
				got[i].entry.Index, got[i].from, got[i].to, w.index, w.from, w.to)
		}
	}
}

func TestPaint(t *testing.T) {
	entries := []viewport.Entry{
		{Kind: section.KindHeader, Payload: "Pinned", Offset: 0, Size: 1},
		{Kind: section.KindCell, Payload: row{title: "Pinned"}, Index: 0, Offset: 1, Size: 2},
		{Kind: section.KindFooter, Payload: "Pinned", Offset: 3, Size: 1},
	}

	t.Run("rows", func(t *testing.T) {
		lines := paint(entries, virtuallist.Vertical, 0, 30, 6)
		if len(lines) != 6 {
			t.Fatalf("paint() = %d lines, want 6", len(lines))
		}
		for i, line := range lines {
			if w := lipgloss.Width(line); w != 30 {
				t.Errorf("line %d width = %d, want 30", i, w)
			}
		}
		if !strings.Contains(lines[0], "Pinned") || !strings.Contains(lines[1], "#0") {
			t.Errorf("lines = %q", lines)
		}
		if strings.TrimSpace(lines[2]) != "" {
			t.Errorf("continuation line = %q, want blank", lines[2])
		}
		if !strings.Contains(lines[3], "end of Pinned") {
			t.Errorf("footer line = %q", lines[3])
		}
	})

	t.Run("columns", func(t *testing.T) {
		lines := paint(entries, virtuallist.Horizontal, 0, 12, 3)
		if len(lines) != 3 {
			t.Fatalf("paint() = %d lines, want 3", len(lines))
		}
		for i, line := range lines {
			if w := lipgloss.Width(line); w != 12 {
				t.Errorf("line %d width = %d, want 12", i, w)
			}
		}
	})
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestInteractiveModel(t *testing.T) {
	m, err := newInteractiveModel(testConfig(), zap.NewNop(), 80, 24)
	if err != nil {
		t.Fatalf("newInteractiveModel: %v", err)
	}
	if got := m.list.ContainerSize(); got != 21 {
		t.Fatalf("ContainerSize() = %v, want 21", got)
	}

	m.Update(keyPress("down"))
	if m.list.Offset() != 1 || m.list.Reason() != viewport.ReasonObserved {
		t.Errorf("after down: offset %v, reason %q", m.list.Offset(), m.list.Reason())
	}

	m.Update(keyPress("end"))
	if got := m.list.Offset(); got != 479 {
		t.Errorf("after end: offset %v, want 479", got)
	}
	if !m.scroll.ReachedLower {
		t.Error("after end: lower threshold not reached")
	}

	m.Update(keyPress("home"))
	if m.list.Offset() != 0 || !m.scroll.ReachedUpper {
		t.Errorf("after home: offset %v, upper %v", m.list.Offset(), m.scroll.ReachedUpper)
	}

	m.Update(keyPress("g"))
	if !m.goTo {
		t.Fatal("g did not open the index input")
	}
	for _, r := range "100" {
		m.Update(keyPress(string(r)))
	}
	m.Update(keyPress("enter"))
	if m.goTo {
		t.Error("enter did not close the index input")
	}
	if m.err != nil {
		t.Fatalf("go to: %v", m.err)
	}
	if m.list.Offset() != 100 || m.list.Reason() != viewport.ReasonRequested {
		t.Errorf("after go to: offset %v, reason %q", m.list.Offset(), m.list.Reason())
	}

	m.Update(keyPress("a"))
	if m.align != virtuallist.AlignCenter {
		t.Errorf("align = %q, want center", m.align)
	}

	r, err := m.list.VisibleRange()
	if err != nil {
		t.Fatalf("VisibleRange: %v", err)
	}
	m.Update(keyPress("r"))
	if got := m.list.Cache().LastMeasuredIndex(); got != r.Start-1 {
		t.Errorf("LastMeasuredIndex() after reshuffle = %d, want %d", got, r.Start-1)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 13})
	if got := m.list.ContainerSize(); got != 10 {
		t.Errorf("ContainerSize() after resize = %v, want 10", got)
	}

	view := m.View()
	if !strings.Contains(view, "vlist") || !strings.Contains(view, "#100") {
		t.Errorf("View() = %q", view)
	}

	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Error("q did not quit")
	}
}

func TestInteractiveModel_BadIndex(t *testing.T) {
	m, err := newInteractiveModel(testConfig(), zap.NewNop(), 80, 24)
	if err != nil {
		t.Fatalf("newInteractiveModel: %v", err)
	}
	m.Update(keyPress("g"))
	m.Update(keyPress("x"))
	m.Update(keyPress("enter"))
	if m.err == nil {
		t.Error("non-numeric index accepted")
	}
	if m.list.Offset() != 0 {
		t.Errorf("offset = %v, want 0", m.list.Offset())
	}
}

func TestEstimate(t *testing.T) {
	cfg := testConfig()
	if got := estimate(cfg); got != 1 {
		t.Errorf("estimate() = %v, want configured 1", got)
	}
	cfg.List.EstimatedItemSize = 0
	cfg.Data.MinItemSize, cfg.Data.MaxItemSize = 1, 3.5
	if got := estimate(cfg); got != 2 {
		t.Errorf("estimate() = %v, want 2", got)
	}
}

func TestInteractiveModel_EndWithDefaults(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	m, err := newInteractiveModel(cfg, zap.NewNop(), 80, 24)
	if err != nil {
		t.Fatalf("newInteractiveModel: %v", err)
	}

	m.Update(keyPress("end"))
	if m.err != nil {
		t.Fatalf("end: %v", m.err)
	}

	count := m.list.Cache().TotalItemCount()
	if got := m.list.Cache().LastMeasuredIndex(); got != count-1 {
		t.Fatalf("LastMeasuredIndex() = %d, want %d", got, count-1)
	}
	if want := m.list.TotalSize() - m.list.ContainerSize(); m.list.Offset() != want {
		t.Errorf("offset = %v, want %v", m.list.Offset(), want)
	}
	if !m.scroll.ReachedLower {
		t.Error("lower threshold not reached")
	}

	entries, err := m.list.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	var last bool
	for _, e := range entries {
		if e.Kind == section.KindCell && e.Index == count-1 && e.Visible {
			last = true
		}
	}
	if !last {
		t.Errorf("last item %d not visible after end: %+v", count-1, entries)
	}
}
