package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/config"
	"github.com/wippyai/virtual-list/viewport"
)

const defaultDumpExtent = 20

func runDump(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	width, _, ok := config.TerminalSize(os.Stdout)
	if !ok {
		width = 80
	}
	extent := cmd.Float("height")
	if extent <= 0 {
		extent = defaultDumpExtent
	}

	// the viewport extent along the scroll axis comes from --height, the
	// cross axis from the terminal
	w, h := float64(width), extent
	if env.Cfg.List.Direction == virtuallist.Horizontal {
		w, h = extent, float64(defaultDumpExtent)
	}
	list, _, err := newList(env.Cfg, w, h, env.Log)
	if err != nil {
		return fmt.Errorf("unable to build list: %w", err)
	}

	if index := int(cmd.Int("index")); index >= 0 {
		if _, err := list.ScrollToIndex(index, env.Cfg.List.Alignment); err != nil {
			return fmt.Errorf("unable to scroll to index %d: %w", index, err)
		}
	} else {
		list.ScrollTo(cmd.Float("offset"))
	}

	entries, err := list.Items()
	if err != nil {
		return fmt.Errorf("unable to build render plan: %w", err)
	}

	env.Log.Debug("Render plan built", zap.Int("entries", len(entries)), zap.Float64("offset", list.Offset()))
	return writePlan(os.Stdout, list, entries, width)
}

func writePlan(out io.Writer, list *viewport.List, entries []viewport.Entry, width int) error {
	r, err := list.VisibleRange()
	if err != nil {
		return err
	}
	stats := list.Cache().Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "offset %.0f of %.0f, viewport %.0f, range %s, measured %d/%d\n\n",
		list.Offset(), list.TotalSize(), list.ContainerSize(), r, stats.Measured, stats.ItemCount)
	fmt.Fprintf(&b, "%-7s %7s %7s %6s %9s %6s %-7s %s\n", "KIND", "SECTION", "INDEX", "ITEM", "OFFSET", "SIZE", "VISIBLE", "LABEL")
	for _, e := range entries {
		line := fmt.Sprintf("%-7s %7d %7d %6d %9.0f %6.0f %-7t %s",
			e.Kind, e.Section, e.Index, e.ItemIndex, e.Offset, e.Size, e.Visible, strings.TrimSpace(label(e)))
		b.WriteString(runewidth.Truncate(line, width, "…"))
		b.WriteString("\n")
	}

	if list.Direction() == virtuallist.Vertical {
		b.WriteString("\n")
		for _, line := range paint(entries, list.Direction(), list.Offset(), width, int(list.ContainerSize())) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	_, err = io.WriteString(out, b.String())
	return err
}
