package main

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/config"
	"github.com/wippyai/virtual-list/section"
	"github.com/wippyai/virtual-list/viewport"
)

// row is the cell payload: the title of the section the row belongs to.
type row struct {
	title string
}

// dataset holds generated row sizes in cells along the scroll axis.
type dataset struct {
	cfg   *config.DataConfig
	rng   *rand.Rand
	sizes []float64
}

func newDataset(cfg *config.DataConfig) *dataset {
	d := &dataset{
		cfg:   cfg,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		sizes: make([]float64, cfg.TotalItems()),
	}
	d.reshuffle(0)
	return d
}

func (d *dataset) draw() float64 {
	lo, hi := math.Floor(d.cfg.MinItemSize), math.Floor(d.cfg.MaxItemSize)
	return lo + float64(d.rng.IntN(int(hi-lo)+1))
}

// reshuffle draws new sizes for every row from index on.
func (d *dataset) reshuffle(from int) {
	for i := max(0, from); i < len(d.sizes); i++ {
		d.sizes[i] = d.draw()
	}
}

func (d *dataset) size(index int) float64 {
	if index < 0 || index >= len(d.sizes) {
		return math.NaN()
	}
	return d.sizes[index]
}

// nodes builds the section tree. Without configured sections the list is a
// single implicit section of item_count rows.
func (d *dataset) nodes() []section.Node {
	if len(d.cfg.Sections) == 0 {
		return []section.Node{section.Cell(row{title: "Item"})}
	}

	nodes := make([]section.Node, 0, len(d.cfg.Sections))
	for _, s := range d.cfg.Sections {
		children := make([]section.Node, 0, 3)
		if s.Header > 0 {
			children = append(children, section.Header(square(s.Header), s.Title))
		}
		children = append(children, section.Cell(row{title: s.Title}))
		if s.Footer > 0 {
			children = append(children, section.Footer(square(s.Footer), s.Title))
		}
		nodes = append(nodes, section.NewSection(s.Items, children...))
	}
	return nodes
}

func square(v float64) virtuallist.Extent {
	return virtuallist.Extent{Width: v, Height: v}
}

// estimate returns the configured estimated row size or, when it is zero,
// the mean of the sizes draw produces.
func estimate(cfg *config.Config) float64 {
	if cfg.List.EstimatedItemSize > 0 {
		return cfg.List.EstimatedItemSize
	}
	return (math.Floor(cfg.Data.MinItemSize) + math.Floor(cfg.Data.MaxItemSize)) / 2
}

// newList creates the controller for cfg. Configured viewport extents take
// precedence over width and height.
func newList(cfg *config.Config, width, height float64, log *zap.Logger) (*viewport.List, *dataset, error) {
	d := newDataset(&cfg.Data)

	lc := cfg.List
	if lc.Width > 0 {
		width = lc.Width
	}
	if lc.Height > 0 {
		height = lc.Height
	}

	list, err := viewport.New(d.nodes(),
		viewport.WithDirection(lc.Direction),
		viewport.WithContainer(width, height),
		viewport.WithItemCount(cfg.Data.ItemCount),
		viewport.WithItemSize(viewport.Func(d.size)),
		viewport.WithEstimatedItemSize(estimate(cfg)),
		viewport.WithOverscan(lc.Overscan),
		viewport.WithInitialRows(lc.InitialRows),
		viewport.WithThresholds(lc.UpperThreshold, lc.LowerThreshold),
		viewport.WithInitialScrollIndex(lc.InitialIndex),
		viewport.WithLogger(log.Named("viewport")),
	)
	if err != nil {
		return nil, nil, err
	}
	return list, d, nil
}
