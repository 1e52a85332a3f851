// Package virtuallist provides a layout engine for virtualized lists.
//
// A virtualized list renders only the window of a very large logical list
// that is visible inside a fixed-size viewport. The engine never
// materializes the full list: item sizes are measured lazily through a
// size getter, positions are cached up to a high-water mark, and offset
// lookups use binary and exponential search over the measured prefix.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	virtuallist/        Root package with shared value types
//	├── slot/           Header/footer slot table bound to index ranges
//	├── layout/         Size and position cache, offset search
//	├── section/        Tagged section tree and index-to-section lookups
//	├── viewport/       Host-side controller producing render plans
//	├── errors/         Structured error types for debugging
//	├── config/         YAML configuration and logger setup for the CLI
//	└── cmd/vlist/      Terminal demo driving the controller
//
// # Quick Start
//
// Measure a list of 10000 rows of varying height:
//
//	cache, err := layout.New(layout.Config{
//	    ItemCount:         10000,
//	    ItemSizeGetter:    func(i int) float64 { return heights[i] },
//	    EstimatedItemSize: 30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := cache.VisibleRange(layout.RangeRequest{
//	    ContainerSize: 600,
//	    Offset:        scrollTop,
//	    OverscanCount: 3,
//	})
//	for i := r.Start; i <= r.Stop; i++ {
//	    pos, _ := cache.SizeAndPositionForIndex(i)
//	    draw(i, pos.Offset, pos.Size)
//	}
//
// Sections with headers and footers are described with the section package
// and driven through viewport.List:
//
//	list, err := viewport.New([]section.Node{
//	    section.NewSection(20,
//	        section.Header(virtuallist.Extent{Height: 24}, "Fruits"),
//	        section.Cell(fruitRow),
//	    ),
//	    section.NewSection(80,
//	        section.Header(virtuallist.Extent{Height: 24}, "Vegetables"),
//	        section.Cell(vegRow),
//	        section.Footer(virtuallist.Extent{Height: 16}, "end"),
//	    ),
//	}, viewport.WithContainer(320, 600))
//
// # Axis
//
// All offsets and sizes refer to a single scroll axis. Direction only
// selects which extent of a header or footer is used; mapping the axis to
// concrete layout properties is the host's job.
//
// # Thread Safety
//
// Nothing in this module is safe for concurrent use. Measuring advances
// internal state, so even read-looking calls mutate. A list must be owned
// by one goroutine, or access must be synchronized by the caller.
//
// # Memory Model
//
// The cache grows with the number of measured items and never shrinks.
// Invalidating an item only lowers the high-water mark; stale entries past
// it stay allocated and are overwritten on re-measurement.
package virtuallist
