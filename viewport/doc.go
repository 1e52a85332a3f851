// Package viewport drives the layout engine for one scrollable list.
//
// A List owns the resolved sections, the slot table and the size cache,
// and turns the current scroll offset into a render plan: an ordered slice
// of header, cell and footer entries with their positions. It draws
// nothing and receives no events by itself; the host reports scroll
// offsets through Observe and requests scrolling through ScrollToIndex.
//
//	list, err := viewport.New(nodes,
//	    viewport.WithContainer(320, 480),
//	    viewport.WithItemSize(viewport.Func(rowHeight)),
//	    viewport.WithEstimatedItemSize(40),
//	)
//
//	entries, err := list.Items()
//	for _, e := range entries {
//	    draw(e.Kind, e.Payload, e.Offset, e.Size)
//	}
//
//	s := list.Observe(scrollTop)
//	if s.ReachedLower {
//	    loadMore()
//	}
//
// A List is not safe for concurrent use. Hosts drive it from a single
// event loop.
package viewport
