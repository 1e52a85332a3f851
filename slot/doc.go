// Package slot tracks header and footer extents bound to item index ranges.
//
// A slot covers the items [Start, End) and injects two extra extents into
// the scroll axis: Header immediately before the item at Start and Footer
// immediately after the item at End-1. Slots are kept in insertion order,
// which for sectioned lists is also item order, and must not overlap.
//
// # Table
//
//	table := slot.NewTable()
//	table.Insert(0, slot.Range(0, 20), slot.Header(24))
//	table.Insert(1, slot.Range(20, 100), slot.Header(24), slot.Footer(16))
//
//	table.FindSlotIndexByItemIndex(42) // 1
//	table.TotalSize()                   // 64
//
// Insert merges into an existing slot, so a slot can be built up in steps:
//
//	table.Insert(0, slot.Range(0, 20))
//	table.Insert(0, slot.Header(24))
//
// # Cursor
//
// The layout cache walks items in increasing order and asks how much slot
// extent sits in front of each one. A Cursor answers that in amortized
// constant time:
//
//	c := table.CursorAt(from)
//	for i := from; i <= to; i++ {
//	    offset += c.Before(i)
//	    ...
//	}
package slot
