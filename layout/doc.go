// Package layout provides the size and position cache of a virtualized list.
//
// The cache maps item indices to their offset and size along the scroll
// axis without measuring the whole list. Items are measured on demand, in
// order, through a size getter; everything up to the high-water mark
// (LastMeasuredIndex) is trusted and returned from the cache, everything
// past it is measured lazily on the next query.
//
// # Measurement
//
// Measuring item i costs one size getter call. Slot extents from the
// attached slot.Table (section headers and footers) are injected in front
// of the items they precede, so offsets already include them:
//
//	cache, _ := layout.New(layout.Config{
//	    ItemCount:         3,
//	    ItemSizeGetter:    func(int) float64 { return 10 },
//	    EstimatedItemSize: 10,
//	})
//	cache.Slots().Insert(0, slot.Range(0, 3), slot.Header(5), slot.Footer(7))
//
//	pos, _ := cache.SizeAndPositionForIndex(0) // {Offset: 5, Size: 10}
//	cache.TotalSize()                          // 5 + 30 + 7 = 42
//
// # Total Size
//
// TotalSize is exact once every item is measured. Before that the unmeasured
// tail is estimated with EstimatedItemSize, and pending slot extents are
// added in full, so the estimate converges as measurement progresses.
//
// # Search
//
// FindNearestItem maps an offset to the last item starting at or before it.
// Inside measured territory it binary searches cached offsets. Beyond it, an
// exponential search brackets the target before a binary search, so only
// the items up to the bracket are measured.
//
// # Invalidation
//
// ResetItem lowers the high-water mark; nothing is recomputed until the
// next query. Call it whenever an item's real size differs from the
// measured one, and after UpdateConfig when sizes changed.
package layout
