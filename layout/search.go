package layout

import (
	"math"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/errors"
)

// OffsetRequest asks for the scroll offset that brings TargetIndex into view.
// The zero Align behaves as AlignStart.
type OffsetRequest struct {
	Align         virtuallist.Alignment
	ContainerSize float64
	CurrentOffset float64
	TargetIndex   int
}

// RangeRequest describes the viewport whose items should be rendered.
type RangeRequest struct {
	ContainerSize float64
	Offset        float64
	OverscanCount int
}

// UpdatedOffsetForIndex computes the offset that shows req.TargetIndex with
// the requested alignment, clamped to [0, TotalSize()-ContainerSize]. The
// zero Alignment means start and unknown alignments behave as auto.
func (c *Cache) UpdatedOffsetForIndex(req OffsetRequest) (float64, error) {
	if req.ContainerSize <= 0 {
		return 0, nil
	}

	datum, err := c.SizeAndPositionForIndex(req.TargetIndex)
	if err != nil {
		return 0, err
	}

	maxOffset := datum.Offset
	minOffset := maxOffset - req.ContainerSize + datum.Size

	var ideal float64
	switch req.Align {
	case virtuallist.AlignEnd:
		ideal = minOffset
	case virtuallist.AlignCenter:
		ideal = maxOffset - (req.ContainerSize-datum.Size)/2
	case virtuallist.AlignStart, "":
		ideal = maxOffset
	default:
		ideal = max(minOffset, min(maxOffset, req.CurrentOffset))
	}

	return max(0, min(c.TotalSize()-req.ContainerSize, ideal)), nil
}

// VisibleRange returns the closed range of items intersecting
// [Offset, Offset+ContainerSize), widened by OverscanCount on both sides.
func (c *Cache) VisibleRange(req RangeRequest) (virtuallist.Range, error) {
	if c.itemCount == 0 || c.TotalSize() == 0 {
		return virtuallist.EmptyRange, nil
	}

	start, err := c.FindNearestItem(req.Offset)
	if err != nil {
		return virtuallist.EmptyRange, err
	}
	datum, err := c.SizeAndPositionForIndex(start)
	if err != nil {
		return virtuallist.EmptyRange, err
	}

	limit := req.Offset + req.ContainerSize
	end := datum.End()
	stop := start
	for end < limit && stop < c.itemCount-1 {
		stop++
		if datum, err = c.SizeAndPositionForIndex(stop); err != nil {
			return virtuallist.EmptyRange, err
		}
		end = datum.End()
	}

	if req.OverscanCount > 0 {
		start = max(0, start-req.OverscanCount)
		stop = min(c.itemCount-1, stop+req.OverscanCount)
	}
	return virtuallist.Range{Start: start, Stop: stop}, nil
}

// FindNearestItem returns the largest index whose offset is at or before
// offset, or 0 when none is. Negative offsets are treated as 0.
func (c *Cache) FindNearestItem(offset float64) (int, error) {
	if math.IsNaN(offset) {
		return 0, errors.InvalidOffset(offset)
	}
	if c.itemCount == 0 {
		return 0, nil
	}
	offset = max(0, offset)

	lm := c.measuredLimit()
	if lm >= 0 && c.data[lm].Offset > offset {
		return c.binarySearch(0, lm, offset)
	}
	return c.exponentialSearch(max(0, lm), offset)
}

// binarySearch finds the largest index in [low, high] with an offset at or
// before offset, falling back to low.
func (c *Cache) binarySearch(low, high int, offset float64) (int, error) {
	found := low
	for low <= high {
		middle := low + (high-low)/2
		datum, err := c.SizeAndPositionForIndex(middle)
		if err != nil {
			return 0, err
		}
		if datum.Offset <= offset {
			found = middle
			low = middle + 1
		} else {
			high = middle - 1
		}
	}
	return found, nil
}

// exponentialSearch doubles its stride from index until it passes offset,
// then binary searches the last bracket.
func (c *Cache) exponentialSearch(index int, offset float64) (int, error) {
	low := index
	interval := 1
	for index < c.itemCount {
		datum, err := c.SizeAndPositionForIndex(index)
		if err != nil {
			return 0, err
		}
		if datum.Offset > offset {
			break
		}
		low = index
		index += interval
		interval *= 2
	}
	return c.binarySearch(low, min(index, c.itemCount-1), offset)
}
