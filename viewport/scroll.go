package viewport

import (
	"math"

	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/layout"
)

// Reason tells whether an offset came from the host or was requested.
type Reason string

const (
	ReasonObserved  Reason = "observed"
	ReasonRequested Reason = "requested"
)

// Scroll is the outcome of an observed scroll.
type Scroll struct {
	Reason       Reason
	Offset       float64
	Changed      bool
	ReachedUpper bool // within the upper threshold of the start
	ReachedLower bool // within the lower threshold of the end
}

// Observe records an offset reported by the host. Negative, NaN and
// unchanged offsets are ignored and reported with Changed unset.
func (l *List) Observe(offset float64) Scroll {
	if offset < 0 || math.IsNaN(offset) || offset == l.offset {
		return Scroll{Reason: l.reason, Offset: l.offset}
	}

	l.offset = offset
	l.reason = ReasonObserved

	s := Scroll{
		Reason:       ReasonObserved,
		Offset:       offset,
		Changed:      true,
		ReachedUpper: offset <= l.opts.upper,
		ReachedLower: l.TotalSize()-offset-l.ContainerSize() <= l.opts.lower,
	}
	if s.ReachedUpper || s.ReachedLower {
		l.log.Debug("scroll threshold reached",
			zap.Float64("offset", offset),
			zap.Bool("upper", s.ReachedUpper),
			zap.Bool("lower", s.ReachedLower))
	}
	return s
}

// OffsetForIndex computes the offset that shows index with the given
// alignment. The index is clamped to the item range.
func (l *List) OffsetForIndex(index int, align virtuallist.Alignment) (float64, error) {
	count := l.cache.TotalItemCount()
	if count == 0 {
		return 0, nil
	}
	index = max(0, min(index, count-1))

	return l.cache.UpdatedOffsetForIndex(layout.OffsetRequest{
		Align:         align,
		ContainerSize: l.ContainerSize(),
		CurrentOffset: l.offset,
		TargetIndex:   index,
	})
}

// ScrollToIndex moves the list so that index is shown with the given
// alignment and returns the new offset for the host to apply.
func (l *List) ScrollToIndex(index int, align virtuallist.Alignment) (float64, error) {
	offset, err := l.OffsetForIndex(index, align)
	if err != nil {
		return l.offset, err
	}
	l.offset = offset
	l.reason = ReasonRequested
	return offset, nil
}

// ScrollTo moves the list to an explicit offset, clamped at 0.
func (l *List) ScrollTo(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	l.offset = max(0, offset)
	l.reason = ReasonRequested
}

// VisibleRange returns the indices rendered at the current offset,
// overscan included.
func (l *List) VisibleRange() (virtuallist.Range, error) {
	return l.cache.VisibleRange(layout.RangeRequest{
		ContainerSize: l.ContainerSize(),
		Offset:        l.offset,
		OverscanCount: l.Overscan(),
	})
}
