package viewport

import (
	"math"

	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
)

const (
	DefaultItemSize    = 50
	DefaultInitialRows = 5
	DefaultThreshold   = 50
)

// ItemSize describes how item extents are obtained. The zero value is a
// fixed DefaultItemSize.
type ItemSize struct {
	fn    func(int) float64
	sizes []float64
	fixed float64
}

// Fixed gives every item the same extent.
func Fixed(size float64) ItemSize {
	return ItemSize{fixed: size}
}

// Sizes reads extents from a slice indexed by virtual index.
// Indices past the end of the slice have no valid size.
func Sizes(sizes []float64) ItemSize {
	return ItemSize{sizes: sizes}
}

// Func computes extents on demand.
func Func(fn func(index int) float64) ItemSize {
	return ItemSize{fn: fn}
}

func (s ItemSize) getter() virtuallist.SizeGetter {
	switch {
	case s.fn != nil:
		return s.fn
	case s.sizes != nil:
		sizes := s.sizes
		return func(index int) float64 {
			if index < 0 || index >= len(sizes) {
				return math.NaN()
			}
			return sizes[index]
		}
	default:
		size := s.fixed
		if size == 0 {
			size = DefaultItemSize
		}
		return func(int) float64 { return size }
	}
}

// estimate picks the explicit estimate, then a positive fixed size, then
// the default.
func (s ItemSize) estimate(explicit float64) float64 {
	if explicit > 0 {
		return explicit
	}
	if s.fn == nil && s.sizes == nil && s.fixed > 0 {
		return s.fixed
	}
	return DefaultItemSize
}

type options struct {
	logger        *zap.Logger
	scrollOffset  *float64
	itemSize      ItemSize
	direction     virtuallist.Direction
	container     virtuallist.Extent
	estimated     float64
	upper         float64
	lower         float64
	itemCount     int
	overscan      int
	initialRows   int
	initialScroll int
}

func defaultOptions() options {
	return options{
		direction:   virtuallist.Vertical,
		initialRows: DefaultInitialRows,
		upper:       DefaultThreshold,
		lower:       DefaultThreshold,
	}
}

// Option configures a List.
type Option func(*options)

// WithDirection sets the scroll axis. Vertical is the default.
func WithDirection(d virtuallist.Direction) Option {
	return func(o *options) { o.direction = d }
}

// WithContainer sets the viewport extent.
func WithContainer(width, height float64) Option {
	return func(o *options) { o.container = virtuallist.Extent{Width: width, Height: height} }
}

// WithItemCount sets the item count of implicit sections.
func WithItemCount(n int) Option {
	return func(o *options) { o.itemCount = n }
}

// WithItemSize sets how item extents are obtained.
func WithItemSize(s ItemSize) Option {
	return func(o *options) { o.itemSize = s }
}

// WithEstimatedItemSize sets the extent assumed for unmeasured items.
func WithEstimatedItemSize(size float64) Option {
	return func(o *options) { o.estimated = size }
}

// WithOverscan sets how many items are rendered beyond each edge of the
// viewport. Zero falls back to the initial rows.
func WithOverscan(n int) Option {
	return func(o *options) { o.overscan = n }
}

// WithInitialRows sets the overscan used when none is configured.
func WithInitialRows(n int) Option {
	return func(o *options) { o.initialRows = n }
}

// WithThresholds sets the distances from either end that count as
// reaching it.
func WithThresholds(upper, lower float64) Option {
	return func(o *options) {
		o.upper = upper
		o.lower = lower
	}
}

// WithInitialScrollIndex scrolls to index on creation.
func WithInitialScrollIndex(index int) Option {
	return func(o *options) { o.initialScroll = index }
}

// WithScrollOffset starts at a fixed offset. It takes precedence over
// WithInitialScrollIndex.
func WithScrollOffset(offset float64) Option {
	return func(o *options) { o.scrollOffset = &offset }
}

// WithLogger sets the list logger instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}
