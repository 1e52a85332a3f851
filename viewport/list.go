package viewport

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/errors"
	"github.com/wippyai/virtual-list/layout"
	"github.com/wippyai/virtual-list/section"
)

// List is the controller of one virtualized list.
type List struct {
	log      *zap.Logger
	cache    *layout.Cache
	nodes    []section.Node
	sections []section.Section
	opts     options
	offset   float64
	reason   Reason
}

// New resolves nodes into sections and prepares the size cache. A nil node
// list renders a plain list of WithItemCount cells.
func New(nodes []section.Node, opts ...Option) (*List, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []section.Node{section.Cell(nil)}
	}

	log := o.logger
	if log == nil {
		log = Logger()
	}

	sections, err := section.Resolve(nodes, o.itemCount)
	if err != nil {
		return nil, err
	}

	cache, err := layout.New(layout.Config{
		ItemCount:         section.TotalSectionItemCount(sections),
		ItemSizeGetter:    o.itemSize.getter(),
		EstimatedItemSize: o.itemSize.estimate(o.estimated),
	})
	if err != nil {
		return nil, err
	}
	if err := section.ApplySlots(sections, cache.Slots(), o.direction); err != nil {
		return nil, err
	}

	l := &List{
		log:      log,
		cache:    cache,
		nodes:    nodes,
		sections: sections,
		opts:     o,
		reason:   ReasonRequested,
	}

	if o.scrollOffset != nil {
		l.offset = max(0, *o.scrollOffset)
	} else if l.offset, err = l.OffsetForIndex(o.initialScroll, virtuallist.AlignAuto); err != nil {
		return nil, err
	}

	log.Debug("list created",
		zap.String("direction", string(o.direction)),
		zap.Int("sections", len(sections)),
		zap.Int("items", cache.TotalItemCount()),
		zap.Float64("offset", l.offset))
	return l, nil
}

func (o *options) validate() error {
	switch {
	case o.direction != virtuallist.Vertical && o.direction != virtuallist.Horizontal:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown direction %q", o.direction))
	case !validExtent(o.container):
		return errors.InvalidInput(errors.PhaseConfig, "container extent must be finite and non-negative")
	case o.itemCount < 0:
		return errors.InvalidInput(errors.PhaseConfig, "item count must not be negative")
	case o.overscan < 0 || o.initialRows < 0:
		return errors.InvalidInput(errors.PhaseConfig, "overscan must not be negative")
	case o.upper < 0 || o.lower < 0:
		return errors.InvalidInput(errors.PhaseConfig, "thresholds must not be negative")
	case o.estimated < 0 || math.IsNaN(o.estimated) || math.IsInf(o.estimated, 0):
		return errors.InvalidInput(errors.PhaseConfig, "estimated item size must be finite and non-negative")
	}
	return nil
}

func validExtent(e virtuallist.Extent) bool {
	return virtuallist.ValidSize(e.Width) && virtuallist.ValidSize(e.Height)
}

// Cache returns the underlying size cache.
func (l *List) Cache() *layout.Cache { return l.cache }

// Sections returns the resolved sections.
func (l *List) Sections() []section.Section {
	out := make([]section.Section, len(l.sections))
	copy(out, l.sections)
	return out
}

// Direction returns the scroll axis.
func (l *List) Direction() virtuallist.Direction { return l.opts.direction }

// ContainerSize returns the viewport extent along the scroll axis.
func (l *List) ContainerSize() float64 {
	return l.opts.container.Along(l.opts.direction)
}

// Offset returns the current scroll offset.
func (l *List) Offset() float64 { return l.offset }

// Reason returns what caused the last offset change.
func (l *List) Reason() Reason { return l.reason }

// TotalSize returns the scrollable extent of the list.
func (l *List) TotalSize() float64 { return l.cache.TotalSize() }

// Overscan returns the number of extra items rendered on each side.
func (l *List) Overscan() int {
	if l.opts.overscan > 0 {
		return l.opts.overscan
	}
	return l.opts.initialRows
}

// Resize changes the viewport extent.
func (l *List) Resize(width, height float64) error {
	e := virtuallist.Extent{Width: width, Height: height}
	if !validExtent(e) {
		return errors.InvalidInput(errors.PhaseConfig, "container extent must be finite and non-negative")
	}
	l.opts.container = e
	return nil
}

// SetSections replaces the section tree. On error the list is unchanged.
func (l *List) SetSections(nodes []section.Node) error {
	if nodes == nil {
		nodes = []section.Node{section.Cell(nil)}
	}
	sections, err := section.Resolve(nodes, l.opts.itemCount)
	if err != nil {
		return err
	}
	if err := l.cache.SetTotalItemCount(section.TotalSectionItemCount(sections)); err != nil {
		return err
	}
	if err := section.ApplySlots(sections, l.cache.Slots(), l.opts.direction); err != nil {
		return err
	}

	l.nodes = nodes
	l.sections = sections
	l.RecomputeSizes(0)

	l.log.Debug("sections replaced",
		zap.Int("sections", len(sections)),
		zap.Int("items", l.cache.TotalItemCount()))
	return nil
}

// SetItemCount changes the item count of implicit sections.
func (l *List) SetItemCount(n int) error {
	if n < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "item count must not be negative")
	}
	prev := l.opts.itemCount
	l.opts.itemCount = n
	if err := l.SetSections(l.nodes); err != nil {
		l.opts.itemCount = prev
		return err
	}
	return nil
}

// SetItemSize changes how item extents are obtained and drops every
// measurement.
func (l *List) SetItemSize(s ItemSize) error {
	estimate := s.estimate(l.opts.estimated)
	if err := l.cache.UpdateConfig(layout.Update{
		ItemSizeGetter:    s.getter(),
		EstimatedItemSize: &estimate,
	}); err != nil {
		return err
	}
	l.opts.itemSize = s
	l.RecomputeSizes(0)
	return nil
}

// SetEstimatedItemSize changes the extent assumed for unmeasured items.
// Zero restores the derived default.
func (l *List) SetEstimatedItemSize(size float64) error {
	if size < 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return errors.InvalidInput(errors.PhaseConfig, "estimated item size must be finite and non-negative")
	}
	estimate := l.opts.itemSize.estimate(size)
	if err := l.cache.UpdateConfig(layout.Update{EstimatedItemSize: &estimate}); err != nil {
		return err
	}
	l.opts.estimated = size
	l.RecomputeSizes(0)
	return nil
}

// RecomputeSizes invalidates measurements from start onward.
func (l *List) RecomputeSizes(start int) {
	l.cache.ResetItem(start)
}
