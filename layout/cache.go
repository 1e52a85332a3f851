package layout

import (
	"math"
	"slices"

	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/errors"
	"github.com/wippyai/virtual-list/slot"
)

// Config is the construction contract of a Cache.
type Config struct {
	ItemSizeGetter    virtuallist.SizeGetter
	ItemCount         int
	EstimatedItemSize float64
}

// Update carries a partial reconfiguration. Nil fields are left unchanged.
type Update struct {
	ItemCount         *int
	ItemSizeGetter    virtuallist.SizeGetter
	EstimatedItemSize *float64
}

// Option configures a Cache at construction.
type Option func(*Cache)

// WithSlots attaches an existing slot table instead of a fresh one.
func WithSlots(t *slot.Table) Option {
	return func(c *Cache) {
		if t != nil {
			c.slots = t
		}
	}
}

// Stats describes the cache fill level.
type Stats struct {
	ItemCount         int
	LastMeasuredIndex int
	Measured          int // items at or below the high-water mark
	Allocated         int // entries held, including stale ones past the mark
	Slots             int
}

// Cache is the incremental size and position cache of one list.
// It is not safe for concurrent use; queries advance internal state.
type Cache struct {
	getter            virtuallist.SizeGetter
	slots             *slot.Table
	data              []virtuallist.SizeAndPosition
	itemCount         int
	estimatedItemSize float64

	// lastMeasuredIndex is the high-water mark: entries at or below it are
	// trusted. Only measurement and ResetItem move it.
	lastMeasuredIndex int
}

// New creates a cache for cfg.ItemCount items.
func New(cfg Config, opts ...Option) (*Cache, error) {
	if cfg.ItemCount < 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "item count must not be negative")
	}
	if cfg.ItemSizeGetter == nil {
		return nil, errors.InvalidInput(errors.PhaseConfig, "item size getter is required")
	}
	if !validEstimate(cfg.EstimatedItemSize) {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(cfg.EstimatedItemSize).
			Detail("estimated item size must be positive, got %v", cfg.EstimatedItemSize).
			Build()
	}

	c := &Cache{
		getter:            cfg.ItemSizeGetter,
		itemCount:         cfg.ItemCount,
		estimatedItemSize: cfg.EstimatedItemSize,
		lastMeasuredIndex: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.slots == nil {
		c.slots = slot.NewTable()
	}
	return c, nil
}

// Slots returns the slot table consulted during measurement.
func (c *Cache) Slots() *slot.Table {
	return c.slots
}

// TotalItemCount returns the number of items.
func (c *Cache) TotalItemCount() int {
	return c.itemCount
}

// SetTotalItemCount changes the number of items without touching measured entries.
func (c *Cache) SetTotalItemCount(n int) error {
	return c.UpdateConfig(Update{ItemCount: &n})
}

// UpdateConfig applies any subset of the construction fields. Measured
// entries are kept; call ResetItem if sizes actually changed.
func (c *Cache) UpdateConfig(u Update) error {
	if u.ItemCount != nil && *u.ItemCount < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "item count must not be negative")
	}
	if u.EstimatedItemSize != nil && !validEstimate(*u.EstimatedItemSize) {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(*u.EstimatedItemSize).
			Detail("estimated item size must be positive, got %v", *u.EstimatedItemSize).
			Build()
	}

	if u.ItemCount != nil {
		c.itemCount = *u.ItemCount
	}
	if u.ItemSizeGetter != nil {
		c.getter = u.ItemSizeGetter
	}
	if u.EstimatedItemSize != nil {
		c.estimatedItemSize = *u.EstimatedItemSize
	}

	Logger().Debug("cache reconfigured",
		zap.Int("itemCount", c.itemCount),
		zap.Float64("estimatedItemSize", c.estimatedItemSize),
		zap.Int("lastMeasuredIndex", c.lastMeasuredIndex))
	return nil
}

// LastMeasuredIndex returns the highest index whose position is trusted,
// or -1 when nothing is measured. It never exceeds TotalItemCount()-1.
func (c *Cache) LastMeasuredIndex() int {
	return c.measuredLimit()
}

// measuredLimit caps the high-water mark by the current item count, which
// may have shrunk since the entries were measured.
func (c *Cache) measuredLimit() int {
	return min(c.lastMeasuredIndex, c.itemCount-1)
}

// SizeAndPositionForIndex returns the offset and size of the item at index,
// measuring every item between the high-water mark and index first.
func (c *Cache) SizeAndPositionForIndex(index int) (virtuallist.SizeAndPosition, error) {
	if index < 0 || index >= c.itemCount {
		return virtuallist.SizeAndPosition{}, errors.OutOfRange(errors.PhaseMeasure, index, c.itemCount)
	}
	if index <= c.lastMeasuredIndex {
		return c.data[index], nil
	}
	return c.measureTo(index)
}

func (c *Cache) measureTo(index int) (virtuallist.SizeAndPosition, error) {
	from := c.lastMeasuredIndex + 1
	if c.getter == nil {
		return virtuallist.SizeAndPosition{}, errors.MissingSizeGetter(from)
	}
	if n := index + 1; n > len(c.data) {
		c.data = slices.Grow(c.data, n-len(c.data))[:n]
	}

	offset := c.SizeAndPositionOfLastMeasuredItem().End()
	cursor := c.slots.CursorAt(from)

	for i := from; i <= index; i++ {
		size := c.getter(i)
		if !virtuallist.ValidSize(size) {
			// keep what was measured so far; i itself is never cached
			c.lastMeasuredIndex = i - 1
			Logger().Debug("invalid item size", zap.Int("index", i), zap.Float64("size", size))
			return virtuallist.SizeAndPosition{}, errors.InvalidSize(i, size)
		}
		offset += cursor.Before(i)
		c.data[i] = virtuallist.SizeAndPosition{Offset: offset, Size: size}
		offset += size
	}

	c.lastMeasuredIndex = index
	return c.data[index], nil
}

// SizeAndPositionOfLastMeasuredItem returns the entry at the high-water
// mark, or the zero value when nothing is measured.
func (c *Cache) SizeAndPositionOfLastMeasuredItem() virtuallist.SizeAndPosition {
	if lm := c.measuredLimit(); lm >= 0 {
		return c.data[lm]
	}
	return virtuallist.SizeAndPosition{}
}

// TotalSize returns the extent of the whole list: measured items, the
// unmeasured tail at the estimated size, and slot extents not yet passed.
func (c *Cache) TotalSize() float64 {
	lm := c.measuredLimit()
	total := c.SizeAndPositionOfLastMeasuredItem().End() +
		float64(c.itemCount-lm-1)*c.estimatedItemSize

	if c.slots.Len() > 0 {
		total += c.slots.PendingSize(lm)
	}
	return total
}

// ResetItem invalidates index and everything after it. Nothing is
// recomputed until the next position query.
func (c *Cache) ResetItem(index int) {
	c.lastMeasuredIndex = min(c.lastMeasuredIndex, index-1)
	Logger().Debug("cache reset", zap.Int("index", index), zap.Int("lastMeasuredIndex", c.lastMeasuredIndex))
}

// Stats reports the current fill level.
func (c *Cache) Stats() Stats {
	lm := c.measuredLimit()
	return Stats{
		ItemCount:         c.itemCount,
		LastMeasuredIndex: lm,
		Measured:          lm + 1,
		Allocated:         len(c.data),
		Slots:             c.slots.Len(),
	}
}

func validEstimate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
