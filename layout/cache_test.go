package layout

import (
	"errors"
	"math"
	"testing"

	virtuallist "github.com/wippyai/virtual-list"
	vlerrors "github.com/wippyai/virtual-list/errors"
	"github.com/wippyai/virtual-list/slot"
)

func fixed(size float64) virtuallist.SizeGetter {
	return func(int) float64 { return size }
}

func newCache(t *testing.T, count int, getter virtuallist.SizeGetter, opts ...Option) *Cache {
	t.Helper()
	c, err := New(Config{ItemCount: count, ItemSizeGetter: getter, EstimatedItemSize: 10}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative count", Config{ItemCount: -1, ItemSizeGetter: fixed(10), EstimatedItemSize: 10}},
		{"nil getter", Config{ItemCount: 1, EstimatedItemSize: 10}},
		{"zero estimate", Config{ItemCount: 1, ItemSizeGetter: fixed(10)}},
		{"negative estimate", Config{ItemCount: 1, ItemSizeGetter: fixed(10), EstimatedItemSize: -3}},
		{"nan estimate", Config{ItemCount: 1, ItemSizeGetter: fixed(10), EstimatedItemSize: math.NaN()}},
		{"inf estimate", Config{ItemCount: 1, ItemSizeGetter: fixed(10), EstimatedItemSize: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !errors.Is(err, vlerrors.ErrInvalidInput) {
				t.Errorf("New() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCache_SizeAndPositionForIndex(t *testing.T) {
	c := newCache(t, 3, fixed(10))

	want := []virtuallist.SizeAndPosition{
		{Offset: 0, Size: 10},
		{Offset: 10, Size: 10},
		{Offset: 20, Size: 10},
	}
	for i, w := range want {
		got, err := c.SizeAndPositionForIndex(i)
		if err != nil {
			t.Fatalf("SizeAndPositionForIndex(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("SizeAndPositionForIndex(%d) = %+v, want %+v", i, got, w)
		}
	}
	if got := c.TotalSize(); got != 30 {
		t.Errorf("TotalSize() = %v, want 30", got)
	}
}

func TestCache_OutOfRange(t *testing.T) {
	c := newCache(t, 3, fixed(10))
	for _, index := range []int{-1, 3, 100} {
		if _, err := c.SizeAndPositionForIndex(index); !errors.Is(err, vlerrors.ErrOutOfRange) {
			t.Errorf("SizeAndPositionForIndex(%d) error = %v, want ErrOutOfRange", index, err)
		}
	}
	if got := c.LastMeasuredIndex(); got != -1 {
		t.Errorf("LastMeasuredIndex() = %d, want -1", got)
	}
}

func TestCache_Slots(t *testing.T) {
	c := newCache(t, 3, fixed(10))
	if err := c.Slots().Insert(0, slot.Range(0, 3), slot.Header(5), slot.Footer(7)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// nothing measured: estimate plus every pending extent
	if got := c.TotalSize(); got != 42 {
		t.Errorf("TotalSize() before measuring = %v, want 42", got)
	}

	got, err := c.SizeAndPositionForIndex(0)
	if err != nil {
		t.Fatalf("SizeAndPositionForIndex(0): %v", err)
	}
	if got.Offset != 5 {
		t.Errorf("offset(0) = %v, want 5", got.Offset)
	}

	if _, err := c.SizeAndPositionForIndex(2); err != nil {
		t.Fatalf("SizeAndPositionForIndex(2): %v", err)
	}
	if got := c.TotalSize(); got != 42 {
		t.Errorf("TotalSize() = %v, want 42", got)
	}
}

func TestCache_SharedSlotTable(t *testing.T) {
	table := slot.NewTable()
	for i, fields := range [][]slot.Field{
		{slot.Range(0, 2), slot.Header(3), slot.Footer(4)},
		{slot.Range(2, 4), slot.Header(6)},
	} {
		if err := table.Insert(i, fields...); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	c := newCache(t, 4, fixed(10), WithSlots(table))
	if c.Slots() != table {
		t.Fatal("Slots() did not return the shared table")
	}

	// h3 [0] [1] f4 h6 [2] [3]
	want := []float64{3, 13, 33, 43}
	for i, w := range want {
		got, err := c.SizeAndPositionForIndex(i)
		if err != nil {
			t.Fatalf("SizeAndPositionForIndex(%d): %v", i, err)
		}
		if got.Offset != w {
			t.Errorf("offset(%d) = %v, want %v", i, got.Offset, w)
		}
	}
	if got := c.TotalSize(); got != 53 {
		t.Errorf("TotalSize() = %v, want 53", got)
	}
}

func TestCache_MonotonicAndIdempotent(t *testing.T) {
	sizes := func(i int) float64 { return float64(i%7) * 3 }
	table := slot.NewTable()
	for i := 0; i < 5; i++ {
		if err := table.Insert(i, slot.Range(i*20, i*20+20), slot.Header(2), slot.Footer(1)); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	c := newCache(t, 100, sizes, WithSlots(table))

	// measure out of order to exercise partial walks
	for _, index := range []int{50, 10, 99, 0, 73} {
		if _, err := c.SizeAndPositionForIndex(index); err != nil {
			t.Fatalf("SizeAndPositionForIndex(%d): %v", index, err)
		}
	}

	var prev virtuallist.SizeAndPosition
	for i := 0; i < 100; i++ {
		got, err := c.SizeAndPositionForIndex(i)
		if err != nil {
			t.Fatalf("SizeAndPositionForIndex(%d): %v", i, err)
		}
		if i > 0 && prev.End() > got.Offset {
			t.Fatalf("item %d ends at %v after item %d starts at %v", i-1, prev.End(), i, got.Offset)
		}
		again, _ := c.SizeAndPositionForIndex(i)
		if again != got {
			t.Fatalf("SizeAndPositionForIndex(%d) not idempotent: %+v then %+v", i, got, again)
		}
		prev = got
	}

	var items float64
	for i := 0; i < 100; i++ {
		items += sizes(i)
	}
	if got, want := c.TotalSize(), items+5*3; got != want {
		t.Errorf("TotalSize() = %v, want %v", got, want)
	}
}

func TestCache_ResetItem(t *testing.T) {
	sizes := []float64{10, 10, 10}
	c := newCache(t, 3, func(i int) float64 { return sizes[i] })

	if _, err := c.SizeAndPositionForIndex(2); err != nil {
		t.Fatalf("SizeAndPositionForIndex(2): %v", err)
	}

	sizes[1] = 20
	got, _ := c.SizeAndPositionForIndex(2)
	if got.Offset != 20 {
		t.Fatalf("offset(2) before reset = %v, want cached 20", got.Offset)
	}

	c.ResetItem(1)
	if got := c.LastMeasuredIndex(); got != 0 {
		t.Errorf("LastMeasuredIndex() after reset = %d, want 0", got)
	}

	got, err := c.SizeAndPositionForIndex(2)
	if err != nil {
		t.Fatalf("SizeAndPositionForIndex(2): %v", err)
	}
	if got.Offset != 30 {
		t.Errorf("offset(2) after reset = %v, want 30", got.Offset)
	}
	if got := c.TotalSize(); got != 40 {
		t.Errorf("TotalSize() = %v, want 40", got)
	}

	// resetting past the high-water mark is a no-op
	c.ResetItem(10)
	if got := c.LastMeasuredIndex(); got != 2 {
		t.Errorf("LastMeasuredIndex() = %d, want 2", got)
	}
}

func TestCache_InvalidSizeNotCached(t *testing.T) {
	tests := []struct {
		name string
		size float64
	}{
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := tt.size
			c := newCache(t, 5, func(i int) float64 {
				if i == 2 {
					return bad
				}
				return 10
			})

			_, err := c.SizeAndPositionForIndex(3)
			if !errors.Is(err, vlerrors.ErrInvalidSize) {
				t.Fatalf("error = %v, want ErrInvalidSize", err)
			}
			if got := c.LastMeasuredIndex(); got != 1 {
				t.Errorf("LastMeasuredIndex() = %d, want 1", got)
			}

			if err := c.UpdateConfig(Update{ItemSizeGetter: fixed(10)}); err != nil {
				t.Fatalf("UpdateConfig: %v", err)
			}
			got, err := c.SizeAndPositionForIndex(3)
			if err != nil {
				t.Fatalf("SizeAndPositionForIndex(3): %v", err)
			}
			if got.Offset != 30 {
				t.Errorf("offset(3) = %v, want 30", got.Offset)
			}
		})
	}
}

func TestCache_UpdateConfig(t *testing.T) {
	t.Run("grow keeps measured entries", func(t *testing.T) {
		c := newCache(t, 3, fixed(10))
		if _, err := c.SizeAndPositionForIndex(2); err != nil {
			t.Fatalf("SizeAndPositionForIndex(2): %v", err)
		}
		count, estimate := 5, 4.0
		if err := c.UpdateConfig(Update{ItemCount: &count, EstimatedItemSize: &estimate}); err != nil {
			t.Fatalf("UpdateConfig: %v", err)
		}
		if got := c.LastMeasuredIndex(); got != 2 {
			t.Errorf("LastMeasuredIndex() = %d, want 2", got)
		}
		if got := c.TotalSize(); got != 38 {
			t.Errorf("TotalSize() = %v, want 38", got)
		}
	})

	t.Run("shrink caps the high-water mark", func(t *testing.T) {
		c := newCache(t, 5, fixed(10))
		if _, err := c.SizeAndPositionForIndex(4); err != nil {
			t.Fatalf("SizeAndPositionForIndex(4): %v", err)
		}
		if err := c.SetTotalItemCount(3); err != nil {
			t.Fatalf("SetTotalItemCount: %v", err)
		}
		if got := c.LastMeasuredIndex(); got != 2 {
			t.Errorf("LastMeasuredIndex() = %d, want 2", got)
		}
		if got := c.TotalSize(); got != 30 {
			t.Errorf("TotalSize() = %v, want 30", got)
		}
		if _, err := c.SizeAndPositionForIndex(3); !errors.Is(err, vlerrors.ErrOutOfRange) {
			t.Errorf("SizeAndPositionForIndex(3) error = %v, want ErrOutOfRange", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		c := newCache(t, 3, fixed(10))
		negative, zero := -1, 0.0
		if err := c.UpdateConfig(Update{ItemCount: &negative}); !errors.Is(err, vlerrors.ErrInvalidInput) {
			t.Errorf("negative count error = %v, want ErrInvalidInput", err)
		}
		if err := c.UpdateConfig(Update{EstimatedItemSize: &zero}); !errors.Is(err, vlerrors.ErrInvalidInput) {
			t.Errorf("zero estimate error = %v, want ErrInvalidInput", err)
		}
		if got := c.TotalItemCount(); got != 3 {
			t.Errorf("TotalItemCount() = %d, want 3", got)
		}
	})
}

func TestCache_Stats(t *testing.T) {
	c := newCache(t, 10, fixed(10))
	if _, err := c.SizeAndPositionForIndex(4); err != nil {
		t.Fatalf("SizeAndPositionForIndex(4): %v", err)
	}
	c.ResetItem(2)

	got := c.Stats()
	want := Stats{ItemCount: 10, LastMeasuredIndex: 1, Measured: 2, Allocated: 5}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
