package slot

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/errors"
)

// Slot is a header/footer extent pair attached to the item range [Start, End).
type Slot struct {
	Start  int
	End    int
	Header float64
	Footer float64
}

// Size returns the combined header and footer extent.
func (s Slot) Size() float64 {
	return s.Header + s.Footer
}

// Contains reports whether itemIndex falls inside the slot range.
func (s Slot) Contains(itemIndex int) bool {
	return itemIndex >= s.Start && itemIndex < s.End
}

// Field updates one part of a slot during Insert.
type Field func(*Slot)

// Range sets the item range of a slot.
func Range(start, end int) Field {
	return func(s *Slot) {
		s.Start = start
		s.End = end
	}
}

// Header sets the header extent of a slot.
func Header(size float64) Field {
	return func(s *Slot) { s.Header = size }
}

// Footer sets the footer extent of a slot.
func Footer(size float64) Field {
	return func(s *Slot) { s.Footer = size }
}

// Table is an ordered list of slots keyed by insertion index.
// It is not safe for concurrent use.
type Table struct {
	slots []Slot
}

// NewTable creates an empty slot table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// At returns the slot at index.
func (t *Table) At(index int) (Slot, bool) {
	if index < 0 || index >= len(t.slots) {
		return Slot{}, false
	}
	return t.slots[index], true
}

// Slots returns a copy of all slots.
func (t *Table) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)
	return out
}

// Reset removes all slots.
func (t *Table) Reset() {
	t.slots = t.slots[:0]
}

// Insert merges fields into the slot at index, creating it when index == Len().
func (t *Table) Insert(index int, fields ...Field) error {
	if index < 0 || index > len(t.slots) {
		return errors.OutOfRange(errors.PhaseSlot, index, len(t.slots)+1)
	}
	if index == len(t.slots) {
		t.slots = append(t.slots, Slot{})
	}
	s := &t.slots[index]
	for _, f := range fields {
		f(s)
	}
	return nil
}

// TotalSize returns the header and footer extents of all slots.
func (t *Table) TotalSize() float64 {
	return t.AggregateSizeToIndex(len(t.slots))
}

// AggregateSizeToIndex sums header and footer extents of the first n slots.
func (t *Table) AggregateSizeToIndex(n int) float64 {
	if n < 1 || len(t.slots) == 0 {
		return 0
	}
	n = min(n, len(t.slots))

	var agg float64
	for _, s := range t.slots[:n] {
		agg += s.Size()
	}
	return agg
}

// RestSizeToIndex sums header and footer extents of the slots from slotIndex
// onward, excluding the parts of slot slotIndex that itemIndex has already
// passed: its header once itemIndex >= Start, its footer once itemIndex >= End.
func (t *Table) RestSizeToIndex(slotIndex, itemIndex int) float64 {
	if slotIndex < 0 || slotIndex >= len(t.slots) {
		return 0
	}

	var agg float64
	for _, s := range t.slots[slotIndex:] {
		agg += s.Size()
	}

	s := t.slots[slotIndex]
	if itemIndex >= s.Start {
		agg -= s.Header
	}
	if itemIndex >= s.End {
		agg -= s.Footer
	}
	return agg
}

// FindSlotIndexByItemIndex returns the index of the slot whose range contains
// itemIndex, or -1 when no slot does.
func (t *Table) FindSlotIndexByItemIndex(itemIndex int) int {
	n := len(t.slots)
	if n == 0 || itemIndex < 0 || itemIndex >= t.slots[n-1].End {
		return -1
	}

	// first slot that ends after itemIndex
	i := sort.Search(n, func(i int) bool { return t.slots[i].End > itemIndex })
	if i < n && t.slots[i].Contains(itemIndex) {
		return i
	}
	return -1
}

// PendingSize returns the slot extent that lies after the trailing edge of
// item lastMeasured, i.e. the part not yet folded into measured offsets.
// lastMeasured may be -1 when nothing has been measured.
func (t *Table) PendingSize(lastMeasured int) float64 {
	slotIndex := t.FindSlotIndexByItemIndex(lastMeasured)
	if slotIndex < 0 {
		// between slots or before the first one: every slot starting after
		// lastMeasured is still pending in full
		slotIndex = sort.Search(len(t.slots), func(i int) bool {
			return t.slots[i].Start > lastMeasured
		})
	}
	return t.RestSizeToIndex(slotIndex, lastMeasured)
}

// Validate reports every slot that is malformed or out of order.
func (t *Table) Validate() error {
	var err error
	for i, s := range t.slots {
		if s.Start < 0 || s.End < s.Start {
			err = multierr.Append(err, errors.New(errors.PhaseSlot, errors.KindInvalidInput).
				Path(slotPath(i)).
				Value(s).
				Detail("invalid range [%d, %d)", s.Start, s.End).
				Build())
		}
		if !validExtent(s.Header) || !validExtent(s.Footer) {
			err = multierr.Append(err, errors.New(errors.PhaseSlot, errors.KindInvalidSize).
				Path(slotPath(i)).
				Value(s).
				Detail("header %v and footer %v must be finite and non-negative", s.Header, s.Footer).
				Build())
		}
		if i > 0 && t.slots[i-1].End > s.Start {
			err = multierr.Append(err, errors.Overlap(i-1, i, t.slots[i-1].End, s.Start))
		}
	}
	return err
}

func slotPath(i int) string {
	return fmt.Sprintf("slot[%d]", i)
}

func validExtent(v float64) bool {
	return virtuallist.ValidSize(v)
}
