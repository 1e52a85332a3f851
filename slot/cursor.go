package slot

import "sort"

// Cursor walks a table in increasing item order and reports the slot extent
// placed in front of each item. It must not outlive a mutation of the table.
type Cursor struct {
	slots  []Slot
	header int // next slot whose header is not yet consumed
	footer int // next slot whose footer is not yet consumed
}

// CursorAt positions a cursor so that the first call to Before(from)
// accounts for every slot boundary at from and nothing earlier.
func (t *Table) CursorAt(from int) *Cursor {
	n := len(t.slots)
	return &Cursor{
		slots:  t.slots,
		header: sort.Search(n, func(i int) bool { return t.slots[i].Start >= from }),
		footer: sort.Search(n, func(i int) bool { return t.slots[i].End >= from }),
	}
}

// Before returns the extent injected immediately before itemIndex: footers
// of slots ending at itemIndex followed by headers of slots starting there.
// Calls must use non-decreasing item indices.
func (c *Cursor) Before(itemIndex int) float64 {
	var extent float64
	for c.footer < len(c.slots) && c.slots[c.footer].End <= itemIndex {
		if c.slots[c.footer].End == itemIndex {
			extent += c.slots[c.footer].Footer
		}
		c.footer++
	}
	for c.header < len(c.slots) && c.slots[c.header].Start <= itemIndex {
		if c.slots[c.header].Start == itemIndex {
			extent += c.slots[c.header].Header
		}
		c.header++
	}
	return extent
}
