package viewport

import (
	"fmt"

	"github.com/wippyai/virtual-list/errors"
	"github.com/wippyai/virtual-list/section"
)

// Entry is one element of a render plan.
type Entry struct {
	Payload   any
	Kind      section.Kind // KindHeader, KindCell or KindFooter
	Section   int
	Index     int // virtual index the entry is attached to
	ItemIndex int // index within the section, cells only
	Offset    float64
	Size      float64
	Visible   bool // intersects the viewport, overscan excluded
}

// Key identifies the entry across render plans.
func (e Entry) Key() string {
	switch e.Kind {
	case section.KindHeader, section.KindFooter:
		return fmt.Sprintf("%s-%d", e.Kind, e.Section)
	default:
		return fmt.Sprintf("%s-%d", e.Kind, e.Index)
	}
}

// End returns the trailing edge of the entry.
func (e Entry) End() float64 {
	return e.Offset + e.Size
}

// Items builds the render plan for the current offset. Each index in the
// visible range yields its cell, preceded by the section header when it is
// the first item of its section and followed by the section footer when it
// is the last.
func (l *List) Items() ([]Entry, error) {
	r, err := l.VisibleRange()
	if err != nil {
		return nil, err
	}
	if r.Empty() {
		return nil, nil
	}

	dir := l.opts.direction
	viewStart, viewEnd := l.offset, l.offset+l.ContainerSize()
	visible := func(offset, size float64) bool {
		return offset+size > viewStart && offset < viewEnd
	}

	entries := make([]Entry, 0, r.Len()+2)
	for index := r.Start; index <= r.Stop; index++ {
		sec, si := section.FindSectionByRangeIndex(l.sections, index)
		if si < 0 {
			return nil, errors.NotFound(errors.PhaseRender, "section", index)
		}
		pos, err := l.cache.SizeAndPositionForIndex(index)
		if err != nil {
			return nil, err
		}

		if index == sec.Start && sec.Header != nil {
			size := sec.Header.Size(dir)
			offset := pos.Offset - size
			entries = append(entries, Entry{
				Payload: sec.Header.Payload,
				Kind:    section.KindHeader,
				Section: si,
				Index:   index,
				Offset:  offset,
				Size:    size,
				Visible: visible(offset, size),
			})
		}

		entries = append(entries, Entry{
			Payload:   sec.Cell.Payload,
			Kind:      section.KindCell,
			Section:   si,
			Index:     index,
			ItemIndex: section.SectionItemIndex(l.sections, si, index),
			Offset:    pos.Offset,
			Size:      pos.Size,
			Visible:   visible(pos.Offset, pos.Size),
		})

		if index == sec.End-1 && sec.Footer != nil {
			size := sec.Footer.Size(dir)
			offset := pos.End()
			entries = append(entries, Entry{
				Payload: sec.Footer.Payload,
				Kind:    section.KindFooter,
				Section: si,
				Index:   index,
				Offset:  offset,
				Size:    size,
				Visible: visible(offset, size),
			})
		}
	}
	return entries, nil
}
