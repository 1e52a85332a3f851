package virtuallist

import (
	"fmt"
	"math"
)

// SizeAndPosition is the measured placement of an item along the scroll axis.
type SizeAndPosition struct {
	Offset float64 // leading edge
	Size   float64 // extent along the axis
}

// End returns the trailing edge.
func (sp SizeAndPosition) End() float64 {
	return sp.Offset + sp.Size
}

// SizeGetter returns the extent of the item at index along the scroll axis.
type SizeGetter func(index int) float64

// ValidSize reports whether v can be used as an item extent.
func ValidSize(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Range is a closed range of item indices [Start, Stop].
// A range with Stop < Start is empty.
type Range struct {
	Start int
	Stop  int
}

// EmptyRange is returned when nothing is visible.
var EmptyRange = Range{Start: 0, Stop: -1}

// Empty reports whether the range selects no items.
func (r Range) Empty() bool {
	return r.Stop < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Stop - r.Start + 1
}

// Contains reports whether index is inside the range.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index <= r.Stop
}

func (r Range) String() string {
	if r.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d..%d]", r.Start, r.Stop)
}

// Alignment controls where a scrolled-to item ends up in the viewport.
type Alignment string

const (
	AlignAuto   Alignment = "auto"   // minimal scroll that makes the item visible
	AlignStart  Alignment = "start"  // item leading edge at viewport leading edge
	AlignCenter Alignment = "center" // item centered
	AlignEnd    Alignment = "end"    // item trailing edge at viewport trailing edge
)

// ParseAlignment converts a string into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch a := Alignment(s); a {
	case AlignAuto, AlignStart, AlignCenter, AlignEnd:
		return a, nil
	case "":
		return AlignAuto, nil
	default:
		return "", fmt.Errorf("unknown alignment %q", s)
	}
}

// Next cycles through alignments in declaration order.
func (a Alignment) Next() Alignment {
	switch a {
	case AlignAuto:
		return AlignStart
	case AlignStart:
		return AlignCenter
	case AlignCenter:
		return AlignEnd
	default:
		return AlignAuto
	}
}

// Direction is the scroll axis.
type Direction string

const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
)

// ParseDirection converts a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Vertical, Horizontal:
		return d, nil
	case "":
		return Vertical, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// Extent is a two-dimensional size of a header or footer.
type Extent struct {
	Width  float64
	Height float64
}

// Along returns the component of the extent on the scroll axis.
func (e Extent) Along(d Direction) float64 {
	if d == Horizontal {
		return e.Width
	}
	return e.Height
}
