package section

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/errors"
	"github.com/wippyai/virtual-list/slot"
)

// Section is a resolved contiguous item range [Start, End) with its roles.
// Cell is always set; Header and Footer are optional.
type Section struct {
	Header    *Node
	Cell      *Node
	Footer    *Node
	ItemCount int
	Start     int
	End       int
}

// Contains reports whether the virtual index belongs to the section.
func (s Section) Contains(index int) bool {
	return index >= s.Start && index < s.End
}

// Resolve walks nodes and produces sections with cumulative ranges.
// Section nodes use their own item count. Any other run of nodes must read
// [Header] Cell [Footer] and becomes an implicit section of itemCount items.
// Every problem in the tree is reported, combined into one error.
func Resolve(nodes []Node, itemCount int) ([]Section, error) {
	var (
		sections []Section
		errs     error
		cursor   int
	)

	for i := 0; i < len(nodes); {
		var (
			sec  Section
			step = 1
			err  error
		)
		if nodes[i].Kind == KindSection {
			sec, err = explicit(nodes[i], nodePath(i))
		} else {
			sec, step, err = implicit(nodes[i:], i, itemCount)
		}
		i += step

		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sec.Start = cursor
		sec.End = cursor + sec.ItemCount
		cursor = sec.End
		sections = append(sections, sec)
	}

	if errs != nil {
		return nil, errs
	}

	Logger().Debug("sections resolved",
		zap.Int("nodes", len(nodes)),
		zap.Int("sections", len(sections)),
		zap.Int("items", cursor))
	return sections, nil
}

func explicit(n Node, path string) (Section, error) {
	var errs error
	sec := Section{ItemCount: n.ItemCount}

	if n.ItemCount < 0 {
		errs = multierr.Append(errs, errors.InvalidSection([]string{path},
			fmt.Sprintf("negative item count %d", n.ItemCount)))
	}

	for j, child := range n.Children {
		childPath := []string{path, fmt.Sprintf("children[%d]", j)}
		switch child.Kind {
		case KindHeader:
			errs = multierr.Append(errs, assign(&sec.Header, child, childPath))
		case KindFooter:
			errs = multierr.Append(errs, assign(&sec.Footer, child, childPath))
		case KindCell:
			errs = multierr.Append(errs, assign(&sec.Cell, child, childPath))
		case KindSection:
			errs = multierr.Append(errs, errors.InvalidSection(childPath, "sections cannot be nested"))
		default:
			errs = multierr.Append(errs, unknownKind(child, childPath))
		}
	}

	if sec.Cell == nil {
		errs = multierr.Append(errs, errors.InvalidSection([]string{path}, "section has no cell"))
	}
	return sec, errs
}

// implicit consumes one [Header] Cell [Footer] group from the head of nodes
// and reports how many nodes it used.
func implicit(nodes []Node, base, itemCount int) (Section, int, error) {
	sec := Section{ItemCount: itemCount}

	k := 0
	if nodes[0].Kind == KindHeader {
		if err := assign(&sec.Header, nodes[0], []string{nodePath(base)}); err != nil {
			return sec, 1, err
		}
		k = 1
	}

	if k >= len(nodes) || nodes[k].Kind != KindCell {
		path := []string{nodePath(base)}
		switch nodes[0].Kind {
		case KindHeader:
			return sec, 1, errors.InvalidSection(path, "header is not followed by a cell")
		case KindFooter:
			return sec, 1, errors.InvalidSection(path, "footer has no preceding cell")
		default:
			return sec, 1, unknownKind(nodes[0], path)
		}
	}
	cell := nodes[k]
	sec.Cell = &cell
	k++

	var errs error
	if k < len(nodes) && nodes[k].Kind == KindFooter {
		errs = multierr.Append(errs, assign(&sec.Footer, nodes[k], []string{nodePath(base + k)}))
		k++
	}
	if itemCount < 0 {
		errs = multierr.Append(errs, errors.InvalidSection([]string{nodePath(base)},
			fmt.Sprintf("negative item count %d", itemCount)))
	}
	return sec, k, errs
}

// assign stores n into an empty role, rejecting duplicates and bad extents.
func assign(role **Node, n Node, path []string) error {
	if *role != nil {
		return errors.InvalidSection(path, fmt.Sprintf("duplicate %s", n.Kind))
	}
	if n.Kind != KindCell && (!virtuallist.ValidSize(n.Extent.Width) || !virtuallist.ValidSize(n.Extent.Height)) {
		return errors.New(errors.PhaseResolve, errors.KindInvalidSize).
			Path(path...).
			Value(n.Extent).
			Detail("%s extent must be finite and non-negative", n.Kind).
			Build()
	}
	*role = &n
	return nil
}

func unknownKind(n Node, path []string) error {
	return errors.InvalidSection(path, fmt.Sprintf("unexpected node kind %q", n.Kind))
}

func nodePath(i int) string {
	return fmt.Sprintf("nodes[%d]", i)
}

// FindSectionByRangeIndex returns the section containing the virtual index
// and its position, or -1 when none does.
func FindSectionByRangeIndex(sections []Section, index int) (Section, int) {
	for i, sec := range sections {
		if sec.Contains(index) {
			return sec, i
		}
	}
	return Section{}, -1
}

// SectionItemIndex converts a virtual index into an index local to the
// section at sectionIndex.
func SectionItemIndex(sections []Section, sectionIndex, index int) int {
	if sectionIndex <= 0 {
		return index
	}
	return index - TotalSectionItemCount(sections[:min(sectionIndex, len(sections))])
}

// TotalSectionItemCount sums the item counts of all sections.
func TotalSectionItemCount(sections []Section) int {
	var total int
	for _, sec := range sections {
		total += sec.ItemCount
	}
	return total
}

// ApplySlots rebuilds table with one slot per section, using header and
// footer extents along direction d.
func ApplySlots(sections []Section, table *slot.Table, d virtuallist.Direction) error {
	table.Reset()

	var errs error
	for i, sec := range sections {
		errs = multierr.Append(errs, table.Insert(i,
			slot.Range(sec.Start, sec.End),
			slot.Header(sec.Header.Size(d)),
			slot.Footer(sec.Footer.Size(d)),
		))
	}
	return multierr.Append(errs, table.Validate())
}
