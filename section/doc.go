// Package section resolves a tree of header, footer, cell and section nodes
// into contiguous item ranges.
//
// A list is described by a flat slice of nodes. Section nodes carry their
// own item count and children; any other run of nodes forms an implicit
// section of the list-level item count:
//
//	nodes := []section.Node{
//	    section.NewSection(20,
//	        section.Header(virtuallist.Extent{Height: 24}, "Fruit"),
//	        section.Cell(fruitRow),
//	    ),
//	    section.NewSection(80,
//	        section.Header(virtuallist.Extent{Height: 24}, "Vegetables"),
//	        section.Cell(vegetableRow),
//	        section.Footer(virtuallist.Extent{Height: 16}, "end"),
//	    ),
//	}
//
//	sections, err := section.Resolve(nodes, 0)
//	// sections[0]: [0, 20)   sections[1]: [20, 100)
//
// Resolved sections register their header and footer extents with a slot
// table through ApplySlots, which is how the layout cache learns about them.
package section
