package section

import (
	virtuallist "github.com/wippyai/virtual-list"
)

// Kind identifies the role of a node.
type Kind string

const (
	KindHeader  Kind = "header"
	KindFooter  Kind = "footer"
	KindCell    Kind = "cell"
	KindSection Kind = "section"
)

// Node is one element of a section tree. Which fields are meaningful
// depends on Kind: Extent for headers and footers, ItemCount and Children
// for sections. Payload is opaque to the engine and handed back in
// render plans.
type Node struct {
	Payload   any
	Kind      Kind
	Children  []Node
	Extent    virtuallist.Extent
	ItemCount int
}

// Header creates a header node of the given extent.
func Header(extent virtuallist.Extent, payload any) Node {
	return Node{Kind: KindHeader, Extent: extent, Payload: payload}
}

// Footer creates a footer node of the given extent.
func Footer(extent virtuallist.Extent, payload any) Node {
	return Node{Kind: KindFooter, Extent: extent, Payload: payload}
}

// Cell creates the node rendered once per item.
func Cell(payload any) Node {
	return Node{Kind: KindCell, Payload: payload}
}

// NewSection creates an explicit section of itemCount items.
func NewSection(itemCount int, children ...Node) Node {
	return Node{Kind: KindSection, ItemCount: itemCount, Children: children}
}

// Size returns the node extent along the scroll axis.
// Only headers and footers have one.
func (n *Node) Size(d virtuallist.Direction) float64 {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindHeader, KindFooter:
		return n.Extent.Along(d)
	default:
		return 0
	}
}
