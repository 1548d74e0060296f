// Package syntax wraps the tree-sitter Rust grammar behind a small read-only tree API.
//
// A Tree is built once from a byte buffer and never mutated. Nodes and cursors are views
// into it and are only valid until the Tree is closed.
package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Tree is a parsed source file together with the bytes it was parsed from.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Root returns the translation-unit node.
func (t *Tree) Root() Node {
	return Node{n: t.tree.RootNode(), src: t.src}
}

// Source returns the bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}

// Walk returns a cursor positioned on the root node. Callers must Close it.
func (t *Tree) Walk() *Cursor {
	return t.Root().Walk()
}

// Close releases the native tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Node is a read-only view of one syntax node.
type Node struct {
	n   *sitter.Node
	src []byte
}

// IsZero reports whether the node is absent.
func (n Node) IsZero() bool {
	return n.n == nil || n.n.IsNull()
}

// Kind returns the grammar node type, e.g. "function_item".
func (n Node) Kind() string {
	return n.n.Type()
}

// StartByte returns the offset of the first byte of the node.
func (n Node) StartByte() int {
	return int(n.n.StartByte())
}

// EndByte returns the offset one past the last byte of the node.
func (n Node) EndByte() int {
	return int(n.n.EndByte())
}

// Text returns the source slice covered by the node.
func (n Node) Text() string {
	start, end := n.StartByte(), n.EndByte()
	if start < 0 || end > len(n.src) || start > end {
		return ""
	}
	return string(n.src[start:end])
}

// ChildCount returns the number of children, named and anonymous.
func (n Node) ChildCount() int {
	return int(n.n.ChildCount())
}

// Child returns the i-th child. The result IsZero when out of range.
func (n Node) Child(i int) Node {
	if i < 0 || i >= n.ChildCount() {
		return Node{src: n.src}
	}
	return Node{n: n.n.Child(i), src: n.src}
}

// LastChild returns the final child, or a zero Node for leaves.
func (n Node) LastChild() Node {
	return n.Child(n.ChildCount() - 1)
}

// NamedChildCount returns the number of named children.
func (n Node) NamedChildCount() int {
	return int(n.n.NamedChildCount())
}

// HasError reports whether the subtree contains syntax errors.
func (n Node) HasError() bool {
	return n.n.HasError()
}

// Walk returns a cursor rooted at n. The cursor never moves above n. Callers must Close it.
func (n Node) Walk() *Cursor {
	return &Cursor{c: sitter.NewTreeCursor(n.n), src: n.src}
}

// Cursor walks a subtree by first-child / next-sibling / parent moves.
type Cursor struct {
	c   *sitter.TreeCursor
	src []byte
}

// Node returns the node under the cursor.
func (c *Cursor) Node() Node {
	return Node{n: c.c.CurrentNode(), src: c.src}
}

// FirstChild moves to the first child and reports whether it moved.
func (c *Cursor) FirstChild() bool {
	return c.c.GoToFirstChild()
}

// NextSibling moves to the next sibling and reports whether it moved.
func (c *Cursor) NextSibling() bool {
	return c.c.GoToNextSibling()
}

// Parent moves to the parent and reports whether it moved.
func (c *Cursor) Parent() bool {
	return c.c.GoToParent()
}

// Close releases the native cursor.
func (c *Cursor) Close() {
	c.c.Close()
}

// Preorder visits every node of the subtree rooted at root in depth-first order.
// Children of a node are skipped when visit returns false for it.
func Preorder(root Node, visit func(n Node) bool) {
	c := root.Walk()
	defer c.Close()

	for {
		if visit(c.Node()) && c.FirstChild() {
			continue
		}
		for !c.NextSibling() {
			if !c.Parent() {
				return
			}
		}
	}
}
