// Package graph models the crate dependency graph declared by a Cargo.lock.
package graph

import "sort"

// Node represents a crate in the dependency graph.
type Node struct {
	ID      string // "name version", unique within a lock file
	Name    string
	Version string
	Source  string // empty for workspace members
}

// IsWorkspace reports whether the crate belongs to the locked workspace itself.
func (n *Node) IsWorkspace() bool {
	return n.Source == ""
}

// Edge represents a dependency relationship between crates.
type Edge struct {
	From string // dependent crate ID
	To   string // dependency crate ID
}

// Graph is a directed graph of crates with edges from dependents to dependencies.
type Graph struct {
	Nodes    map[string]*Node    // crate ID -> node
	Children map[string][]string // crate ID -> dependency IDs (outgoing edges)
	Parents  map[string][]string // crate ID -> dependent IDs (incoming edges)
	edges    map[Edge]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:    make(map[string]*Node),
		Children: make(map[string][]string),
		Parents:  make(map[string][]string),
		edges:    make(map[Edge]bool),
	}
}

// AddNode adds a crate node. If node is nil, a node holding only the ID is created.
func (g *Graph) AddNode(id string, node *Node) {
	if node == nil {
		node = &Node{}
	}
	node.ID = id
	g.Nodes[id] = node
}

// AddEdge adds a dependent -> dependency relationship. Duplicate edges are ignored.
func (g *Graph) AddEdge(parent, child string) {
	e := Edge{From: parent, To: child}
	if g.edges[e] {
		return
	}
	g.edges[e] = true

	g.Children[parent] = append(g.Children[parent], child)
	g.Parents[child] = append(g.Parents[child], parent)
}

// GetChildren returns the direct dependencies of a crate.
func (g *Graph) GetChildren(parent string) []string {
	return g.Children[parent]
}

// GetParents returns the crates that depend directly on child.
func (g *Graph) GetParents(child string) []string {
	return g.Parents[child]
}

// GetNode returns the node for id, or nil if not found.
func (g *Graph) GetNode(id string) *Node {
	return g.Nodes[id]
}

// HasNode returns true if the graph contains id.
func (g *Graph) HasNode(id string) bool {
	_, exists := g.Nodes[id]
	return exists
}

// NodeCount returns the number of crates.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of dependency edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// AllNodes returns every crate ID, sorted.
func (g *Graph) AllNodes() []string {
	nodes := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// AllEdges returns every edge, sorted by From then To.
func (g *Graph) AllEdges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// LeafNodes returns crates without dependencies, sorted.
func (g *Graph) LeafNodes() []string {
	var leaves []string
	for id := range g.Nodes {
		if len(g.Children[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// Roots returns crates nothing depends on, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for id := range g.Nodes {
		if len(g.Parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// InDegree returns the number of dependents of a crate.
func (g *Graph) InDegree(id string) int {
	return len(g.Parents[id])
}

// OutDegree returns the number of dependencies of a crate.
func (g *Graph) OutDegree(id string) int {
	return len(g.Children[id])
}

// Closure returns every crate reachable from start, start included, sorted.
func (g *Graph) Closure(start string) []string {
	if !g.HasNode(start) {
		return nil
	}

	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range g.Children[id] {
			if !seen[child] {
				seen[child] = true
				stack = append(stack, child)
			}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
