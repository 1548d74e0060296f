package graph

import (
	"reflect"
	"testing"
)

func TestNewGraph(t *testing.T) {
	g := NewGraph()

	if g == nil {
		t.Fatal("NewGraph() returned nil")
	}
	if g.Nodes == nil || g.Children == nil || g.Parents == nil {
		t.Error("graph maps must be initialized")
	}
	if g.NodeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestAddNode_NilCreatesDefault(t *testing.T) {
	g := NewGraph()
	g.AddNode("serde 1.0.0", nil)

	node := g.GetNode("serde 1.0.0")
	if node == nil {
		t.Fatal("expected node to be added")
	}
	if node.ID != "serde 1.0.0" {
		t.Errorf("expected ID 'serde 1.0.0', got %q", node.ID)
	}
	if !node.IsWorkspace() {
		t.Error("node without source should be a workspace crate")
	}
}

func TestAddEdge_MaintainsBothDirections(t *testing.T) {
	g := NewGraph()
	g.AddNode("app 0.1.0", nil)
	g.AddNode("libc 0.2.0", nil)
	g.AddEdge("app 0.1.0", "libc 0.2.0")
	g.AddEdge("app 0.1.0", "libc 0.2.0")

	if got := g.GetChildren("app 0.1.0"); !reflect.DeepEqual(got, []string{"libc 0.2.0"}) {
		t.Errorf("unexpected children %v", got)
	}
	if got := g.GetParents("libc 0.2.0"); !reflect.DeepEqual(got, []string{"app 0.1.0"}) {
		t.Errorf("unexpected parents %v", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("duplicate edge should be ignored, got %d edges", g.EdgeCount())
	}
	if g.InDegree("libc 0.2.0") != 1 || g.OutDegree("app 0.1.0") != 1 {
		t.Error("unexpected degrees")
	}
}

func diamond() *Graph {
	g := NewGraph()
	for _, id := range []string{"app 1", "a 1", "b 1", "c 1"} {
		g.AddNode(id, nil)
	}
	g.AddEdge("app 1", "a 1")
	g.AddEdge("app 1", "b 1")
	g.AddEdge("a 1", "c 1")
	g.AddEdge("b 1", "c 1")
	return g
}

func TestGraph_Queries(t *testing.T) {
	g := diamond()

	if got := g.AllNodes(); !reflect.DeepEqual(got, []string{"a 1", "app 1", "b 1", "c 1"}) {
		t.Errorf("AllNodes = %v", got)
	}
	if got := g.LeafNodes(); !reflect.DeepEqual(got, []string{"c 1"}) {
		t.Errorf("LeafNodes = %v", got)
	}
	if got := g.Roots(); !reflect.DeepEqual(got, []string{"app 1"}) {
		t.Errorf("Roots = %v", got)
	}

	edges := g.AllEdges()
	expected := []Edge{
		{From: "a 1", To: "c 1"},
		{From: "app 1", To: "a 1"},
		{From: "app 1", To: "b 1"},
		{From: "b 1", To: "c 1"},
	}
	if !reflect.DeepEqual(edges, expected) {
		t.Errorf("AllEdges = %v", edges)
	}
}

func TestClosure(t *testing.T) {
	g := diamond()

	if got := g.Closure("a 1"); !reflect.DeepEqual(got, []string{"a 1", "c 1"}) {
		t.Errorf("Closure(a) = %v", got)
	}
	if got := g.Closure("app 1"); len(got) != 4 {
		t.Errorf("Closure(app) should reach every crate, got %v", got)
	}
	if got := g.Closure("missing 1"); got != nil {
		t.Errorf("Closure of unknown crate should be nil, got %v", got)
	}
}

func TestClosure_Cycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("x 1", nil)
	g.AddNode("y 1", nil)
	g.AddEdge("x 1", "y 1")
	g.AddEdge("y 1", "x 1")

	if got := g.Closure("x 1"); !reflect.DeepEqual(got, []string{"x 1", "y 1"}) {
		t.Errorf("Closure over cycle = %v", got)
	}
}
