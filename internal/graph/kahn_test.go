package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCalculateInDegrees(t *testing.T) {
	inDegrees := diamond().CalculateInDegrees()

	expected := map[string]int{"app 1": 0, "a 1": 1, "b 1": 1, "c 1": 2}
	if !reflect.DeepEqual(inDegrees, expected) {
		t.Errorf("CalculateInDegrees = %v, want %v", inDegrees, expected)
	}
}

func TestProcessingQueue(t *testing.T) {
	pq := NewProcessingQueue()
	if !pq.IsEmpty() {
		t.Fatal("new queue should be empty")
	}

	pq.Enqueue("a")
	pq.Enqueue("b")
	if pq.Len() != 2 {
		t.Errorf("expected length 2, got %d", pq.Len())
	}

	if node, ok := pq.Dequeue(); !ok || node != "a" {
		t.Errorf("expected FIFO order, got %q", node)
	}
	pq.Dequeue()
	if _, ok := pq.Dequeue(); ok {
		t.Error("dequeue on empty queue should report false")
	}
}

func TestTopologicalSort_Diamond(t *testing.T) {
	order, err := diamond().TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"app 1", "a 1", "b 1", "c 1"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("TopologicalSort = %v, want %v", order, expected)
	}
}

func TestAnalysisOrder_LeavesFirst(t *testing.T) {
	order, err := diamond().AnalysisOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := make(map[string]int)
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range diamond().AllEdges() {
		if pos[e.To] > pos[e.From] {
			t.Errorf("dependency %s must come before %s in %v", e.To, e.From, order)
		}
	}
	if order[0] != "c 1" || order[len(order)-1] != "app 1" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestTopologicalSort_Deterministic(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"z 1", "m 1", "a 1"} {
		g.AddNode(id, nil)
	}

	for i := 0; i < 10; i++ {
		order, err := g.TopologicalSort()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(order, []string{"a 1", "m 1", "z 1"}) {
			t.Fatalf("run %d: order %v is not sorted", i, order)
		}
	}
}

func TestTopologicalSort_Empty(t *testing.T) {
	order, err := NewGraph().TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func cyclic() *Graph {
	// app -> a -> b -> a, b -> tail
	g := NewGraph()
	for _, id := range []string{"app 1", "a 1", "b 1", "tail 1"} {
		g.AddNode(id, nil)
	}
	g.AddEdge("app 1", "a 1")
	g.AddEdge("a 1", "b 1")
	g.AddEdge("b 1", "a 1")
	g.AddEdge("b 1", "tail 1")
	return g
}

func TestTopologicalSort_Cycle(t *testing.T) {
	_, err := cyclic().TopologicalSort()
	if err == nil {
		t.Fatal("expected cycle error")
	}
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T", err)
	}

	info := cycleErr.Info
	if info.TotalNodes != 4 || info.ProcessedNodes != 1 {
		t.Errorf("unexpected counts: %+v", info)
	}
	if !reflect.DeepEqual(info.UnprocessedNodes, []string{"a 1", "b 1", "tail 1"}) {
		t.Errorf("UnprocessedNodes = %v", info.UnprocessedNodes)
	}
	if !reflect.DeepEqual(info.CycleParticipants, []string{"a 1", "b 1"}) {
		t.Errorf("CycleParticipants = %v", info.CycleParticipants)
	}
	if !reflect.DeepEqual(info.CyclePath, []string{"a 1", "b 1", "a 1"}) {
		t.Errorf("CyclePath = %v", info.CyclePath)
	}
}

func TestCycleError_Message(t *testing.T) {
	err := cyclic().Validate()
	if err == nil {
		t.Fatal("expected cycle error")
	}

	msg := err.Error()
	for _, want := range []string{
		"3 of 4 crates could not be ordered",
		"Cycle path: a 1 -> b 1 -> a 1",
		"Crates in cycle: a 1, b 1",
		"Crates blocked by cycle: tail 1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
}

func TestSelfCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("self 1", nil)
	g.AddEdge("self 1", "self 1")

	if !g.HasCycle() {
		t.Fatal("self edge should be a cycle")
	}
	if got := g.FindCycleParticipants(); !reflect.DeepEqual(got, []string{"self 1"}) {
		t.Errorf("FindCycleParticipants = %v", got)
	}
}

func TestValidate_Acyclic(t *testing.T) {
	if err := diamond().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if diamond().FindCycleParticipants() != nil {
		t.Error("acyclic graph should have no participants")
	}
}
