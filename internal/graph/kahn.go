package graph

import (
	"container/list"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ProcessingQueue wraps a list-based queue for Kahn's algorithm processing.
// It holds nodes that are ready to be processed (have in-degree of 0).
type ProcessingQueue struct {
	queue *list.List
}

// NewProcessingQueue creates a new empty processing queue.
func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{
		queue: list.New(),
	}
}

// InitializeQueue creates a processing queue holding every node with in-degree 0,
// in sorted order so that the resulting order is deterministic.
func (g *Graph) InitializeQueue(inDegree map[string]int) *ProcessingQueue {
	pq := NewProcessingQueue()
	for _, id := range g.GetZeroInDegreeNodes(inDegree) {
		pq.Enqueue(id)
	}
	return pq
}

// Enqueue adds a node to the back of the queue.
func (pq *ProcessingQueue) Enqueue(node string) {
	pq.queue.PushBack(node)
}

// Dequeue removes and returns the node at the front of the queue.
// Returns empty string and false if queue is empty.
func (pq *ProcessingQueue) Dequeue() (string, bool) {
	if pq.queue.Len() == 0 {
		return "", false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(string), true
}

// Len returns the number of nodes in the queue.
func (pq *ProcessingQueue) Len() int {
	return pq.queue.Len()
}

// IsEmpty returns true if the queue has no nodes.
func (pq *ProcessingQueue) IsEmpty() bool {
	return pq.queue.Len() == 0
}

// CalculateInDegrees returns crate ID -> number of dependents.
func (g *Graph) CalculateInDegrees() map[string]int {
	inDegree := make(map[string]int, len(g.Nodes))
	for id := range g.Nodes {
		inDegree[id] = 0
	}
	for _, children := range g.Children {
		for _, child := range children {
			inDegree[child]++
		}
	}
	return inDegree
}

// GetZeroInDegreeNodes returns every node with in-degree 0, sorted.
func (g *Graph) GetZeroInDegreeNodes(inDegree map[string]int) []string {
	var nodes []string
	for id, degree := range inDegree {
		if degree == 0 {
			nodes = append(nodes, id)
		}
	}
	sort.Strings(nodes)
	return nodes
}

// ErrCycleDetected is returned when the dependency graph contains a cycle,
// making topological sorting impossible.
var ErrCycleDetected = errors.New("cycle detected in dependency graph")

// CycleInfo describes crates that could not be ordered.
type CycleInfo struct {
	TotalNodes        int      // Total number of crates in the graph
	ProcessedNodes    int      // Number of crates successfully ordered
	UnprocessedNodes  []string // Crates that could not be ordered (in or behind a cycle)
	CycleParticipants []string // Crates that are part of a cycle (subset of UnprocessedNodes)
	CyclePath         []string // Ordered path showing one cycle (e.g., [A, B, A])
}

// CycleError reports which crates form a cycle and which are blocked by it.
type CycleError struct {
	Info *CycleInfo
}

// Error lists the cycle path, its participants and the crates blocked behind it.
func (e *CycleError) Error() string {
	msg := fmt.Sprintf("cycle detected in dependency graph: %d of %d crates could not be ordered",
		len(e.Info.UnprocessedNodes), e.Info.TotalNodes)

	if len(e.Info.CyclePath) > 0 {
		msg += fmt.Sprintf("\nCycle path: %s", strings.Join(e.Info.CyclePath, " -> "))
	}

	if len(e.Info.CycleParticipants) > 0 {
		msg += fmt.Sprintf("\nCrates in cycle: %s", strings.Join(e.Info.CycleParticipants, ", "))
	}

	if len(e.Info.UnprocessedNodes) > len(e.Info.CycleParticipants) {
		participantSet := make(map[string]bool)
		for _, p := range e.Info.CycleParticipants {
			participantSet[p] = true
		}

		var blocked []string
		for _, u := range e.Info.UnprocessedNodes {
			if !participantSet[u] {
				blocked = append(blocked, u)
			}
		}

		if len(blocked) > 0 {
			msg += fmt.Sprintf("\nCrates blocked by cycle: %s", strings.Join(blocked, ", "))
		}
	}

	return msg
}

// Unwrap lets errors.Is match ErrCycleDetected.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// DetectIncompleteProcessing runs Kahn's algorithm and returns information about
// crates that could not be processed, or nil when the graph is acyclic.
func (g *Graph) DetectIncompleteProcessing() *CycleInfo {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	processed := make(map[string]bool)

	for !queue.IsEmpty() {
		node, _ := queue.Dequeue()
		processed[node] = true

		for _, child := range g.GetChildren(node) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue.Enqueue(child)
			}
		}
	}

	if len(processed) == len(g.Nodes) {
		return nil
	}

	var unprocessed []string
	for id := range g.Nodes {
		if !processed[id] {
			unprocessed = append(unprocessed, id)
		}
	}
	sort.Strings(unprocessed)

	unprocessedSet := make(map[string]bool, len(unprocessed))
	for _, node := range unprocessed {
		unprocessedSet[node] = true
	}

	var cycleParticipants []string
	for _, node := range unprocessed {
		if g.canReachSelf(node, unprocessedSet) {
			cycleParticipants = append(cycleParticipants, node)
		}
	}

	var cyclePath []string
	if len(cycleParticipants) > 0 {
		cyclePath = g.FindCyclePath(cycleParticipants[0], unprocessedSet)
	}

	return &CycleInfo{
		TotalNodes:        len(g.Nodes),
		ProcessedNodes:    len(processed),
		UnprocessedNodes:  unprocessed,
		CycleParticipants: cycleParticipants,
		CyclePath:         cyclePath,
	}
}

// HasCycle returns true if the dependency graph contains a cycle.
func (g *Graph) HasCycle() bool {
	return g.DetectIncompleteProcessing() != nil
}

// FindCycleParticipants returns the crates that are part of a cycle, sorted. Crates
// that are only blocked behind a cycle are not included.
func (g *Graph) FindCycleParticipants() []string {
	info := g.DetectIncompleteProcessing()
	if info == nil {
		return nil
	}
	return info.CycleParticipants
}

// FindCyclePath finds a path that leaves start and returns to it through allowedNodes.
// The start node appears at both ends of the returned path.
func (g *Graph) FindCyclePath(start string, allowedNodes map[string]bool) []string {
	visited := make(map[string]bool)
	path := []string{start}

	if g.dfsFindPath(start, start, visited, allowedNodes, &path) {
		return path
	}

	return nil
}

func (g *Graph) dfsFindPath(current, target string, visited, allowedNodes map[string]bool, path *[]string) bool {
	for _, child := range g.GetChildren(current) {
		if !allowedNodes[child] {
			continue
		}

		if child == target {
			*path = append(*path, target)
			return true
		}

		if visited[child] {
			continue
		}

		visited[child] = true
		*path = append(*path, child)

		if g.dfsFindPath(child, target, visited, allowedNodes, path) {
			return true
		}

		*path = (*path)[:len(*path)-1]
	}

	return false
}

// canReachSelf checks whether start can reach itself inside allowedNodes.
func (g *Graph) canReachSelf(start string, allowedNodes map[string]bool) bool {
	visited := make(map[string]bool)
	return g.dfsCanReach(start, start, visited, allowedNodes, true)
}

// dfsCanReach is true when target is reachable from current. isStart suppresses the
// trivial match on the first call.
func (g *Graph) dfsCanReach(current, target string, visited, allowedNodes map[string]bool, isStart bool) bool {
	if current == target && !isStart {
		return true
	}

	if visited[current] || !allowedNodes[current] {
		return false
	}
	visited[current] = true

	for _, child := range g.GetChildren(current) {
		if g.dfsCanReach(child, target, visited, allowedNodes, false) {
			return true
		}
	}

	return false
}

// TopologicalSort returns crates with every dependent before its dependencies.
// Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	result := make([]string, 0, len(g.Nodes))

	for !queue.IsEmpty() {
		node, _ := queue.Dequeue()
		result = append(result, node)

		for _, child := range g.GetChildren(node) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue.Enqueue(child)
			}
		}
	}

	if len(result) != len(g.Nodes) {
		return nil, &CycleError{Info: g.DetectIncompleteProcessing()}
	}

	return result, nil
}

// AnalysisOrder returns crates leaves first: every dependency comes before the crates
// that depend on it. This is the order in which a cold dependency cache fills.
func (g *Graph) AnalysisOrder() ([]string, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	reversed := make([]string, len(order))
	for i, id := range order {
		reversed[len(order)-1-i] = id
	}
	return reversed, nil
}

// Validate returns a *CycleError if the graph contains cycles.
func (g *Graph) Validate() error {
	if info := g.DetectIncompleteProcessing(); info != nil {
		return &CycleError{Info: info}
	}
	return nil
}
