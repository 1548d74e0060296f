package walker

// Visited is the set of dependency paths already accounted for within one benchmark.
// It is owned by a single benchmark walk and is not safe for concurrent use.
type Visited struct {
	paths map[string]struct{}
}

// NewVisited creates an empty set.
func NewVisited() *Visited {
	return &Visited{paths: make(map[string]struct{})}
}

// Contains reports whether path has been visited.
func (v *Visited) Contains(path string) bool {
	_, ok := v.paths[path]
	return ok
}

// Add marks path as visited. It returns false if path was already present.
func (v *Visited) Add(path string) bool {
	if v.Contains(path) {
		return false
	}
	v.paths[path] = struct{}{}
	return true
}

// Len returns the number of visited paths.
func (v *Visited) Len() int {
	return len(v.paths)
}
