package metrics

import "github.com/dbsmedya/astcollect/internal/syntax"

// CountNodes returns the number of nodes in the tree, root and anonymous tokens included.
func CountNodes(t *syntax.Tree) float64 {
	count := 0
	syntax.Preorder(t.Root(), func(syntax.Node) bool {
		count++
		return true
	})
	return float64(count)
}

// FileNumber is 1 for every file so that the aggregate counts analyzed files.
func FileNumber(*syntax.Tree) float64 {
	return 1
}
