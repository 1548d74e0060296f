package metrics

import "github.com/dbsmedya/astcollect/internal/syntax"

// FnAvgDepth averages, over all function items, the mean node depth of each function's
// subtree. The function node itself is at depth 1. Files without functions yield 0.
func FnAvgDepth(t *syntax.Tree) float64 {
	total := 0.0
	functions := 0

	syntax.Preorder(t.Root(), func(n syntax.Node) bool {
		if n.Kind() == kindFunctionItem {
			functions++
			total += meanDepth(n)
		}
		return true
	})

	if functions == 0 {
		return 0
	}
	return total / float64(functions)
}

// meanDepth is the depth sum over the subtree divided by its node count.
func meanDepth(root syntax.Node) float64 {
	c := root.Walk()
	defer c.Close()

	depth, depthSum, nodes := 1, 0, 0
	for {
		depthSum += depth
		nodes++

		if c.FirstChild() {
			depth++
			continue
		}

		for !c.NextSibling() {
			if !c.Parent() {
				return float64(depthSum) / float64(nodes)
			}
			depth--
		}
	}
}

// AvgArgs is the mean number of declared parameters per function item, 0 without functions.
func AvgArgs(t *syntax.Tree) float64 {
	params := 0
	functions := 0

	syntax.Preorder(t.Root(), func(n syntax.Node) bool {
		if n.Kind() == kindFunctionItem {
			functions++
			params += parameterCount(n)
		}
		return true
	})

	if functions == 0 {
		return 0
	}
	return float64(params) / float64(functions)
}

func parameterCount(fn syntax.Node) int {
	for i := 0; i < fn.ChildCount(); i++ {
		if child := fn.Child(i); child.Kind() == kindParameters {
			return child.NamedChildCount()
		}
	}
	return 0
}
