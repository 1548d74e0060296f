package metrics

import "github.com/dbsmedya/astcollect/internal/syntax"

// MacroCount is (invocations+1)/(definitions+1). A file with neither yields 0, not 1.
func MacroCount(t *syntax.Tree) float64 {
	invocations := 0
	definitions := 0

	syntax.Preorder(t.Root(), func(n syntax.Node) bool {
		switch n.Kind() {
		case kindMacroInvocation:
			invocations++
		case kindMacroDefinition:
			definitions++
		}
		return true
	})

	if invocations == 0 && definitions == 0 {
		return 0
	}
	return float64(invocations+1) / float64(definitions+1)
}
