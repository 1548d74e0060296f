package metrics

import (
	"strings"

	"github.com/dbsmedya/astcollect/internal/syntax"
)

// concurrencyKeywords seeds the keyword pool of every file.
var concurrencyKeywords = []string{"std::thread", "tokio", "rayon", "async", "await"}

// keywordPool holds substrings that mark code as concurrency related.
type keywordPool map[string]struct{}

func newKeywordPool() keywordPool {
	pool := make(keywordPool, len(concurrencyKeywords))
	for _, kw := range concurrencyKeywords {
		pool[kw] = struct{}{}
	}
	return pool
}

func (p keywordPool) add(kw string) {
	if kw != "" {
		p[kw] = struct{}{}
	}
}

// matches reports whether code contains any pool keyword.
func (p keywordPool) matches(code string) bool {
	for kw := range p {
		if strings.Contains(code, kw) {
			return true
		}
	}
	return false
}

// ParallelCalls counts concurrency constructs in a file.
//
// Imports whose scoped path mentions a pool keyword add their final segment to the pool,
// so `use std::thread;` makes a later `thread::spawn` count. Aliased (`as`) and grouped
// (`{...}`) imports are not followed. Each async block counts once.
// Each call or macro invocation whose text mentions a keyword contributes the number of
// matching identifier references found inside it (see poolReferences).
func ParallelCalls(t *syntax.Tree) float64 {
	pool := newKeywordPool()
	calls := 0

	syntax.Preorder(t.Root(), func(n syntax.Node) bool {
		switch n.Kind() {
		case kindUseDeclaration:
			for i := 0; i < n.ChildCount(); i++ {
				child := n.Child(i)
				if child.Kind() != kindScopedIdentifier || !pool.matches(child.Text()) {
					continue
				}
				if last := child.LastChild(); !last.IsZero() {
					pool.add(last.Text())
				}
			}
		case kindAsyncBlock:
			calls++
		case kindCallExpression, kindMacroInvocation:
			if pool.matches(n.Text()) {
				calls += poolReferences(n, pool)
			}
		}
		return true
	})

	return float64(calls)
}

// poolReferences counts identifier and scoped identifier nodes under call whose text
// matches the pool. After a match the cursor jumps to the following sibling (or the next
// ancestor's sibling) and continues from that node's first child, so the rest of a level
// is not examined once it produced a hit.
func poolReferences(call syntax.Node, pool keywordPool) int {
	c := call.Walk()
	defer c.Close()

	count := 0
	for {
		n := c.Node()
		if k := n.Kind(); (k == kindScopedIdentifier || k == kindIdentifier) && pool.matches(n.Text()) {
			count++
			for !c.NextSibling() {
				if !c.Parent() {
					return count
				}
			}
		}

		if c.FirstChild() {
			continue
		}

		for !c.NextSibling() {
			if !c.Parent() {
				return count
			}
		}
	}
}
