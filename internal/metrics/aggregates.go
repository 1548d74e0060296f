package metrics

import "github.com/dbsmedya/astcollect/internal/syntax"

// FieldCount is the mean number of members (struct fields and enum variants) per struct
// or enum declaration. Members are counted anywhere in the declaration's subtree.
func FieldCount(t *syntax.Tree) float64 {
	members := 0
	types := 0

	syntax.Preorder(t.Root(), func(n syntax.Node) bool {
		if k := n.Kind(); k == kindStructItem || k == kindEnumItem {
			types++
			members += memberCount(n)
		}
		return true
	})

	if types == 0 {
		return 0
	}
	return float64(members) / float64(types)
}

func memberCount(decl syntax.Node) int {
	count := 0
	syntax.Preorder(decl, func(n syntax.Node) bool {
		if k := n.Kind(); k == kindFieldDeclaration || k == kindEnumVariant {
			count++
		}
		return true
	})
	return count
}

// StructMethods divides the number of function items found in impl blocks by the number
// of struct declarations in the file. Methods are not matched to their owning struct.
func StructMethods(t *syntax.Tree) float64 {
	methods := 0
	structs := 0

	syntax.Preorder(t.Root(), func(n syntax.Node) bool {
		switch n.Kind() {
		case kindStructItem:
			structs++
		case kindImplItem:
			methods += methodCount(n)
		}
		return true
	})

	if structs == 0 {
		return 0
	}
	return float64(methods) / float64(structs)
}

// methodCount counts function items under impl without looking inside their bodies.
func methodCount(impl syntax.Node) int {
	count := 0
	syntax.Preorder(impl, func(n syntax.Node) bool {
		if n.Kind() == kindFunctionItem {
			count++
			return false
		}
		return true
	})
	return count
}
