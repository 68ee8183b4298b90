package transform

import (
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
)

// serializeTrait marks impl blocks whose method bodies carry
// serialization-significant string literals and stay intact.
const serializeTrait = "Serialize"

// testOnly reports whether the attributes mark a declaration as test
// code: a #[test] marker, or any cfg predicate whose text mentions test.
// The cfg check matches the predicate text, not its structure, so
// cfg(any(test, feature = "testing")) counts.
func testOnly(attrs []ast.Attr) bool {
	for _, a := range attrs {
		switch a.Kind {
		case ast.AttrTest:
			return true
		case ast.AttrCfg:
			if strings.Contains(a.Predicate, "test") {
				return true
			}
		}
	}
	return false
}

// hasDerive reports whether any derive marker is present, regardless of
// the traits it lists.
func hasDerive(attrs []ast.Attr) bool {
	for _, a := range attrs {
		if a.Kind == ast.AttrDerive {
			return true
		}
	}
	return false
}

// implementsTraitNamed reports whether the implemented trait path mentions
// the given name. Inherent impls have an empty trait path and never match.
func implementsTraitNamed(traitRef, name string) bool {
	return traitRef != "" && strings.Contains(traitRef, name)
}
