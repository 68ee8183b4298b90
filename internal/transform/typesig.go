package transform

import (
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
)

// stringLike reports whether a return type means the body builds text
// worth keeping. References unwrap to their element. Result and Option
// defer to their first type argument, so Result<String, io::Error> is
// string-like while Result<(), StringError> is not. Any other named type
// matches on its source text mentioning String, str or Cow<str>. Tuples,
// slices, trait objects and a missing return type never match.
func stringLike(t ast.Type) bool {
	switch t := t.(type) {
	case nil:
		return false
	case *ast.RefType:
		return stringLike(t.Elem)
	case *ast.PathType:
		if t.Name == "Result" || t.Name == "Option" {
			if len(t.Args) == 0 {
				return false
			}
			return stringLike(t.Args[0])
		}
		return strings.Contains(t.Src, "String") ||
			strings.Contains(t.Src, "str") ||
			strings.Contains(t.Src, "Cow<str>")
	default:
		return false
	}
}
