package transform

import (
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
)

// processAttrs applies the documentation policy to one attribute list.
// Stripping removes every doc marker. Normalizing rewrites block docs to
// one line marker per content line and right-trims each line, in place of
// the original marker so attribute order is preserved. Doc markers that
// carry no text, such as #[doc(hidden)], pass through untouched.
func processAttrs(attrs []ast.Attr, opts Options) []ast.Attr {
	if opts.StripDocs {
		kept := attrs[:0]
		for _, a := range attrs {
			if a.Kind != ast.AttrDoc {
				kept = append(kept, a)
			}
		}
		return kept
	}
	var out []ast.Attr
	for _, a := range attrs {
		if a.Kind != ast.AttrDoc || a.Raw != "" {
			out = append(out, a)
			continue
		}
		out = append(out, docLines(a)...)
	}
	return out
}

// docLines normalizes one textual doc marker to line form.
func docLines(a ast.Attr) []ast.Attr {
	if !a.Block && !strings.ContainsRune(a.Text, '\n') {
		a.Text = strings.TrimRight(a.Text, " \t\r")
		return []ast.Attr{a}
	}
	lines := strings.Split(a.Text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t\r")
	}
	// The closing */ of a block doc leaves an empty final line behind.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]ast.Attr, 0, len(lines))
	for _, ln := range lines {
		out = append(out, ast.DocLine(ln, a.Inner))
	}
	return out
}

const (
	requiredMethodDoc = " This is a required method"
	defaultMethodDoc  = " There is a default implementation"
)

// insertStatusDoc prefixes a trait method's documentation with its
// required/default status line. Existing docs follow after one blank doc
// line. A method already carrying the status line is left alone, so
// condensing an earlier condensed output does not stack markers.
func insertStatusDoc(m *ast.Method) {
	status := requiredMethodDoc
	if m.Default != nil {
		status = defaultMethodDoc
	}
	var docs []ast.Attr
	rest := make([]ast.Attr, 0, len(m.Attrs)+2)
	for _, a := range m.Attrs {
		if a.Kind == ast.AttrDoc {
			docs = append(docs, a)
		} else {
			rest = append(rest, a)
		}
	}
	if len(docs) > 0 && docs[0].Raw == "" && docs[0].Text == status {
		return
	}
	out := append(rest, ast.DocLine(status, false))
	if len(docs) > 0 {
		out = append(out, ast.DocLine("", false))
		out = append(out, docs...)
	}
	m.Attrs = out
}
