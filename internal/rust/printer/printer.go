// Package printer renders a declaration tree back to Rust source text.
//
// Output is canonical rather than source-identical: documentation always
// prints in line form, indentation is four spaces per level, and one blank
// line separates declarations. Verbatim spans (signatures, bodies, fields)
// print exactly as sliced from the input.
package printer

import (
	"fmt"
	"strings"

	"github.com/welf/code-context/internal/rust/ast"
)

const indentUnit = "    "

// Print renders the whole file.
func Print(f *ast.File) string {
	w := &writer{}
	wrote := false
	if len(f.InnerAttrs) > 0 {
		w.attrs(0, f.InnerAttrs)
		wrote = true
	}
	for _, d := range f.Decls {
		if wrote {
			w.blank()
		}
		w.decl(0, d)
		wrote = true
	}
	return w.b.String()
}

type writer struct {
	b strings.Builder
}

func (w *writer) line(indent int, text string) {
	for i := 0; i < indent; i++ {
		w.b.WriteString(indentUnit)
	}
	w.b.WriteString(text)
	w.b.WriteByte('\n')
}

// raw writes a verbatim span: the first line at the given indent, any
// continuation lines untouched since they carry their source indentation.
func (w *writer) raw(indent int, text string) {
	lines := strings.Split(text, "\n")
	w.line(indent, lines[0])
	for _, ln := range lines[1:] {
		w.b.WriteString(ln)
		w.b.WriteByte('\n')
	}
}

func (w *writer) blank() {
	w.b.WriteByte('\n')
}

func (w *writer) attrs(indent int, attrs []ast.Attr) {
	for _, a := range attrs {
		if a.Kind == ast.AttrDoc && a.Raw == "" {
			marker := "///"
			if a.Inner {
				marker = "//!"
			}
			for _, ln := range strings.Split(a.Text, "\n") {
				w.line(indent, marker+ln)
			}
			continue
		}
		w.raw(indent, a.Raw)
	}
}

func (w *writer) decl(indent int, d ast.Decl) {
	switch d := d.(type) {
	case *ast.Fn:
		w.attrs(indent, d.Attrs)
		if d.Body == nil {
			w.raw(indent, d.Sig+";")
			return
		}
		w.raw(indent, d.Sig+" "+d.Body.Raw)
	case *ast.Mod:
		w.attrs(indent, d.Attrs)
		if !d.Inline {
			w.raw(indent, d.Header+";")
			return
		}
		if len(d.InnerAttrs) == 0 && len(d.Items) == 0 {
			w.raw(indent, d.Header+" {}")
			return
		}
		w.raw(indent, d.Header+" {")
		wrote := false
		if len(d.InnerAttrs) > 0 {
			w.attrs(indent+1, d.InnerAttrs)
			wrote = true
		}
		for _, item := range d.Items {
			if wrote {
				w.blank()
			}
			w.decl(indent+1, item)
			wrote = true
		}
		w.line(indent, "}")
	case *ast.Struct:
		w.attrs(indent, d.Attrs)
		switch d.Kind {
		case ast.UnitStruct:
			w.raw(indent, d.Header+";")
		case ast.TupleStruct:
			w.tupleStruct(indent, d)
		default:
			w.fieldBlock(indent, d.Header, d.Fields)
		}
	case *ast.Union:
		w.attrs(indent, d.Attrs)
		w.fieldBlock(indent, d.Header, d.Fields)
	case *ast.Enum:
		w.attrs(indent, d.Attrs)
		fields := make([]ast.Field, len(d.Variants))
		for i, v := range d.Variants {
			fields[i] = ast.Field(v)
		}
		w.fieldBlock(indent, d.Header, fields)
	case *ast.Trait:
		w.attrs(indent, d.Attrs)
		w.memberBlock(indent, d.Header, d.InnerAttrs, len(d.Items), func(i int) {
			w.member(indent+1, d.Items[i])
		})
	case *ast.Impl:
		w.attrs(indent, d.Attrs)
		w.memberBlock(indent, d.Header, d.InnerAttrs, len(d.Items), func(i int) {
			w.member(indent+1, d.Items[i])
		})
	case *ast.TypeAlias:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.Const:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.Static:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.Use:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.ForeignMod:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.MacroCall:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.TraitAlias:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	case *ast.Other:
		w.attrs(indent, d.Attrs)
		w.raw(indent, d.Raw)
	default:
		panic(fmt.Sprintf("printer: unhandled declaration %T", d))
	}
}

func (w *writer) fieldBlock(indent int, header string, fields []ast.Field) {
	if len(fields) == 0 {
		w.raw(indent, header+" {}")
		return
	}
	w.raw(indent, header+" {")
	for _, f := range fields {
		w.attrs(indent+1, f.Attrs)
		w.raw(indent+1, f.Raw+",")
	}
	w.line(indent, "}")
}

// tupleStruct prints on one line unless an element carries attributes.
func (w *writer) tupleStruct(indent int, d *ast.Struct) {
	plain := true
	for _, f := range d.Fields {
		if len(f.Attrs) > 0 {
			plain = false
			break
		}
	}
	if plain {
		raws := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			raws[i] = f.Raw
		}
		w.raw(indent, d.Header+"("+strings.Join(raws, ", ")+")"+d.Tail+";")
		return
	}
	w.raw(indent, d.Header+"(")
	for _, f := range d.Fields {
		w.attrs(indent+1, f.Attrs)
		w.raw(indent+1, f.Raw+",")
	}
	w.line(indent, ")"+d.Tail+";")
}

func (w *writer) memberBlock(indent int, header string, inner []ast.Attr, n int, member func(int)) {
	if len(inner) == 0 && n == 0 {
		w.raw(indent, header+" {}")
		return
	}
	w.raw(indent, header+" {")
	wrote := false
	if len(inner) > 0 {
		w.attrs(indent+1, inner)
		wrote = true
	}
	for i := 0; i < n; i++ {
		if wrote {
			w.blank()
		}
		member(i)
		wrote = true
	}
	w.line(indent, "}")
}

func (w *writer) member(indent int, item any) {
	switch it := item.(type) {
	case *ast.Method:
		w.attrs(indent, it.Attrs)
		if it.Default == nil {
			w.raw(indent, it.Sig+";")
			return
		}
		w.raw(indent, it.Sig+" "+it.Default.Raw)
	case *ast.RawItem:
		w.attrs(indent, it.Attrs)
		w.raw(indent, it.Raw)
	default:
		panic(fmt.Sprintf("printer: unhandled member %T", item))
	}
}
