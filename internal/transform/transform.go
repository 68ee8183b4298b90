// Package transform implements the condensing pass over a parsed
// declaration tree: test-only declarations are removed, documentation is
// normalized or stripped, and function bodies are emptied except where a
// string-like return type or a serialization impl marks their contents
// significant.
package transform

import (
	"fmt"

	"github.com/welf/code-context/internal/rust/ast"
)

// Options are the two policy switches of the pass.
type Options struct {
	// StripDocs removes documentation markers instead of normalizing them.
	StripDocs bool
	// StripBodies empties the bodies of free functions and impl methods.
	// Trait default bodies are always emptied unless string-significant.
	StripBodies bool
}

// Apply runs the single mutating depth-first pass over the file.
func Apply(f *ast.File, opts Options) {
	f.InnerAttrs = processAttrs(f.InnerAttrs, opts)
	f.Decls = removeTestOnly(f.Decls)
	for _, d := range f.Decls {
		applyDecl(d, opts)
	}
}

func removeTestOnly(decls []ast.Decl) []ast.Decl {
	kept := decls[:0]
	for _, d := range decls {
		if !testOnly(attrsOf(d)) {
			kept = append(kept, d)
		}
	}
	return kept
}

func applyDecl(d ast.Decl, opts Options) {
	// Parents filter test-only children before recursing; this guard
	// covers direct calls. A test-only module keeps its shell but loses
	// its contents.
	if testOnly(attrsOf(d)) {
		if m, ok := d.(*ast.Mod); ok {
			m.Items = nil
		}
		return
	}

	switch d := d.(type) {
	case *ast.Fn:
		d.Attrs = processAttrs(d.Attrs, opts)
		if opts.StripBodies && d.Body != nil {
			d.Body = ast.EmptyBlock()
		}
	case *ast.Mod:
		d.Attrs = processAttrs(d.Attrs, opts)
		d.InnerAttrs = processAttrs(d.InnerAttrs, opts)
		d.Items = removeTestOnly(d.Items)
		for _, item := range d.Items {
			applyDecl(item, opts)
		}
	case *ast.Trait:
		d.Attrs = processAttrs(d.Attrs, opts)
		d.InnerAttrs = processAttrs(d.InnerAttrs, opts)
		for _, item := range d.Items {
			switch it := item.(type) {
			case *ast.Method:
				it.Attrs = processAttrs(it.Attrs, opts)
				if it.Default != nil && !stringLike(it.Return) {
					it.Default = ast.EmptyBlock()
				}
				if !opts.StripDocs {
					insertStatusDoc(it)
				}
			case *ast.RawItem:
				it.Attrs = processAttrs(it.Attrs, opts)
			}
		}
	case *ast.Impl:
		d.Attrs = processAttrs(d.Attrs, opts)
		d.InnerAttrs = processAttrs(d.InnerAttrs, opts)
		derived := hasDerive(d.Attrs)
		serialize := implementsTraitNamed(d.TraitRef, serializeTrait)
		for _, item := range d.Items {
			switch it := item.(type) {
			case *ast.Method:
				it.Attrs = processAttrs(it.Attrs, opts)
				if opts.StripBodies && it.Default != nil &&
					(derived || (!serialize && !stringLike(it.Return))) {
					it.Default = ast.EmptyBlock()
				}
			case *ast.RawItem:
				it.Attrs = processAttrs(it.Attrs, opts)
			}
		}
	case *ast.Struct:
		d.Attrs = processAttrs(d.Attrs, opts)
		for i := range d.Fields {
			d.Fields[i].Attrs = processAttrs(d.Fields[i].Attrs, opts)
		}
	case *ast.Union:
		d.Attrs = processAttrs(d.Attrs, opts)
		for i := range d.Fields {
			d.Fields[i].Attrs = processAttrs(d.Fields[i].Attrs, opts)
		}
	case *ast.Enum:
		d.Attrs = processAttrs(d.Attrs, opts)
		for i := range d.Variants {
			d.Variants[i].Attrs = processAttrs(d.Variants[i].Attrs, opts)
		}
	case *ast.TypeAlias:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.Const:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.Static:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.Use:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.ForeignMod:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.MacroCall:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.TraitAlias:
		d.Attrs = processAttrs(d.Attrs, opts)
	case *ast.Other:
		d.Attrs = processAttrs(d.Attrs, opts)
	default:
		panic(fmt.Sprintf("transform: unhandled declaration %T", d))
	}
}

// attrsOf is the metadata accessor for every declaration variant. The
// variant set is closed; an unhandled one is a programming error.
func attrsOf(d ast.Decl) []ast.Attr {
	switch d := d.(type) {
	case *ast.Fn:
		return d.Attrs
	case *ast.Mod:
		return d.Attrs
	case *ast.Struct:
		return d.Attrs
	case *ast.Union:
		return d.Attrs
	case *ast.Enum:
		return d.Attrs
	case *ast.Trait:
		return d.Attrs
	case *ast.Impl:
		return d.Attrs
	case *ast.TypeAlias:
		return d.Attrs
	case *ast.Const:
		return d.Attrs
	case *ast.Static:
		return d.Attrs
	case *ast.Use:
		return d.Attrs
	case *ast.ForeignMod:
		return d.Attrs
	case *ast.MacroCall:
		return d.Attrs
	case *ast.TraitAlias:
		return d.Attrs
	case *ast.Other:
		return d.Attrs
	default:
		panic(fmt.Sprintf("transform: metadata access not implemented for %T", d))
	}
}
