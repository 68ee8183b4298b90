package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welf/code-context/internal/rust/ast"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := Parse(src)
	require.NoError(t, err)
	return f
}

func onlyDecl(t *testing.T, src string) ast.Decl {
	t.Helper()
	f := parse(t, src)
	require.Len(t, f.Decls, 1)
	return f.Decls[0]
}

func TestParseFunctionShapes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		wantSig  string
		wantBody string
	}{
		{
			name:     "plain function",
			src:      "fn add(a: i32, b: i32) -> i32 { a + b }",
			wantName: "add",
			wantSig:  "fn add(a: i32, b: i32) -> i32",
			wantBody: "{ a + b }",
		},
		{
			name:     "qualifiers stay in the signature",
			src:      "pub(crate) async unsafe fn go() { work().await }",
			wantName: "go",
			wantSig:  "pub(crate) async unsafe fn go()",
			wantBody: "{ work().await }",
		},
		{
			name:     "const fn",
			src:      "pub const fn zero() -> usize { 0 }",
			wantName: "zero",
			wantSig:  "pub const fn zero() -> usize",
			wantBody: "{ 0 }",
		},
		{
			name:     "where clause precedes the body",
			src:      "fn pick<T>(items: &[T]) -> T where T: Copy { items[0] }",
			wantName: "pick",
			wantSig:  "fn pick<T>(items: &[T]) -> T where T: Copy",
			wantBody: "{ items[0] }",
		},
		{
			name:     "closure bound in the where clause",
			src:      "fn hook<F>(cb: F) where F: Fn() -> String { register(cb) }",
			wantName: "hook",
			wantSig:  "fn hook<F>(cb: F) where F: Fn() -> String",
			wantBody: "{ register(cb) }",
		},
		{
			name:     "nested braces inside the body",
			src:      "fn run() { if ok { a() } else { b() } }",
			wantName: "run",
			wantSig:  "fn run()",
			wantBody: "{ if ok { a() } else { b() } }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := onlyDecl(t, tt.src).(*ast.Fn)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, fn.Name)
			assert.Equal(t, tt.wantSig, fn.Sig)
			require.NotNil(t, fn.Body)
			assert.Equal(t, tt.wantBody, fn.Body.Raw)
		})
	}
}

func TestParseFunctionWithoutBody(t *testing.T) {
	fn, ok := onlyDecl(t, "extern \"C\" fn hook(len: usize) -> i32;").(*ast.Fn)
	require.True(t, ok)
	assert.Nil(t, fn.Body)
	assert.Equal(t, "extern \"C\" fn hook(len: usize) -> i32", fn.Sig)
}

func TestParseReturnTypes(t *testing.T) {
	ret := func(t *testing.T, decl string) ast.Type {
		t.Helper()
		fn, ok := onlyDecl(t, decl).(*ast.Fn)
		require.True(t, ok)
		return fn.Return
	}

	t.Run("missing return type is nil", func(t *testing.T) {
		assert.Nil(t, ret(t, "fn f() {}"))
	})

	t.Run("plain path", func(t *testing.T) {
		pt, ok := ret(t, "fn f() -> String {}").(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "String", pt.Name)
		assert.Equal(t, "String", pt.Src)
		assert.Empty(t, pt.Args)
	})

	t.Run("qualified path keeps the last segment", func(t *testing.T) {
		pt, ok := ret(t, "fn f() -> std::string::String {}").(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "String", pt.Name)
		assert.Equal(t, "std::string::String", pt.Src)
	})

	t.Run("result with two arguments", func(t *testing.T) {
		pt, ok := ret(t, "fn f() -> Result<String, io::Error> {}").(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "Result", pt.Name)
		require.Len(t, pt.Args, 2)
		first, ok := pt.Args[0].(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "String", first.Name)
	})

	t.Run("lifetimes do not become arguments", func(t *testing.T) {
		rt, ok := ret(t, "fn f<'a>(s: &'a str) -> &'a str {}").(*ast.RefType)
		require.True(t, ok)
		inner, ok := rt.Elem.(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "str", inner.Name)
	})

	t.Run("option of reference", func(t *testing.T) {
		pt, ok := ret(t, "fn f(s: &str) -> Option<&str> {}").(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "Option", pt.Name)
		require.Len(t, pt.Args, 1)
		_, ok = pt.Args[0].(*ast.RefType)
		assert.True(t, ok)
	})

	t.Run("tuple is unstructured", func(t *testing.T) {
		ot, ok := ret(t, "fn f() -> (u8, u8) {}").(*ast.OtherType)
		require.True(t, ok)
		assert.Equal(t, "(u8, u8)", ot.Src)
	})

	t.Run("trait object argument is unstructured", func(t *testing.T) {
		pt, ok := ret(t, "fn f() -> Box<dyn Iterator<Item = u32>> {}").(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "Box", pt.Name)
		require.Len(t, pt.Args, 1)
		_, ok = pt.Args[0].(*ast.OtherType)
		assert.True(t, ok)
	})

	t.Run("const argument contributes nothing", func(t *testing.T) {
		pt, ok := ret(t, "fn f() -> SmallVec<[u8; 4]> {}").(*ast.PathType)
		require.True(t, ok)
		require.Len(t, pt.Args, 1)
		_, ok = pt.Args[0].(*ast.OtherType)
		assert.True(t, ok)
	})

	t.Run("impl trait is unstructured", func(t *testing.T) {
		_, ok := ret(t, "fn f() -> impl Iterator<Item = u8> {}").(*ast.OtherType)
		assert.True(t, ok)
	})

	t.Run("closure bound after the return type", func(t *testing.T) {
		pt, ok := ret(t, "fn f<F>(f: F) -> u8 where F: Fn() -> String { 1 }").(*ast.PathType)
		require.True(t, ok)
		assert.Equal(t, "u8", pt.Name)
	})

	t.Run("closure bound without a return type", func(t *testing.T) {
		assert.Nil(t, ret(t, "fn f<F>(cb: F) where F: Fn() -> String { cb(); }"))
	})

	t.Run("fn pointer return keeps its inner arrow", func(t *testing.T) {
		ot, ok := ret(t, "fn f() -> fn() -> String {}").(*ast.OtherType)
		require.True(t, ok)
		assert.Equal(t, "fn() -> String", ot.Src)
	})
}

func TestParseStructShapes(t *testing.T) {
	t.Run("named fields keep generic commas together", func(t *testing.T) {
		src := "pub struct Index {\n    map: HashMap<String, Vec<u8>>,\n    count: usize,\n}"
		st, ok := onlyDecl(t, src).(*ast.Struct)
		require.True(t, ok)
		assert.Equal(t, ast.NamedStruct, st.Kind)
		assert.Equal(t, "pub struct Index", st.Header)
		require.Len(t, st.Fields, 2)
		assert.Equal(t, "map: HashMap<String, Vec<u8>>", st.Fields[0].Raw)
		assert.Equal(t, "count: usize", st.Fields[1].Raw)
	})

	t.Run("tuple struct with trailing where clause", func(t *testing.T) {
		src := "struct Pair<T>(T, T) where T: Clone;"
		st, ok := onlyDecl(t, src).(*ast.Struct)
		require.True(t, ok)
		assert.Equal(t, ast.TupleStruct, st.Kind)
		assert.Equal(t, "struct Pair<T>", st.Header)
		require.Len(t, st.Fields, 2)
		assert.Equal(t, "T", st.Fields[0].Raw)
		assert.Equal(t, " where T: Clone", st.Tail)
	})

	t.Run("unit struct", func(t *testing.T) {
		st, ok := onlyDecl(t, "pub struct Marker;").(*ast.Struct)
		require.True(t, ok)
		assert.Equal(t, ast.UnitStruct, st.Kind)
		assert.Equal(t, "pub struct Marker", st.Header)
		assert.Empty(t, st.Fields)
	})

	t.Run("field attributes attach to their field", func(t *testing.T) {
		src := "struct Cfg {\n    #[serde(default)]\n    retries: u8,\n}"
		st, ok := onlyDecl(t, src).(*ast.Struct)
		require.True(t, ok)
		require.Len(t, st.Fields, 1)
		require.Len(t, st.Fields[0].Attrs, 1)
		assert.Equal(t, "#[serde(default)]", st.Fields[0].Attrs[0].Raw)
	})
}

func TestParseEnumDiscriminants(t *testing.T) {
	t.Run("literal shift", func(t *testing.T) {
		src := "enum Mask {\n    Low = 1 << 2,\n    High = 3,\n    Shape { w: u32, h: u32 },\n}"
		en, ok := onlyDecl(t, src).(*ast.Enum)
		require.True(t, ok)
		require.Len(t, en.Variants, 3)
		assert.Equal(t, "Low = 1 << 2", en.Variants[0].Raw)
		assert.Equal(t, "High = 3", en.Variants[1].Raw)
		assert.Equal(t, "Shape { w: u32, h: u32 }", en.Variants[2].Raw)
	})

	t.Run("named operands in a shift", func(t *testing.T) {
		src := "enum Flags {\n    A = BASE << 1,\n    /// Second flag.\n    B,\n}"
		en, ok := onlyDecl(t, src).(*ast.Enum)
		require.True(t, ok)
		require.Len(t, en.Variants, 2)
		assert.Equal(t, "A = BASE << 1", en.Variants[0].Raw)
		assert.Equal(t, "B", en.Variants[1].Raw)
		require.Len(t, en.Variants[1].Attrs, 1)
		assert.Equal(t, " Second flag.", en.Variants[1].Attrs[0].Text)
	})

	t.Run("turbofish in a discriminant", func(t *testing.T) {
		src := "enum Sizes {\n    Word = mem::size_of::<u16>() as isize,\n    Tail,\n}"
		en, ok := onlyDecl(t, src).(*ast.Enum)
		require.True(t, ok)
		require.Len(t, en.Variants, 2)
		assert.Equal(t, "Word = mem::size_of::<u16>() as isize", en.Variants[0].Raw)
		assert.Equal(t, "Tail", en.Variants[1].Raw)
	})
}

func TestParseUnion(t *testing.T) {
	src := "union Bits {\n    f: f32,\n    u: u32,\n}"
	un, ok := onlyDecl(t, src).(*ast.Union)
	require.True(t, ok)
	assert.Equal(t, "Bits", un.Name)
	require.Len(t, un.Fields, 2)
}

func TestParseTraitMembers(t *testing.T) {
	src := `pub trait Render {
    type Output;
    const NAME: &'static str = "render";

    fn render(&self) -> String {
        String::new()
    }

    fn reset(&mut self);
}`
	tr, ok := onlyDecl(t, src).(*ast.Trait)
	require.True(t, ok)
	assert.Equal(t, "Render", tr.Name)
	assert.Equal(t, "pub trait Render", tr.Header)
	require.Len(t, tr.Items, 4)

	assoc, ok := tr.Items[0].(*ast.RawItem)
	require.True(t, ok)
	assert.Equal(t, "type Output;", assoc.Raw)

	cnst, ok := tr.Items[1].(*ast.RawItem)
	require.True(t, ok)
	assert.Equal(t, `const NAME: &'static str = "render";`, cnst.Raw)

	withDefault, ok := tr.Items[2].(*ast.Method)
	require.True(t, ok)
	assert.Equal(t, "render", withDefault.Name)
	require.NotNil(t, withDefault.Default)

	required, ok := tr.Items[3].(*ast.Method)
	require.True(t, ok)
	assert.Equal(t, "reset", required.Name)
	assert.Nil(t, required.Default)
}

func TestParseTraitAlias(t *testing.T) {
	ta, ok := onlyDecl(t, "trait Callback = Fn(u32) -> u32;").(*ast.TraitAlias)
	require.True(t, ok)
	assert.Equal(t, "Callback", ta.Name)
	assert.Equal(t, "trait Callback = Fn(u32) -> u32;", ta.Raw)
}

func TestParseImplHeaders(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantTraitRef string
		wantHeader   string
	}{
		{
			name:         "inherent impl",
			src:          "impl Widget { fn new() -> Self { Self {} } }",
			wantTraitRef: "",
			wantHeader:   "impl Widget",
		},
		{
			name:         "trait impl",
			src:          "impl Display for Widget { fn fmt(&self, f: &mut Formatter) -> fmt::Result { Ok(()) } }",
			wantTraitRef: "Display",
			wantHeader:   "impl Display for Widget",
		},
		{
			name:         "generic bounds stay out of the trait path",
			src:          "impl<T: Serialize> Store for Wrap<T> { fn len(&self) -> usize { 0 } }",
			wantTraitRef: "Store",
			wantHeader:   "impl<T: Serialize> Store for Wrap<T>",
		},
		{
			name:         "higher ranked bound inside generics",
			src:          "impl<F: for<'a> Fn(&'a str)> Apply for F { fn apply(&self) {} }",
			wantTraitRef: "Apply",
			wantHeader:   "impl<F: for<'a> Fn(&'a str)> Apply for F",
		},
		{
			name:         "qualified trait path",
			src:          "impl serde::Serialize for Point { fn serialize<S>(&self, s: S) -> Result<S::Ok, S::Error> { s.end() } }",
			wantTraitRef: "serde::Serialize",
			wantHeader:   "impl serde::Serialize for Point",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, ok := onlyDecl(t, tt.src).(*ast.Impl)
			require.True(t, ok)
			assert.Equal(t, tt.wantTraitRef, im.TraitRef)
			assert.Equal(t, tt.wantHeader, im.Header)
			require.NotEmpty(t, im.Items)
		})
	}
}

func TestParseAttrClassification(t *testing.T) {
	src := `#[derive(Debug, serde::Serialize, PartialEq)]
#[cfg(feature = "fast")]
#[doc = "Carries bytes."]
#[doc(hidden)]
struct Payload;`
	st, ok := onlyDecl(t, src).(*ast.Struct)
	require.True(t, ok)
	require.Len(t, st.Attrs, 4)

	derive := st.Attrs[0]
	assert.Equal(t, ast.AttrDerive, derive.Kind)
	assert.Equal(t, []string{"Debug", "serde::Serialize", "PartialEq"}, derive.Traits)

	cfg := st.Attrs[1]
	assert.Equal(t, ast.AttrCfg, cfg.Kind)
	assert.Equal(t, `feature = "fast"`, cfg.Predicate)

	doc := st.Attrs[2]
	assert.Equal(t, ast.AttrDoc, doc.Kind)
	assert.Equal(t, "Carries bytes.", doc.Text)
	assert.Empty(t, doc.Raw)

	hidden := st.Attrs[3]
	assert.Equal(t, ast.AttrDoc, hidden.Kind)
	assert.Equal(t, "#[doc(hidden)]", hidden.Raw)
}

func TestParseTestAttributeForms(t *testing.T) {
	f := parse(t, "#[test]\nfn check() {}\n\n#[tokio::test]\nasync fn io_check() {}")
	require.Len(t, f.Decls, 2)
	plain := f.Decls[0].(*ast.Fn)
	require.Len(t, plain.Attrs, 1)
	assert.Equal(t, ast.AttrTest, plain.Attrs[0].Kind)
	scoped := f.Decls[1].(*ast.Fn)
	require.Len(t, scoped.Attrs, 1)
	assert.Equal(t, ast.AttrOther, scoped.Attrs[0].Kind)
}

func TestParseDocCommentForms(t *testing.T) {
	src := "//! Crate docs.\n\n/// Outer line.\n/** Outer block. */\nfn f() {}"
	f := parse(t, src)
	require.Len(t, f.InnerAttrs, 1)
	assert.Equal(t, " Crate docs.", f.InnerAttrs[0].Text)
	assert.True(t, f.InnerAttrs[0].Inner)

	fn := f.Decls[0].(*ast.Fn)
	require.Len(t, fn.Attrs, 2)
	assert.Equal(t, " Outer line.", fn.Attrs[0].Text)
	assert.False(t, fn.Attrs[0].Block)
	assert.Equal(t, " Outer block. ", fn.Attrs[1].Text)
	assert.True(t, fn.Attrs[1].Block)
}

func TestParseModules(t *testing.T) {
	t.Run("declaration only", func(t *testing.T) {
		m, ok := onlyDecl(t, "pub mod wire;").(*ast.Mod)
		require.True(t, ok)
		assert.False(t, m.Inline)
		assert.Equal(t, "pub mod wire", m.Header)
	})

	t.Run("inline with inner attributes", func(t *testing.T) {
		src := "mod codec {\n    #![allow(dead_code)]\n    //! Codec internals.\n\n    fn encode() {}\n}"
		m, ok := onlyDecl(t, src).(*ast.Mod)
		require.True(t, ok)
		assert.True(t, m.Inline)
		require.Len(t, m.InnerAttrs, 2)
		assert.Equal(t, ast.AttrOther, m.InnerAttrs[0].Kind)
		assert.Equal(t, ast.AttrDoc, m.InnerAttrs[1].Kind)
		require.Len(t, m.Items, 1)
	})

	t.Run("nested modules", func(t *testing.T) {
		src := "mod outer { mod inner { fn leaf() {} } }"
		m := onlyDecl(t, src).(*ast.Mod)
		inner, ok := m.Items[0].(*ast.Mod)
		require.True(t, ok)
		assert.Equal(t, "inner", inner.Name)
		require.Len(t, inner.Items, 1)
	})
}

func TestParseLeafDeclarations(t *testing.T) {
	src := `use std::io::Read;
pub type Alias<T> = Vec<T>;
pub const LIMIT: usize = 8;
static NAME: &str = "x";
extern crate serde;
extern "C" { fn c_hook(); }
macro_rules! twice { ($e:expr) => { $e + $e }; }
lazy_static! { static ref CACHE: u8 = 0; }
include!("generated.rs");`
	f := parse(t, src)
	require.Len(t, f.Decls, 9)

	use0, ok := f.Decls[0].(*ast.Use)
	require.True(t, ok)
	assert.Equal(t, "use std::io::Read;", use0.Raw)

	alias, ok := f.Decls[1].(*ast.TypeAlias)
	require.True(t, ok)
	assert.Equal(t, "Alias", alias.Name)

	cnst, ok := f.Decls[2].(*ast.Const)
	require.True(t, ok)
	assert.Equal(t, "LIMIT", cnst.Name)

	stat, ok := f.Decls[3].(*ast.Static)
	require.True(t, ok)
	assert.Equal(t, "NAME", stat.Name)

	_, ok = f.Decls[4].(*ast.Other)
	require.True(t, ok)

	foreign, ok := f.Decls[5].(*ast.ForeignMod)
	require.True(t, ok)
	assert.Equal(t, `extern "C" { fn c_hook(); }`, foreign.Raw)

	rules, ok := f.Decls[6].(*ast.MacroCall)
	require.True(t, ok)
	assert.Contains(t, rules.Raw, "macro_rules! twice")

	lazy, ok := f.Decls[7].(*ast.MacroCall)
	require.True(t, ok)
	assert.Contains(t, lazy.Raw, "lazy_static!")

	inc, ok := f.Decls[8].(*ast.MacroCall)
	require.True(t, ok)
	assert.Equal(t, `include!("generated.rs");`, inc.Raw)
}

func TestParseShebangAndFileAttrs(t *testing.T) {
	f := parse(t, "#!/usr/bin/env run-cargo-script\n#![forbid(unsafe_code)]\nfn main() {}")
	require.Len(t, f.InnerAttrs, 1)
	assert.Equal(t, "#![forbid(unsafe_code)]", f.InnerAttrs[0].Raw)
	require.Len(t, f.Decls, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "unbalanced body",
			src:      "fn broken() {\n    if x {\n}",
			wantLine: 1,
			wantMsg:  "unbalanced",
		},
		{
			name:     "struct without a name",
			src:      "struct;",
			wantLine: 1,
			wantMsg:  "expected struct name",
		},
		{
			name:     "dangling attribute",
			src:      "fn ok() {}\n#[derive(Debug)]",
			wantLine: 2,
			wantMsg:  "expected declaration after attributes",
		},
		{
			name:     "stray closing brace",
			src:      "fn ok() {}\n}",
			wantLine: 2,
			wantMsg:  "expected declaration",
		},
		{
			name:     "unterminated string",
			src:      "fn s() { let x = \"oops; }",
			wantLine: 1,
			wantMsg:  "unterminated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var diag *Diagnostic
			require.ErrorAs(t, err, &diag)
			assert.Equal(t, tt.wantLine, diag.Line)
			assert.Contains(t, diag.Msg, tt.wantMsg)
		})
	}
}

func TestDiagnosticFormatsPath(t *testing.T) {
	d := &Diagnostic{Line: 3, Col: 7, Msg: "boom"}
	assert.Equal(t, "3:7: boom", d.Error())
	d.Path = "src/lib.rs"
	assert.Equal(t, "src/lib.rs:3:7: boom", d.Error())
}
