// Package ast defines the declaration tree produced by the parser and
// rewritten by the condensing pass.
//
// The tree is deliberately shallow. Declarations are modeled just deeply
// enough for classification decisions: attributes, names, return types and
// member lists are structured, while signatures, bodies, fields and other
// leaf text are verbatim source spans. The set of Decl implementations is
// closed; the transform dispatches over every variant and treats an
// unknown one as a programming error.
package ast

// AttrKind discriminates the metadata markers that drive classification.
type AttrKind int

const (
	// AttrDoc is a documentation marker in any source form.
	AttrDoc AttrKind = iota
	// AttrDerive is a derive list such as #[derive(Debug, Clone)].
	AttrDerive
	// AttrCfg is a conditional-compilation marker.
	AttrCfg
	// AttrTest is the bare #[test] marker.
	AttrTest
	// AttrOther is any other attribute, kept verbatim.
	AttrOther
)

// Attr is one metadata marker attached to a declaration or member.
type Attr struct {
	Kind  AttrKind
	Inner bool // #![...] or //! forms, attached to the enclosing scope

	// Doc markers only.
	Block bool   // block source form, rewritten by normalization
	Text  string // doc text exactly as written after the marker

	// Derive markers only: the trait names inside the parentheses.
	Traits []string

	// Cfg markers only: the predicate text inside cfg(...).
	Predicate string

	// Verbatim source for every non-doc marker.
	Raw string
}

// DocLine returns a line-form documentation marker.
func DocLine(text string, inner bool) Attr {
	return Attr{Kind: AttrDoc, Inner: inner, Text: text}
}

// Block is a brace-delimited body kept as verbatim source text.
type Block struct {
	Raw string // includes the braces; "{}" after emptying
}

// EmptyBlock is the body every stripped function receives.
func EmptyBlock() *Block {
	return &Block{Raw: "{}"}
}

// Decl is one declaration in the tree.
type Decl interface {
	decl()
}

// File is the root of one parsed source file.
type File struct {
	InnerAttrs []Attr // file-level documentation and attributes
	Decls      []Decl
}

// Fn is a free function.
type Fn struct {
	Attrs  []Attr
	Name   string
	Sig    string // verbatim from the first qualifier through the where clause
	Return Type   // nil when the signature has no -> clause
	Body   *Block
}

// Method is a function member of a trait or impl block. Required trait
// methods have a nil Default.
type Method struct {
	Attrs   []Attr
	Name    string
	Sig     string
	Return  Type
	Default *Block
}

// RawItem is a non-function member of a trait or impl block, such as an
// associated const, associated type or macro invocation.
type RawItem struct {
	Attrs []Attr
	Raw   string
}

// TraitItem is a member of a trait body.
type TraitItem interface {
	traitItem()
}

// ImplItem is a member of an impl body.
type ImplItem interface {
	implItem()
}

// Mod is a module, inline or declared.
type Mod struct {
	Attrs      []Attr
	Name       string
	Header     string // through the module name, e.g. "pub mod storage"
	InnerAttrs []Attr
	Items      []Decl
	Inline     bool // mod name { ... } rather than mod name;
}

// StructKind distinguishes the three struct body shapes.
type StructKind int

const (
	NamedStruct StructKind = iota
	TupleStruct
	UnitStruct
)

// Field is one named-struct field or tuple-struct element.
type Field struct {
	Attrs []Attr
	Raw   string // e.g. "pub name: String", without the trailing comma
}

// Struct is a struct declaration of any shape.
type Struct struct {
	Attrs  []Attr
	Name   string
	Kind   StructKind
	Header string  // through generics and any leading where clause
	Fields []Field // named fields or tuple elements
	Tail   string  // tuple-form where clause after the parentheses
}

// Union is a C-style union declaration.
type Union struct {
	Attrs  []Attr
	Name   string
	Header string
	Fields []Field
}

// Variant is one enum variant, payload included.
type Variant struct {
	Attrs []Attr
	Raw   string
}

// Enum is an enum declaration.
type Enum struct {
	Attrs    []Attr
	Name     string
	Header   string
	Variants []Variant
}

// Trait is a trait declaration with its members.
type Trait struct {
	Attrs      []Attr
	Name       string
	Header     string // through supertraits and the where clause
	InnerAttrs []Attr
	Items      []TraitItem
}

// Impl is an inherent or trait implementation block.
type Impl struct {
	Attrs      []Attr
	Header     string
	TraitRef   string // verbatim trait path, empty for inherent impls
	InnerAttrs []Attr
	Items      []ImplItem
}

// TypeAlias is a type alias, kept verbatim.
type TypeAlias struct {
	Attrs []Attr
	Name  string
	Raw   string
}

// Const is a constant item, kept verbatim.
type Const struct {
	Attrs []Attr
	Name  string
	Raw   string
}

// Static is a static item, kept verbatim.
type Static struct {
	Attrs []Attr
	Name  string
	Raw   string
}

// Use is an import declaration, kept verbatim.
type Use struct {
	Attrs []Attr
	Raw   string
}

// ForeignMod is an extern block, kept verbatim.
type ForeignMod struct {
	Attrs []Attr
	Raw   string
}

// MacroCall is an item-position macro invocation, kept verbatim.
type MacroCall struct {
	Attrs []Attr
	Raw   string
}

// TraitAlias is a trait alias, kept verbatim.
type TraitAlias struct {
	Attrs []Attr
	Name  string
	Raw   string
}

// Other is a declaration the parser recognizes but does not model, such
// as extern crate. It is kept verbatim.
type Other struct {
	Attrs []Attr
	Raw   string
}

func (*Fn) decl()         {}
func (*Mod) decl()        {}
func (*Struct) decl()     {}
func (*Union) decl()      {}
func (*Enum) decl()       {}
func (*Trait) decl()      {}
func (*Impl) decl()       {}
func (*TypeAlias) decl()  {}
func (*Const) decl()      {}
func (*Static) decl()     {}
func (*Use) decl()        {}
func (*ForeignMod) decl() {}
func (*MacroCall) decl()  {}
func (*TraitAlias) decl() {}
func (*Other) decl()      {}

func (*Method) traitItem()  {}
func (*RawItem) traitItem() {}
func (*Method) implItem()   {}
func (*RawItem) implItem()  {}
