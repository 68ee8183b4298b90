package ast

// Type is the structured view of a return type. Only the shapes the
// significance analysis distinguishes are modeled; everything else
// collapses into OtherType.
type Type interface {
	typeNode()
	// Text returns the verbatim source of the whole type.
	Text() string
}

// RefType is one reference layer: &T, &'a T, &mut T.
type RefType struct {
	Src  string
	Elem Type
}

// PathType is a possibly generic named type such as String,
// std::borrow::Cow<'a, str> or Result<String, Error>.
type PathType struct {
	Src  string
	Name string // last path segment identifier
	Args []Type // generic type arguments of the last segment
}

// OtherType covers tuples, slices, pointers, fn pointers, impl Trait and
// dyn Trait forms.
type OtherType struct {
	Src string
}

func (t *RefType) typeNode()   {}
func (t *PathType) typeNode()  {}
func (t *OtherType) typeNode() {}

func (t *RefType) Text() string   { return t.Src }
func (t *PathType) Text() string  { return t.Src }
func (t *OtherType) Text() string { return t.Src }
