package registry

// TypeID is the key of a type in one metadata document
type TypeID uint32

// Type is a node of the type graph
type Type struct {
	Def    Def
	Path   []string
	Params []TypeParam
	Docs   []string
	ID     TypeID
}

// Name returns the final path segment, or "" for anonymous types.
func (t *Type) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// TypeParam is a generic parameter; Type is nil when the parameter is erased.
type TypeParam struct {
	Type *TypeID
	Name string
}

// Def is the closed set of type definitions
type Def interface {
	Kind() DefKind
	// refs lists every TypeID the definition references.
	refs() []TypeID
}

type Primitive struct {
	Prim PrimitiveKind
}

type Composite struct {
	Fields []Field
}

// Field is a composite or variant field. Name is "" for positional fields.
type Field struct {
	Name     string
	TypeName string
	Docs     []string
	Type     TypeID
}

type Variant struct {
	Variants []VariantCase
}

// VariantCase is one case of a variant. Index is the wire discriminant and is not
// necessarily its position in Variants.
type VariantCase struct {
	Name   string
	Fields []Field
	Docs   []string
	Index  uint8
}

type Sequence struct {
	Elem TypeID
}

type Array struct {
	Elem TypeID
	Len  uint32
}

type Tuple struct {
	Elems []TypeID
}

type Compact struct {
	Inner TypeID
}

type BitSequence struct {
	StoreType TypeID
	OrderType TypeID
}

func (Primitive) Kind() DefKind   { return DefPrimitive }
func (Composite) Kind() DefKind   { return DefComposite }
func (Variant) Kind() DefKind     { return DefVariant }
func (Sequence) Kind() DefKind    { return DefSequence }
func (Array) Kind() DefKind       { return DefArray }
func (Tuple) Kind() DefKind       { return DefTuple }
func (Compact) Kind() DefKind     { return DefCompact }
func (BitSequence) Kind() DefKind { return DefBitSequence }

func (Primitive) refs() []TypeID { return nil }

func (c Composite) refs() []TypeID { return fieldRefs(c.Fields) }

func (v Variant) refs() []TypeID {
	var ids []TypeID
	for _, vc := range v.Variants {
		ids = append(ids, fieldRefs(vc.Fields)...)
	}
	return ids
}

func (s Sequence) refs() []TypeID    { return []TypeID{s.Elem} }
func (a Array) refs() []TypeID       { return []TypeID{a.Elem} }
func (t Tuple) refs() []TypeID       { return t.Elems }
func (c Compact) refs() []TypeID     { return []TypeID{c.Inner} }
func (b BitSequence) refs() []TypeID { return []TypeID{b.StoreType, b.OrderType} }

func fieldRefs(fields []Field) []TypeID {
	ids := make([]TypeID, len(fields))
	for i, f := range fields {
		ids[i] = f.Type
	}
	return ids
}

// Case returns the variant case with the given name.
func (v Variant) Case(name string) (VariantCase, bool) {
	for _, vc := range v.Variants {
		if vc.Name == name {
			return vc, true
		}
	}
	return VariantCase{}, false
}
