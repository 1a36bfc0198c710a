package registry

import (
	"bytes"
	"encoding/json"

	"github.com/wippyai/scale-codec/errors"
)

// Parse reads a portable registry in its JSON form: either the bare array of
// {"id", "type"} entries or an object carrying it under "types".
func Parse(data []byte) (*Registry, error) {
	data = bytes.TrimSpace(data)

	var entries []jsonEntry
	if len(data) > 0 && data[0] == '{' {
		var wrapper struct {
			Types []jsonEntry `json:"types"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, errors.ParseFailed("type registry", err)
		}
		entries = wrapper.Types
	} else if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.ParseFailed("type registry", err)
	}

	return fromJSON(entries)
}

// UnmarshalJSON implements json.Unmarshaler for the bare array form.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	parsed, err := fromJSON(entries)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// fromJSON converts decoded registry entries into a Registry.
func fromJSON(entries []jsonEntry) (*Registry, error) {
	types := make([]*Type, 0, len(entries))
	for _, e := range entries {
		def, err := e.Type.Def.toDef()
		if err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindSchema).
				TypeID(uint32(e.ID)).
				Cause(err).
				Detail("invalid type definition").
				Build()
		}
		t := &Type{
			ID:   e.ID,
			Path: e.Type.Path,
			Docs: e.Type.Docs,
			Def:  def,
		}
		for _, p := range e.Type.Params {
			t.Params = append(t.Params, TypeParam{Name: p.Name, Type: p.Type})
		}
		types = append(types, t)
	}
	return New(types...)
}

type jsonEntry struct {
	Type jsonType `json:"type"`
	ID   TypeID   `json:"id"`
}

type jsonType struct {
	Def    jsonDef     `json:"def"`
	Path   []string    `json:"path"`
	Params []jsonParam `json:"params"`
	Docs   []string    `json:"docs"`
}

type jsonParam struct {
	Type *TypeID `json:"type"`
	Name string  `json:"name"`
}

type jsonField struct {
	Name     string   `json:"name"`
	TypeName string   `json:"typeName"`
	Docs     []string `json:"docs"`
	Type     TypeID   `json:"type"`
}

type jsonVariant struct {
	Name   string      `json:"name"`
	Fields []jsonField `json:"fields"`
	Docs   []string    `json:"docs"`
	Index  uint8       `json:"index"`
}

type jsonDef struct {
	Primitive *string `json:"primitive"`
	Composite *struct {
		Fields []jsonField `json:"fields"`
	} `json:"composite"`
	Variant *struct {
		Variants []jsonVariant `json:"variants"`
	} `json:"variant"`
	Sequence *struct {
		Type TypeID `json:"type"`
	} `json:"sequence"`
	Array *struct {
		Len  uint32 `json:"len"`
		Type TypeID `json:"type"`
	} `json:"array"`
	Tuple   *[]TypeID `json:"tuple"`
	Compact *struct {
		Type TypeID `json:"type"`
	} `json:"compact"`
	BitSequence *struct {
		BitStoreType TypeID `json:"bit_store_type"`
		BitOrderType TypeID `json:"bit_order_type"`
	} `json:"bitsequence"`
}

func (d jsonDef) toDef() (Def, error) {
	switch {
	case d.Primitive != nil:
		kind, ok := ParsePrimitiveKind(*d.Primitive)
		if !ok {
			return nil, errors.Unsupported(errors.PhaseParse, nil, "primitive "+*d.Primitive)
		}
		return Primitive{Prim: kind}, nil
	case d.Composite != nil:
		return Composite{Fields: toFields(d.Composite.Fields)}, nil
	case d.Variant != nil:
		cases := make([]VariantCase, len(d.Variant.Variants))
		for i, v := range d.Variant.Variants {
			cases[i] = VariantCase{
				Name:   v.Name,
				Index:  v.Index,
				Fields: toFields(v.Fields),
				Docs:   v.Docs,
			}
		}
		return Variant{Variants: cases}, nil
	case d.Sequence != nil:
		return Sequence{Elem: d.Sequence.Type}, nil
	case d.Array != nil:
		return Array{Elem: d.Array.Type, Len: d.Array.Len}, nil
	case d.Tuple != nil:
		return Tuple{Elems: *d.Tuple}, nil
	case d.Compact != nil:
		return Compact{Inner: d.Compact.Type}, nil
	case d.BitSequence != nil:
		return BitSequence{StoreType: d.BitSequence.BitStoreType, OrderType: d.BitSequence.BitOrderType}, nil
	}
	return nil, errors.InvalidData(errors.PhaseParse, nil, "empty or unknown type definition")
}

func toFields(in []jsonField) []Field {
	if len(in) == 0 {
		return nil
	}
	out := make([]Field, len(in))
	for i, f := range in {
		out[i] = Field{Name: f.Name, TypeName: f.TypeName, Type: f.Type, Docs: f.Docs}
	}
	return out
}
