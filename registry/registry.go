package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/scale-codec/errors"
)

// displayDepth bounds DisplayName recursion on cyclic graphs.
const displayDepth = 8

// Registry maps type ids to type nodes. It is immutable after construction.
type Registry struct {
	types map[TypeID]*Type
	order []TypeID
}

// New builds a registry. Duplicate ids and nil definitions are schema errors.
func New(types ...*Type) (*Registry, error) {
	r := &Registry{
		types: make(map[TypeID]*Type, len(types)),
		order: make([]TypeID, 0, len(types)),
	}
	for _, t := range types {
		if t == nil || t.Def == nil {
			return nil, errors.New(errors.PhaseValidate, errors.KindSchema).
				Detail("type without definition").
				Build()
		}
		if _, dup := r.types[t.ID]; dup {
			return nil, errors.New(errors.PhaseValidate, errors.KindSchema).
				TypeID(uint32(t.ID)).
				Detail("duplicate type id %d", t.ID).
				Build()
		}
		r.types[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return r, nil
}

// Resolve returns the type with the given id
func (r *Registry) Resolve(id TypeID) (*Type, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, errors.TypeNotFound(errors.PhaseResolve, nil, uint32(id))
	}
	return t, nil
}

// Len returns the number of types
func (r *Registry) Len() int {
	return len(r.types)
}

// Types returns all types ordered by id
func (r *Registry) Types() []*Type {
	out := make([]*Type, len(r.order))
	for i, id := range r.order {
		out[i] = r.types[id]
	}
	return out
}

// Validate reports every referenced type id that the registry does not define.
func (r *Registry) Validate() error {
	var missing []errors.MissingType
	for _, id := range r.order {
		t := r.types[id]
		refs := t.Def.refs()
		for _, p := range t.Params {
			if p.Type != nil {
				refs = append(refs, *p.Type)
			}
		}
		seen := make(map[TypeID]bool, len(refs))
		for _, ref := range refs {
			if _, ok := r.types[ref]; ok || seen[ref] {
				continue
			}
			seen[ref] = true
			missing = append(missing, errors.MissingType{
				Referrer: referrer(t),
				ID:       uint32(ref),
			})
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingTypesError(missing)
	}
	return nil
}

func referrer(t *Type) string {
	if name := t.Name(); name != "" {
		return fmt.Sprintf("#%d %s", t.ID, name)
	}
	return fmt.Sprintf("#%d %s", t.ID, t.Def.Kind())
}

// DisplayName renders a Rust-like name for the type, e.g. "Option<u32>",
// "Vec<u8>", "[u8; 32]" or "(bool, u32)". Unknown ids render as "#id".
func (r *Registry) DisplayName(id TypeID) string {
	return r.displayName(id, 0)
}

func (r *Registry) displayName(id TypeID, depth int) string {
	t, ok := r.types[id]
	if !ok {
		return "#" + strconv.FormatUint(uint64(id), 10)
	}
	if depth > displayDepth {
		return "…"
	}

	if name := t.Name(); name != "" {
		var args []string
		for _, p := range t.Params {
			if p.Type != nil {
				args = append(args, r.displayName(*p.Type, depth+1))
			}
		}
		if len(args) == 0 {
			return name
		}
		return name + "<" + strings.Join(args, ", ") + ">"
	}

	switch d := t.Def.(type) {
	case Primitive:
		return d.Prim.String()
	case Sequence:
		return "Vec<" + r.displayName(d.Elem, depth+1) + ">"
	case Array:
		return fmt.Sprintf("[%s; %d]", r.displayName(d.Elem, depth+1), d.Len)
	case Tuple:
		elems := make([]string, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = r.displayName(e, depth+1)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case Compact:
		return "Compact<" + r.displayName(d.Inner, depth+1) + ">"
	case BitSequence:
		return "BitVec"
	default:
		return t.Def.Kind().String()
	}
}
