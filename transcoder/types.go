package transcoder

import (
	"strconv"

	scalecodec "github.com/wippyai/scale-codec"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry"
)

type Resolver = scalecodec.Resolver

type TypeID = registry.TypeID

// Param is one declared argument of a message or constructor.
type Param struct {
	Name string
	Type TypeID
}

// displayNamer is implemented by resolvers that can render readable type names.
type displayNamer interface {
	DisplayName(id registry.TypeID) string
}

// resolve looks up id. A resolver error is kept as the cause; a nil type is
// reported as not found and a type without a definition as a schema error.
func resolve(r Resolver, id TypeID, phase errors.Phase, path []string) (*registry.Type, error) {
	t, err := r.Resolve(id)
	if err != nil || t == nil {
		nf := errors.TypeNotFound(phase, path, uint32(id))
		nf.Cause = err
		return nil, nf
	}
	if t.Def == nil {
		return nil, errors.New(phase, errors.KindSchema).
			Path(path...).
			TypeID(uint32(id)).
			Detail("type %d has no definition", id).
			Build()
	}
	return t, nil
}

// typeName renders t for error messages.
func typeName(r Resolver, t *registry.Type) string {
	if dn, ok := r.(displayNamer); ok {
		return dn.DisplayName(t.ID)
	}
	if name := t.Name(); name != "" {
		return name
	}
	if p, ok := t.Def.(registry.Primitive); ok {
		return p.Prim.String()
	}
	return "#" + strconv.FormatUint(uint64(t.ID), 10)
}

// appendPath returns a new path with seg appended. The parent slice is never shared.
func appendPath(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}

func indexSeg(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
