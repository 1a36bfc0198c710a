package scalecodec

import "github.com/wippyai/scale-codec/registry"

// Resolver looks up type nodes by id. Implementations must be safe for concurrent
// reads; the codec never mutates what they return.
type Resolver interface {
	Resolve(id registry.TypeID) (*registry.Type, error)
}

var _ Resolver = (*registry.Registry)(nil)
