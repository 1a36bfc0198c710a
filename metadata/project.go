package metadata

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry"
)

// DefaultConstructorName is preferred by DefaultConstructor.
const DefaultConstructorName = "new"

// Selector is the 4-byte prefix identifying a message or constructor in call data.
type Selector [4]byte

// ParseSelector parses a 0x-prefixed 4-byte hex selector.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return sel, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Value(s).
			Cause(err).
			Detail("invalid selector").
			Build()
	}
	if len(raw) != len(sel) {
		return sel, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Value(s).
			Detail("selector must be %d bytes, got %d", len(sel), len(raw)).
			Build()
	}
	copy(sel[:], raw)
	return sel, nil
}

func (s Selector) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Arg is a declared argument of a message or constructor.
type Arg struct {
	Label       string
	DisplayName []string
	Type        registry.TypeID
}

// Message is a callable contract message.
type Message struct {
	ReturnType        *registry.TypeID
	Label             string
	Args              []Arg
	Docs              []string
	ReturnDisplayName []string
	Selector          Selector
	Mutates           bool
	Payable           bool
	Default           bool
}

// Constructor instantiates a contract.
type Constructor struct {
	ReturnType *registry.TypeID
	Label      string
	Args       []Arg
	Docs       []string
	Selector   Selector
	Payable    bool
	Default    bool
}

// Source describes how the contract was built.
type Source struct {
	Hash     string
	Language string
	Compiler string
	Wasm     []byte
}

// Info is the contract section of the metadata.
type Info struct {
	Name    string
	Version string
	Authors []string
}

// Project is a parsed metadata document. It is immutable after Parse.
type Project struct {
	Registry     *registry.Registry
	Source       Source
	Contract     Info
	Version      string
	Constructors []*Constructor
	Messages     []*Message
	raw          []byte
}

// Constructor returns the constructor with the given label.
func (p *Project) Constructor(name string) (*Constructor, error) {
	for _, c := range p.Constructors {
		if c.Label == name {
			return c, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseResolve, "constructor", name)
}

// DefaultConstructor returns the "new" constructor, else the first one.
func (p *Project) DefaultConstructor() (*Constructor, error) {
	if c, err := p.Constructor(DefaultConstructorName); err == nil {
		return c, nil
	}
	if len(p.Constructors) == 0 {
		return nil, errors.New(errors.PhaseResolve, errors.KindNotFound).
			Detail("no constructors in metadata").
			Build()
	}
	return p.Constructors[0], nil
}

// Message returns the message with the given label.
func (p *Project) Message(name string) (*Message, error) {
	for _, m := range p.Messages {
		if m.Label == name {
			return m, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseResolve, "message", name)
}

// MessageBySelector returns the message with the given selector.
func (p *Project) MessageBySelector(sel Selector) (*Message, error) {
	for _, m := range p.Messages {
		if m.Selector == sel {
			return m, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseResolve, "message", sel.String())
}

func (p *Project) ConstructorNames() []string {
	names := make([]string, len(p.Constructors))
	for i, c := range p.Constructors {
		names[i] = c.Label
	}
	return names
}

func (p *Project) MessageNames() []string {
	names := make([]string, len(p.Messages))
	for i, m := range p.Messages {
		names[i] = m.Label
	}
	return names
}

// ContractName returns the contract name, or "unknown" if the metadata has none.
func (p *Project) ContractName() string {
	if p.Contract.Name == "" {
		return "unknown"
	}
	return p.Contract.Name
}

// MetadataVersion returns the metadata format version, e.g. "4".
func (p *Project) MetadataVersion() string {
	return p.Version
}

// IsBundle reports whether the document embeds the contract Wasm.
func (p *Project) IsBundle() bool {
	return len(p.Source.Wasm) > 0
}

// Raw returns the document the project was parsed from.
func (p *Project) Raw() []byte {
	return p.raw
}

// Validate checks that the project has constructors, messages and a non-empty
// registry, and that every type id it references resolves.
func (p *Project) Validate() error {
	if len(p.Constructors) == 0 {
		return errors.Schema(errors.PhaseValidate, nil, "metadata must have at least one constructor")
	}
	if len(p.Messages) == 0 {
		return errors.Schema(errors.PhaseValidate, nil, "metadata must have at least one message")
	}
	if p.Registry == nil || p.Registry.Len() == 0 {
		return errors.Schema(errors.PhaseValidate, nil, "metadata type registry is empty")
	}

	var missing []errors.MissingType
	if err := p.Registry.Validate(); err != nil {
		mt, ok := err.(*errors.MissingTypesError)
		if !ok {
			return err
		}
		missing = append(missing, mt.Types...)
	}

	check := func(referrer string, id registry.TypeID) {
		if _, err := p.Registry.Resolve(id); err != nil {
			missing = append(missing, errors.MissingType{Referrer: referrer, ID: uint32(id)})
		}
	}
	for _, c := range p.Constructors {
		ref := fmt.Sprintf("constructor %s", c.Label)
		for _, a := range c.Args {
			check(ref, a.Type)
		}
		if c.ReturnType != nil {
			check(ref, *c.ReturnType)
		}
	}
	for _, m := range p.Messages {
		ref := fmt.Sprintf("message %s", m.Label)
		for _, a := range m.Args {
			check(ref, a.Type)
		}
		if m.ReturnType != nil {
			check(ref, *m.ReturnType)
		}
	}

	if len(missing) > 0 {
		return errors.NewMissingTypesError(missing)
	}
	return nil
}
