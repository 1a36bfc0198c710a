package contract

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/engine"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/transcoder"
)

type Contract struct {
	project *metadata.Project
	encoder *transcoder.Encoder
	decoder *transcoder.Decoder
}

// New binds a validated project to an encoder and decoder.
func New(p *metadata.Project, opts ...transcoder.Option) (*Contract, error) {
	if p == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "nil metadata project")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Contract{
		project: p,
		encoder: transcoder.NewEncoder(p.Registry, opts...),
		decoder: transcoder.NewDecoder(p.Registry, opts...),
	}, nil
}

// Load reads a .json metadata file or .contract bundle.
func Load(ctx context.Context, path string, opts ...transcoder.Option) (*Contract, error) {
	loader, err := metadata.NewLoader(metadata.WithCacheSize(1))
	if err != nil {
		return nil, err
	}
	p, err := loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return New(p, opts...)
}

func (c *Contract) Project() *metadata.Project {
	return c.project
}

func (c *Contract) Registry() *registry.Registry {
	return c.project.Registry
}

func (c *Contract) Name() string {
	return c.project.ContractName()
}

func (c *Contract) Messages() []*metadata.Message {
	return c.project.Messages
}

func (c *Contract) Constructors() []*metadata.Constructor {
	return c.project.Constructors
}

// EncodeCall returns the selector of message followed by its encoded arguments.
func (c *Contract) EncodeCall(message string, args []string) ([]byte, error) {
	m, err := c.project.Message(message)
	if err != nil {
		return nil, err
	}
	data, err := c.encode(m.Selector, m.Args, args, true)
	if err != nil {
		return nil, err
	}
	Logger().Debug("encoded call",
		zap.String("message", m.Label),
		zap.Stringer("selector", m.Selector),
		zap.Int("bytes", len(data)))
	return data, nil
}

// EncodeArgs returns the encoded arguments of message without the selector.
func (c *Contract) EncodeArgs(message string, args []string) ([]byte, error) {
	m, err := c.project.Message(message)
	if err != nil {
		return nil, err
	}
	return c.encode(m.Selector, m.Args, args, false)
}

// EncodeConstructor returns the selector of the named constructor followed by its
// encoded arguments. An empty name selects the default constructor.
func (c *Contract) EncodeConstructor(name string, args []string) ([]byte, error) {
	ctor, err := c.constructor(name)
	if err != nil {
		return nil, err
	}
	return c.encode(ctor.Selector, ctor.Args, args, true)
}

// EncodeConstructorArgs is EncodeConstructor without the selector.
func (c *Contract) EncodeConstructorArgs(name string, args []string) ([]byte, error) {
	ctor, err := c.constructor(name)
	if err != nil {
		return nil, err
	}
	return c.encode(ctor.Selector, ctor.Args, args, false)
}

// DecodeReturn decodes the bytes returned by message. Messages without a return
// type decode to nil.
func (c *Contract) DecodeReturn(message string, data []byte) (any, error) {
	m, err := c.project.Message(message)
	if err != nil {
		return nil, err
	}
	return c.decoder.DecodeResult(data, m.ReturnType)
}

// EncodeValue encodes one value against a type id of the contract's registry.
func (c *Contract) EncodeValue(text string, id registry.TypeID) ([]byte, error) {
	return c.encoder.Encode(text, id)
}

// DecodeValue decodes data against a type id of the contract's registry.
func (c *Contract) DecodeValue(data []byte, id registry.TypeID) (any, error) {
	return c.decoder.Decode(data, id)
}

// Inspect describes the Wasm blob of a bundle.
func (c *Contract) Inspect(ctx context.Context) (*engine.ModuleInfo, error) {
	if !c.project.IsBundle() {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Detail("metadata for %s carries no wasm; load the .contract bundle", c.Name()).
			Build()
	}
	return engine.Inspect(ctx, c.project.Source.Wasm)
}

// VerifyCode inspects the bundle's Wasm, checks its entry points, and compares
// its hash with source.hash.
func (c *Contract) VerifyCode(ctx context.Context) (*engine.ModuleInfo, error) {
	info, err := c.Inspect(ctx)
	if err != nil {
		return nil, err
	}
	if err := info.Validate(); err != nil {
		return info, err
	}
	if c.project.Source.Hash != "" {
		if err := info.VerifyCodeHash(c.project.Source.Hash); err != nil {
			return info, err
		}
	}
	return info, nil
}

func (c *Contract) constructor(name string) (*metadata.Constructor, error) {
	if name == "" {
		return c.project.DefaultConstructor()
	}
	return c.project.Constructor(name)
}

func (c *Contract) encode(sel metadata.Selector, declared []metadata.Arg, args []string, withSelector bool) ([]byte, error) {
	encoded, err := c.encoder.EncodeArgs(Params(declared), args)
	if err != nil {
		return nil, err
	}
	if !withSelector {
		return encoded, nil
	}
	out := make([]byte, 0, len(sel)+len(encoded))
	out = append(out, sel[:]...)
	return append(out, encoded...), nil
}

// Params converts declared arguments into transcoder parameters.
func Params(args []metadata.Arg) []transcoder.Param {
	params := make([]transcoder.Param, len(args))
	for i, a := range args {
		params[i] = transcoder.Param{Name: a.Label, Type: a.Type}
	}
	return params
}
