package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/scale-codec/errors"
)

// Contract entry point export names
const (
	ExportCall   = "call"
	ExportDeploy = "deploy"
)

// WazeroEngine compiles contract Wasm for inspection.
type WazeroEngine struct {
	runtime wazero.Runtime
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages caps the memory a module may declare, in 64KB pages.
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) (*WazeroEngine, error) {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &WazeroEngine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// Close releases the runtime and everything compiled with it.
func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Inspect compiles wasm and describes its exports and imports.
func (e *WazeroEngine) Inspect(ctx context.Context, wasm []byte) (*ModuleInfo, error) {
	if len(wasm) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty wasm module")
	}

	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Cause(err).
			Detail("compile wasm module").
			Build()
	}
	defer compiled.Close(ctx)

	info := &ModuleInfo{
		CodeHash: CodeHash(wasm),
		Size:     len(wasm),
	}

	for name, def := range compiled.ExportedFunctions() {
		info.Exports = append(info.Exports, toFunctionInfo("", name, def))
	}
	sort.Slice(info.Exports, func(i, j int) bool {
		return info.Exports[i].Name < info.Exports[j].Name
	})

	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		info.Imports = append(info.Imports, toFunctionInfo(module, name, def))
	}

	for _, def := range compiled.ImportedMemories() {
		module, name, _ := def.Import()
		mem := &MemoryInfo{Module: module, Name: name, Min: def.Min()}
		if maxPages, ok := def.Max(); ok {
			mem.Max = &maxPages
		}
		info.Memory = mem
	}

	Logger().Debug("inspected wasm module",
		zap.Int("bytes", len(wasm)),
		zap.Int("exports", len(info.Exports)),
		zap.Int("imports", len(info.Imports)))

	return info, nil
}

// Inspect compiles wasm on a temporary engine.
func Inspect(ctx context.Context, wasm []byte) (*ModuleInfo, error) {
	e, err := NewWazeroEngine(ctx)
	if err != nil {
		return nil, err
	}
	defer e.Close(ctx)
	return e.Inspect(ctx, wasm)
}

// CodeHash returns the blake2b-256 digest of wasm.
func CodeHash(wasm []byte) [32]byte {
	return blake2b.Sum256(wasm)
}

func toFunctionInfo(module, name string, def api.FunctionDefinition) FunctionInfo {
	return FunctionInfo{
		Module:  module,
		Name:    name,
		Params:  valueTypeNames(def.ParamTypes()),
		Results: valueTypeNames(def.ResultTypes()),
	}
}

func valueTypeNames(types []api.ValueType) []string {
	if len(types) == 0 {
		return nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = api.ValueTypeName(t)
	}
	return names
}

// signature renders params and results as "(i32, i32) -> i64".
func signature(params, results []string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(strings.Join(params, ", "))
	b.WriteByte(')')
	if len(results) > 0 {
		b.WriteString(" -> ")
		b.WriteString(strings.Join(results, ", "))
	}
	return b.String()
}
