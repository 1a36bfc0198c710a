package engine

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/wippyai/scale-codec/errors"
)

// FunctionInfo describes an exported or imported function.
type FunctionInfo struct {
	Module  string // import module, "" for exports
	Name    string
	Params  []string
	Results []string
}

// Signature renders the function type, e.g. "(i32, i32) -> i64".
func (f FunctionInfo) Signature() string {
	return signature(f.Params, f.Results)
}

// MemoryInfo describes an imported linear memory. Min and Max are in pages.
type MemoryInfo struct {
	Max    *uint32
	Module string
	Name   string
	Min    uint32
}

// ModuleInfo is what Inspect learns about a module.
type ModuleInfo struct {
	Memory   *MemoryInfo
	Exports  []FunctionInfo
	Imports  []FunctionInfo
	Size     int
	CodeHash [32]byte
}

// HasExport reports whether a function with the given name is exported.
func (m *ModuleInfo) HasExport(name string) bool {
	for _, f := range m.Exports {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (m *ModuleInfo) HasCall() bool {
	return m.HasExport(ExportCall)
}

func (m *ModuleInfo) HasDeploy() bool {
	return m.HasExport(ExportDeploy)
}

// ImportModules returns the distinct import module names, sorted.
func (m *ModuleInfo) ImportModules() []string {
	seen := make(map[string]bool)
	var mods []string
	for _, f := range m.Imports {
		if !seen[f.Module] {
			seen[f.Module] = true
			mods = append(mods, f.Module)
		}
	}
	sort.Strings(mods)
	return mods
}

// ImportsOf returns the functions imported from module, in import order.
func (m *ModuleInfo) ImportsOf(module string) []FunctionInfo {
	var out []FunctionInfo
	for _, f := range m.Imports {
		if f.Module == module {
			out = append(out, f)
		}
	}
	return out
}

// CodeHashHex returns the code hash as 0x-prefixed hex.
func (m *ModuleInfo) CodeHashHex() string {
	return "0x" + hex.EncodeToString(m.CodeHash[:])
}

// VerifyCodeHash compares the code hash with a 0x-prefixed hex digest.
func (m *ModuleInfo) VerifyCodeHash(want string) error {
	if !strings.EqualFold(strings.TrimPrefix(want, "0x"), hex.EncodeToString(m.CodeHash[:])) {
		return errors.New(errors.PhaseValidate, errors.KindInvalidData).
			Value(want).
			Detail("code hash mismatch: metadata has %s, wasm hashes to %s", want, m.CodeHashHex()).
			Build()
	}
	return nil
}

// Validate fails if the contract entry points are not exported.
func (m *ModuleInfo) Validate() error {
	var missing []string
	if !m.HasDeploy() {
		missing = append(missing, ExportDeploy)
	}
	if !m.HasCall() {
		missing = append(missing, ExportCall)
	}
	if len(missing) > 0 {
		return errors.New(errors.PhaseValidate, errors.KindNotFound).
			Value(missing).
			Detail("missing contract exports: %s", strings.Join(missing, ", ")).
			Build()
	}
	return nil
}
