package metadata

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry"
)

// Parse parses a metadata document or .contract bundle.
func Parse(data []byte) (*Project, error) {
	var doc jsonProject
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseFailed("metadata JSON", err)
	}
	if doc.Spec == nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("metadata has no spec section").
			Build()
	}
	if len(doc.Types) == 0 {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("metadata has no types section").
			Build()
	}

	reg, err := registry.Parse(doc.Types)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Registry: reg,
		Version:  parseVersion(doc.Version),
		raw:      data,
	}

	if doc.Contract != nil {
		p.Contract = Info{
			Name:    doc.Contract.Name,
			Version: doc.Contract.Version,
			Authors: doc.Contract.Authors,
		}
	}

	if doc.Source != nil {
		p.Source = Source{
			Hash:     doc.Source.Hash,
			Language: doc.Source.Language,
			Compiler: doc.Source.Compiler,
		}
		if doc.Source.Wasm != "" {
			wasm, err := hex.DecodeString(strings.TrimPrefix(doc.Source.Wasm, "0x"))
			if err != nil {
				return nil, errors.ParseFailed("source.wasm", err)
			}
			p.Source.Wasm = wasm
		}
	}

	for _, c := range doc.Spec.Constructors {
		sel, err := ParseSelector(c.Selector)
		if err != nil {
			return nil, wrapEntry("constructor", c.Label, err)
		}
		p.Constructors = append(p.Constructors, &Constructor{
			Label:      c.Label,
			Selector:   sel,
			Args:       toArgs(c.Args),
			ReturnType: c.ReturnType.typeID(),
			Docs:       c.Docs,
			Payable:    c.Payable,
			Default:    c.Default,
		})
	}

	for _, m := range doc.Spec.Messages {
		sel, err := ParseSelector(m.Selector)
		if err != nil {
			return nil, wrapEntry("message", m.Label, err)
		}
		msg := &Message{
			Label:      m.Label,
			Selector:   sel,
			Args:       toArgs(m.Args),
			ReturnType: m.ReturnType.typeID(),
			Docs:       m.Docs,
			Mutates:    m.Mutates,
			Payable:    m.Payable,
			Default:    m.Default,
		}
		if m.ReturnType != nil {
			msg.ReturnDisplayName = m.ReturnType.DisplayName
		}
		p.Messages = append(p.Messages, msg)
	}

	Logger().Debug("parsed metadata",
		zap.String("contract", p.ContractName()),
		zap.Int("types", reg.Len()),
		zap.Int("constructors", len(p.Constructors)),
		zap.Int("messages", len(p.Messages)))
	return p, nil
}

func wrapEntry(what, label string, err error) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Path(what, label).
		Cause(err).
		Detail("invalid %s %q", what, label).
		Build()
}

// parseVersion accepts "4", 4, or a legacy {"V3": ...} wrapper.
func parseVersion(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for k := range wrapped {
			if v, ok := strings.CutPrefix(k, "V"); ok {
				if _, err := strconv.Atoi(v); err == nil {
					return v
				}
			}
		}
	}
	return ""
}

func toArgs(in []jsonArg) []Arg {
	if len(in) == 0 {
		return nil
	}
	out := make([]Arg, len(in))
	for i, a := range in {
		out[i] = Arg{Label: a.Label, Type: a.Type.Type, DisplayName: a.Type.DisplayName}
	}
	return out
}

type jsonProject struct {
	Source   *jsonSource     `json:"source"`
	Contract *jsonContract   `json:"contract"`
	Spec     *jsonSpec       `json:"spec"`
	Types    json.RawMessage `json:"types"`
	Version  json.RawMessage `json:"version"`
}

type jsonSource struct {
	Hash     string `json:"hash"`
	Language string `json:"language"`
	Compiler string `json:"compiler"`
	Wasm     string `json:"wasm"`
}

type jsonContract struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Authors []string `json:"authors"`
}

type jsonSpec struct {
	Constructors []jsonConstructor `json:"constructors"`
	Messages     []jsonMessage     `json:"messages"`
}

type jsonTypeSpec struct {
	DisplayName []string        `json:"displayName"`
	Type        registry.TypeID `json:"type"`
}

func (t *jsonTypeSpec) typeID() *registry.TypeID {
	if t == nil {
		return nil
	}
	id := t.Type
	return &id
}

type jsonArg struct {
	Label string       `json:"label"`
	Type  jsonTypeSpec `json:"type"`
}

type jsonConstructor struct {
	ReturnType *jsonTypeSpec `json:"returnType"`
	Label      string        `json:"label"`
	Selector   string        `json:"selector"`
	Args       []jsonArg     `json:"args"`
	Docs       []string      `json:"docs"`
	Payable    bool          `json:"payable"`
	Default    bool          `json:"default"`
}

type jsonMessage struct {
	ReturnType *jsonTypeSpec `json:"returnType"`
	Label      string        `json:"label"`
	Selector   string        `json:"selector"`
	Args       []jsonArg     `json:"args"`
	Docs       []string      `json:"docs"`
	Mutates    bool          `json:"mutates"`
	Payable    bool          `json:"payable"`
	Default    bool          `json:"default"`
}
