package contract

import (
	"strings"

	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/registry"
)

// MessageSignature renders a message like "set_config(config: Config, limit: Option<u32>) -> Result<(), LangError>".
func (c *Contract) MessageSignature(m *metadata.Message) string {
	return c.signature(m.Label, m.Args, m.ReturnType)
}

// ConstructorSignature renders a constructor the same way as MessageSignature.
func (c *Contract) ConstructorSignature(ctor *metadata.Constructor) string {
	return c.signature(ctor.Label, ctor.Args, ctor.ReturnType)
}

func (c *Contract) signature(label string, args []metadata.Arg, ret *registry.TypeID) string {
	reg := c.project.Registry
	var b strings.Builder
	b.WriteString(label)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Label)
		b.WriteString(": ")
		b.WriteString(reg.DisplayName(a.Type))
	}
	b.WriteByte(')')
	if ret != nil {
		b.WriteString(" -> ")
		b.WriteString(reg.DisplayName(*ret))
	}
	return b.String()
}
