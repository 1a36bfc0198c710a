package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/contract"
	"github.com/wippyai/scale-codec/engine"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show constructors, messages and Wasm entry points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.contract(cmd.Context())
			if err != nil {
				return err
			}
			p := newPrinter(out(cmd))
			printContract(p, c)

			if !c.Project().IsBundle() {
				return nil
			}
			info, err := c.VerifyCode(cmd.Context())
			if info == nil {
				return err
			}
			printModule(p, info, err)
			return nil
		},
	}
}

func printContract(p *printer, c *contract.Contract) {
	proj := c.Project()
	p.printf("%s %s", p.render(titleStyle, c.Name()), proj.Contract.Version)
	if v := proj.MetadataVersion(); v != "" {
		p.printf(" (metadata v%s)", v)
	}
	p.println()
	if len(proj.Contract.Authors) > 0 {
		p.printf("authors:  %s\n", strings.Join(proj.Contract.Authors, ", "))
	}
	if src := proj.Source; src.Language != "" || src.Compiler != "" {
		p.printf("source:   %s %s\n", src.Language, src.Compiler)
	}
	if proj.Source.Hash != "" {
		p.printf("hash:     %s\n", proj.Source.Hash)
	}

	p.println()
	p.println("Constructors:")
	for _, ctor := range c.Constructors() {
		var flags []string
		if ctor.Default {
			flags = append(flags, "default")
		}
		if ctor.Payable {
			flags = append(flags, "payable")
		}
		printEntry(p, ctor.Selector.String(), c.ConstructorSignature(ctor), flags)
	}

	p.println()
	p.println("Messages:")
	for _, m := range c.Messages() {
		var flags []string
		if m.Mutates {
			flags = append(flags, "mutates")
		}
		if m.Payable {
			flags = append(flags, "payable")
		}
		if m.Default {
			flags = append(flags, "default")
		}
		printEntry(p, m.Selector.String(), c.MessageSignature(m), flags)
	}
}

func printEntry(p *printer, selector, signature string, flags []string) {
	p.printf("  %s  %s", selector, p.render(funcStyle, signature))
	if len(flags) > 0 {
		p.printf("  %s", p.render(helpStyle, "["+strings.Join(flags, ", ")+"]"))
	}
	p.println()
}

func printModule(p *printer, info *engine.ModuleInfo, verifyErr error) {
	p.println()
	p.printf("Wasm: %d bytes, code hash %s\n", info.Size, info.CodeHashHex())
	p.printf("  entry points: call=%t deploy=%t\n", info.HasCall(), info.HasDeploy())
	for _, f := range info.Exports {
		p.printf("  export %s%s\n", f.Name, p.render(typeStyle, f.Signature()))
	}
	for _, mod := range info.ImportModules() {
		for _, f := range info.ImportsOf(mod) {
			p.printf("  import %s.%s%s\n", mod, f.Name, p.render(typeStyle, f.Signature()))
		}
	}
	if mem := info.Memory; mem != nil {
		p.printf("  memory %s.%s min=%d", mem.Module, mem.Name, mem.Min)
		if mem.Max != nil {
			p.printf(" max=%d", *mem.Max)
		}
		p.println()
	}
	if verifyErr != nil {
		p.println(p.render(errorStyle, "  verify: "+verifyErr.Error()))
	} else {
		p.println(p.render(resultStyle, "  verified"))
	}
}
