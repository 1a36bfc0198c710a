package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/contract"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/transcoder"
)

func newInteractiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Pick a message, type its arguments and see the call data",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return fmt.Errorf("interactive mode requires a terminal")
			}
			source := a.cfg.Metadata
			if source == "" {
				source = a.cfg.Address
			}
			ctx := cmd.Context()
			m := newInteractiveModel(source, func() (*contract.Contract, error) {
				return a.contract(ctx)
			})
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

type interactiveModel struct {
	err      error
	load     func() (*contract.Contract, error)
	contract *contract.Contract
	source   string
	result   string
	entries  []entry
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

// entry is a constructor or message offered for encoding.
type entry struct {
	name        string
	signature   string
	params      []paramInfo
	constructor bool
}

type paramInfo struct {
	name    string
	typeStr string
}

type modelState int

const (
	stateSelectEntry modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(source string, load func() (*contract.Contract, error)) *interactiveModel {
	return &interactiveModel{
		source: source,
		load:   load,
		state:  stateSelectEntry,
	}
}

type loadedMsg struct {
	err      error
	contract *contract.Contract
	entries  []entry
}

type encodedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadContract
}

func (m *interactiveModel) loadContract() tea.Msg {
	c, err := m.load()
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{contract: c, entries: entries(c)}
}

func entries(c *contract.Contract) []entry {
	reg := c.Registry()
	params := func(args []metadata.Arg) []paramInfo {
		ps := make([]paramInfo, len(args))
		for i, a := range args {
			ps[i] = paramInfo{name: a.Label, typeStr: reg.DisplayName(a.Type)}
		}
		return ps
	}

	var list []entry
	for _, ctor := range c.Constructors() {
		list = append(list, entry{
			name:        ctor.Label,
			signature:   c.ConstructorSignature(ctor),
			params:      params(ctor.Args),
			constructor: true,
		})
	}
	for _, msg := range c.Messages() {
		list = append(list, entry{
			name:      msg.Label,
			signature: c.MessageSignature(msg),
			params:    params(msg.Args),
		})
	}
	return list
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectEntry && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectEntry && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectEntry:
				if len(m.entries) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.encode()
				}
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.encode()

			case stateShowResult:
				m.reset()
				return m, nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			if m.state != stateSelectEntry {
				m.reset()
				return m, nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.contract = msg.contract
		m.entries = msg.entries

	case encodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectEntry
	m.inputs = nil
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) prepareInputs() {
	e := m.entries[m.selected]
	m.inputs = make([]textinput.Model, len(e.params))
	for i, p := range e.params {
		ti := textinput.New()
		ti.Placeholder = p.typeStr
		ti.Prompt = p.name + ": "
		ti.Width = 60
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

// encode captures the current inputs and returns a command producing the call data.
func (m *interactiveModel) encode() tea.Cmd {
	c := m.contract
	e := m.entries[m.selected]
	args := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = input.Value()
	}
	return func() tea.Msg {
		if c == nil {
			return encodedMsg{err: fmt.Errorf("metadata not loaded")}
		}
		var data []byte
		var err error
		if e.constructor {
			data, err = c.EncodeConstructor(e.name, args)
		} else {
			data, err = c.EncodeCall(e.name, args)
		}
		if err != nil {
			return encodedMsg{err: err}
		}
		return encodedMsg{result: transcoder.HexString(data)}
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.contract == nil {
		return "Loading metadata..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.contract.Name()))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectEntry:
		b.WriteString("Select a constructor or message:\n\n")
		for i, e := range m.entries {
			line := m.formatEntry(e)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter encode • q quit"))

	case stateInputArgs:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Encoding %s\n\n", funcStyle.Render(e.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(e.params[i].typeStr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter encode • esc back"))

	case stateShowResult:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Call data for %s:\n\n", funcStyle.Render(e.signature)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e entry) string {
	kind := "message"
	if e.constructor {
		kind = "constructor"
	}
	return helpStyle.Render(fmt.Sprintf("%-11s ", kind)) + funcStyle.Render(e.signature)
}
