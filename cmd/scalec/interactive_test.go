package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/scale-codec/contract"
)

func loadedModel(t *testing.T) *interactiveModel {
	t.Helper()
	m := newInteractiveModel(flipperJSON, func() (*contract.Contract, error) {
		return contract.Load(context.Background(), flipperJSON)
	})
	m.Update(m.Init()())
	if m.err != nil {
		t.Fatalf("load error: %v", m.err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key. The command returned by enter is run and its result fed back
// into the model; other commands only drive cursor blinking.
func press(m *interactiveModel, s string) {
	_, cmd := m.Update(key(s))
	if cmd == nil || s != "enter" {
		return
	}
	if msg, ok := cmd().(encodedMsg); ok {
		m.Update(msg)
	}
}

func TestInteractive_Entries(t *testing.T) {
	m := loadedModel(t)

	var names []string
	for _, e := range m.entries {
		names = append(names, e.name)
	}
	want := "new default flip get set_config transfer deposit"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("entries = %q, want %q", got, want)
	}
	if !m.entries[0].constructor || m.entries[2].constructor {
		t.Error("constructors should come first")
	}
	if m.entries[0].params[0].typeStr != "bool" {
		t.Errorf("param type = %q, want bool", m.entries[0].params[0].typeStr)
	}
	if !strings.Contains(m.View(), "flip() -> Result<(), LangError>") {
		t.Error("view should list message signatures")
	}
}

func TestInteractive_EncodeWithArgs(t *testing.T) {
	m := loadedModel(t)

	press(m, "enter")
	if m.state != stateInputArgs {
		t.Fatalf("state = %v, want input", m.state)
	}
	press(m, "true")
	press(m, "enter")

	if m.state != stateShowResult {
		t.Fatalf("state = %v, want result", m.state)
	}
	if m.err != nil {
		t.Fatalf("encode error: %v", m.err)
	}
	if m.result != "0x9bae9d5e01" {
		t.Errorf("result = %q, want 0x9bae9d5e01", m.result)
	}

	press(m, "enter")
	if m.state != stateSelectEntry || m.result != "" {
		t.Errorf("enter on result should return to selection")
	}
}

func TestInteractive_EncodeWithoutArgs(t *testing.T) {
	m := loadedModel(t)

	press(m, "down")
	press(m, "down")
	press(m, "enter")

	if m.state != stateShowResult {
		t.Fatalf("state = %v, want result", m.state)
	}
	if m.result != "0x633aa551" {
		t.Errorf("result = %q, want 0x633aa551", m.result)
	}
}

func TestInteractive_EncodeError(t *testing.T) {
	m := loadedModel(t)

	for range 6 {
		press(m, "down")
	}
	press(m, "enter")
	press(m, "lots")
	press(m, "enter")

	if m.state != stateShowResult {
		t.Fatalf("state = %v, want result", m.state)
	}
	if m.err == nil {
		t.Fatal("expected encode error for non-numeric amount")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view should show the error")
	}

	press(m, "esc")
	if m.state != stateSelectEntry || m.err != nil {
		t.Error("esc should reset to selection")
	}
}

func TestInteractive_TypingQDoesNotQuit(t *testing.T) {
	m := loadedModel(t)

	press(m, "enter")
	press(m, "q")
	if m.state != stateInputArgs {
		t.Fatalf("state = %v, want input", m.state)
	}
	if got := m.inputs[0].Value(); got != "q" {
		t.Errorf("input = %q, want q", got)
	}
}

func TestInteractive_LoadError(t *testing.T) {
	m := newInteractiveModel("missing.json", func() (*contract.Contract, error) {
		return contract.Load(context.Background(), "missing.json")
	})
	m.Update(m.Init()())
	if m.err == nil {
		t.Fatal("expected load error")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view should show the load error")
	}
}
