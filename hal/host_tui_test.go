//go:build !tinygo

package hal

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUIKeysDriveInputs(t *testing.T) {
	logs := newLogRing(tuiLogLines)
	h := NewSim(NewVirtualTimer(), logs)
	m := newTUIModel(h, logs)

	m.Update(runes("r"))
	if !h.reset.Pressed() {
		t.Fatal("expected reset pressed after r")
	}
	m.Update(tuiFrameMsg{})
	if h.reset.Pressed() {
		t.Fatal("expected reset released on next frame")
	}

	m.Update(runes("v"))
	if !h.mode.Pressed() {
		t.Fatal("expected mode held after v")
	}
	m.Update(runes("v"))
	if h.mode.Pressed() {
		t.Fatal("expected mode released after second v")
	}

	m.Update(runes("+"))
	m.Update(runes("+"))
	m.Update(runes("-"))
	if v, _ := h.pot.Read(); v < 0.049 || v > 0.051 {
		t.Fatalf("pot = %v, want 0.05", v)
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestTUIViewShowsPanelAndLogs(t *testing.T) {
	logs := newLogRing(tuiLogLines)
	h := NewSim(NewVirtualTimer(), logs)
	h.panel.Latch(0xC0, 0xF1)
	h.panel.Latch(0x24, 0xF2)
	h.panel.Latch(0xC0, 0xF4)
	h.panel.Latch(0xF9, 0xF8)
	h.logger.WriteLineString("input: reset")

	view := newTUIModel(h, logs).View()
	for _, want := range []string{"02.01", "S1 up", "input: reset", "q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestLogRingKeepsNewestLines(t *testing.T) {
	r := newLogRing(2)
	r.Write([]byte("one\ntwo\nthr"))
	r.Write([]byte("ee\n"))
	got := r.Lines()
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Fatalf("Lines = %q", got)
	}
}

func TestTUIModeKeyIsToggle(t *testing.T) {
	h := NewSim(NewVirtualTimer(), io.Discard)
	m := newTUIModel(h, newLogRing(tuiLogLines))
	if help := m.helpLine(); !strings.Contains(help, "v mode (toggle") {
		t.Fatalf("help line does not describe the mode toggle: %q", help)
	}

	m.Update(runes("v"))
	if !h.mode.Pressed() {
		t.Fatal("first v should hold the mode button")
	}
	m.Update(runes("v"))
	if h.mode.Pressed() {
		t.Fatal("second v should release the mode button")
	}
}
