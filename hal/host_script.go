//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Script is a timed list of inputs for headless runs.
//
//	steps:
//	  - at: 1500ms
//	    press: reset
//	  - at: 1600ms
//	    release: reset
//	  - at: 2s
//	    pot: 0.5
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep is one input change. Exactly one of Press, Release and Pot is
// set.
type ScriptStep struct {
	At      time.Duration `yaml:"at"`
	Press   string        `yaml:"press,omitempty"`
	Release string        `yaml:"release,omitempty"`
	Pot     *float64      `yaml:"pot,omitempty"`
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return ParseScript(b)
}

// ParseScript parses a YAML script and orders its steps by time.
func ParseScript(b []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("script: step %d: %w", i, err)
		}
	}
	slices.SortStableFunc(s.Steps, func(a, b ScriptStep) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return &s, nil
}

func (st ScriptStep) validate() error {
	n := 0
	if st.Press != "" {
		n++
	}
	if st.Release != "" {
		n++
	}
	if st.Pot != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("want exactly one of press, release, pot")
	}
	if st.At < 0 {
		return fmt.Errorf("negative time %s", st.At)
	}
	for _, name := range []string{st.Press, st.Release} {
		switch name {
		case "", "reset", "mode", PinReset, PinMode:
		default:
			return fmt.Errorf("unknown button %q", name)
		}
	}
	if st.Pot != nil && (*st.Pot < 0 || *st.Pot > 1) {
		return fmt.Errorf("pot %v out of range [0,1]", *st.Pot)
	}
	return nil
}

func (st ScriptStep) apply(h *Sim) error {
	switch {
	case st.Press != "":
		return h.Press(st.Press)
	case st.Release != "":
		return h.Release(st.Release)
	case st.Pot != nil:
		h.SetPot(*st.Pot)
	}
	return nil
}

// scriptPlayer hands out steps as their time comes.
type scriptPlayer struct {
	steps []ScriptStep
	next  int
}

func newScriptPlayer(s *Script) *scriptPlayer {
	if s == nil {
		return &scriptPlayer{}
	}
	return &scriptPlayer{steps: s.Steps}
}

// due returns the steps at or before now that have not run yet.
func (p *scriptPlayer) due(now time.Duration) []ScriptStep {
	start := p.next
	for p.next < len(p.steps) && p.steps[p.next].At <= now {
		p.next++
	}
	return p.steps[start:p.next]
}

// done reports whether every step has been handed out.
func (p *scriptPlayer) done() bool {
	return p.next >= len(p.steps)
}

// until returns the time of the next step.
func (p *scriptPlayer) until() (time.Duration, bool) {
	if p.done() {
		return 0, false
	}
	return p.steps[p.next].At, true
}
