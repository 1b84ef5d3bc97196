package input

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var axisOutputs = []string{"move_x", "move_y", "look_x", "look_y"}

var buttonOutputs = []string{"jump", "fire"}

// Script is a Source driven by a tengo program. The program runs once per
// tick with the globals tick and seconds set, and reports state by assigning
// move_x, move_y, look_x, look_y (numbers) and jump, fire (bools). Outputs
// are reset to zero before every run.
type Script struct {
	compiled *tengo.Compiled
}

// NewScript compiles src.
func NewScript(src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	globals := map[string]any{"tick": 0, "seconds": 0.0}
	for _, name := range axisOutputs {
		globals[name] = 0.0
	}
	for _, name := range buttonOutputs {
		globals[name] = false
	}
	for name, v := range globals {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("declare script global %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile input script: %w", err)
	}
	return &Script{compiled: compiled}, nil
}

// LoadScript reads and compiles a script file.
func LoadScript(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	s, err := NewScript(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Next implements Source.
func (s *Script) Next(tick int, t float32) (Raw, error) {
	c := s.compiled
	if err := c.Set("tick", tick); err != nil {
		return Raw{}, fmt.Errorf("set tick: %w", err)
	}
	if err := c.Set("seconds", float64(t)); err != nil {
		return Raw{}, fmt.Errorf("set seconds: %w", err)
	}
	for _, name := range axisOutputs {
		if err := c.Set(name, 0.0); err != nil {
			return Raw{}, fmt.Errorf("reset %s: %w", name, err)
		}
	}
	for _, name := range buttonOutputs {
		if err := c.Set(name, false); err != nil {
			return Raw{}, fmt.Errorf("reset %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return Raw{}, fmt.Errorf("run input script at tick %d: %w", tick, err)
	}

	var axes [4]float32
	for i, name := range axisOutputs {
		v, err := s.number(name)
		if err != nil {
			return Raw{}, err
		}
		axes[i] = v
	}
	jump, err := s.flag("jump")
	if err != nil {
		return Raw{}, err
	}
	fire, err := s.flag("fire")
	if err != nil {
		return Raw{}, err
	}

	var raw Raw
	raw.Move.X, raw.Move.Y = axes[0], axes[1]
	raw.Look.X, raw.Look.Y = axes[2], axes[3]
	raw.Jump, raw.Fire = jump, fire
	return raw, nil
}

func (s *Script) number(name string) (float32, error) {
	switch v := s.compiled.Get(name).Value().(type) {
	case float64:
		return float32(v), nil
	case int64:
		return float32(v), nil
	default:
		return 0, fmt.Errorf("%w: %s is %T, want number", ErrScriptOutput, name, v)
	}
}

func (s *Script) flag(name string) (bool, error) {
	v, ok := s.compiled.Get(name).Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T, want bool", ErrScriptOutput, name, s.compiled.Get(name).Value())
	}
	return v, nil
}
