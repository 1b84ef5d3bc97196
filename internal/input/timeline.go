package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fpsmove/pkg/math"
)

// Segment holds a device state over [From, Until) seconds.
type Segment struct {
	From  float32   `yaml:"from"`
	Until float32   `yaml:"until"`
	Move  math.Vec2 `yaml:"move"`
	Look  math.Vec2 `yaml:"look"`
	Jump  bool      `yaml:"jump"`
	Fire  bool      `yaml:"fire"`
}

// Timeline is a scripted input scenario. Overlapping segments add their
// axes and OR their buttons.
type Timeline struct {
	Name     string    `yaml:"name"`
	Segments []Segment `yaml:"segments"`
}

// ParseTimeline decodes and validates a yaml timeline.
func ParseTimeline(data []byte) (*Timeline, error) {
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &tl, nil
}

// LoadTimeline reads a yaml timeline from disk.
func LoadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}
	tl, err := ParseTimeline(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tl, nil
}

// Validate checks segment bounds.
func (tl *Timeline) Validate() error {
	for i, seg := range tl.Segments {
		if seg.From < 0 || seg.Until < seg.From {
			return fmt.Errorf("%w: segment %d spans [%v, %v)", ErrInvalidTimeline, i, seg.From, seg.Until)
		}
	}
	return nil
}

// Duration returns the end of the last segment.
func (tl *Timeline) Duration() float32 {
	var d float32
	for _, seg := range tl.Segments {
		d = max(d, seg.Until)
	}
	return d
}

// Next implements Source.
func (tl *Timeline) Next(_ int, t float32) (Raw, error) {
	var raw Raw
	for _, seg := range tl.Segments {
		if t < seg.From || t >= seg.Until {
			continue
		}
		raw.Move = raw.Move.Add(seg.Move)
		raw.Look = raw.Look.Add(seg.Look)
		raw.Jump = raw.Jump || seg.Jump
		raw.Fire = raw.Fire || seg.Fire
	}
	return raw, nil
}
