package input

import "errors"

var (
	// ErrScriptOutput is returned when an input script leaves an output global
	// with a value of the wrong type.
	ErrScriptOutput = errors.New("input: bad script output")
	// ErrInvalidTimeline is returned for timelines with inverted or negative ranges.
	ErrInvalidTimeline = errors.New("input: invalid timeline")
)

// Source reports device state for a tick. t is the simulated time in seconds
// at the start of the tick.
type Source interface {
	Next(tick int, t float32) (Raw, error)
}

// Feed yields ready-to-use snapshots, one per tick.
type Feed interface {
	Snapshot(tick int, t float32) (Snapshot, error)
}

// Constant is a Source that reports the same state every tick.
type Constant Raw

// Next implements Source.
func (c Constant) Next(int, float32) (Raw, error) {
	return Raw(c), nil
}

// Sampler runs a Source through an EdgeDetector.
type Sampler struct {
	src   Source
	edges EdgeDetector
}

// NewSampler wraps src.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Snapshot implements Feed.
func (s *Sampler) Snapshot(tick int, t float32) (Snapshot, error) {
	raw, err := s.src.Next(tick, t)
	if err != nil {
		return Snapshot{}, err
	}
	return s.edges.Sample(raw), nil
}

// Reset clears the edge state so a held button triggers again.
func (s *Sampler) Reset() {
	s.edges.Reset()
}
