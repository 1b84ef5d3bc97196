// Package replay records per-tick input snapshots and persists them so a run
// can be reproduced exactly.
package replay

import (
	"github.com/Faultbox/fpsmove/internal/input"
)

// Recording is a captured input stream.
type Recording struct {
	Name     string           `json:"name"`
	TickRate int              `json:"tick_rate"`
	Frames   []input.Snapshot `json:"frames"`
}

// Duration returns the recorded time in seconds.
func (r *Recording) Duration() float32 {
	if r.TickRate <= 0 {
		return 0
	}
	return float32(len(r.Frames)) / float32(r.TickRate)
}

// Feed replays the recording. Ticks past the end yield an idle snapshot.
func (r *Recording) Feed() input.Feed {
	return &player{frames: r.Frames}
}

type player struct {
	frames []input.Snapshot
}

func (p *player) Snapshot(tick int, _ float32) (input.Snapshot, error) {
	if tick < 0 || tick >= len(p.frames) {
		return input.Snapshot{}, nil
	}
	return p.frames[tick], nil
}

// Recorder accumulates frames.
type Recorder struct {
	rec Recording
}

// NewRecorder starts an empty recording.
func NewRecorder(name string, tickRate int) *Recorder {
	return &Recorder{rec: Recording{Name: name, TickRate: tickRate}}
}

// Add appends one frame.
func (r *Recorder) Add(s input.Snapshot) {
	r.rec.Frames = append(r.rec.Frames, s)
}

// Len returns the number of frames recorded so far.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns a copy of what has been recorded.
func (r *Recorder) Recording() *Recording {
	rec := r.rec
	rec.Frames = append([]input.Snapshot(nil), r.rec.Frames...)
	return &rec
}

// Tap returns a Feed that records every snapshot it passes through.
func (r *Recorder) Tap(feed input.Feed) input.Feed {
	return &tap{feed: feed, rec: r}
}

type tap struct {
	feed input.Feed
	rec  *Recorder
}

func (t *tap) Snapshot(tick int, now float32) (input.Snapshot, error) {
	s, err := t.feed.Snapshot(tick, now)
	if err != nil {
		return s, err
	}
	t.rec.Add(s)
	return s, nil
}
