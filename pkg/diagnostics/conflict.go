package diagnostics

import (
	"fmt"
	"log/slog"
	"sync"
)

// Conflict describes one attribute that two merged models set to different values.
type Conflict struct {
	Section   string `json:"section"` // e.g. "compiler", "option/flag", "default/geom"
	Attribute string `json:"attribute"`
	File      string `json:"file"`     // the model that lost
	Incoming  string `json:"incoming"` // value from File, discarded
	Retained  string `json:"retained"` // value already in the merged scene
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s@%s: %q from %s ignored, keeping %q", c.Section, c.Attribute, c.Incoming, c.File, c.Retained)
}

// Sink receives conflicts as they are detected.
type Sink interface {
	Report(c Conflict)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Conflict)

func (f SinkFunc) Report(c Conflict) { f(c) }

// Discard drops every conflict.
var Discard Sink = SinkFunc(func(Conflict) {})

// LogSink reports each conflict as a warning on logger.
func LogSink(logger *slog.Logger) Sink {
	return SinkFunc(func(c Conflict) {
		logger.Warn("Different attributes when merging models, the first loaded value will prevail",
			"section", c.Section,
			"attribute", c.Attribute,
			"file", c.File,
			"value", c.Incoming,
			"retained", c.Retained,
		)
	})
}

// Multi fans a conflict out to every non-nil sink, in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(c Conflict) {
		for _, s := range sinks {
			if s != nil {
				s.Report(c)
			}
		}
	})
}

// Recorder keeps every conflict it receives. Safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	conflicts []Conflict
}

func (r *Recorder) Report(c Conflict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, c)
}

// Conflicts returns a copy of what has been recorded so far.
func (r *Recorder) Conflicts() []Conflict {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Conflict, len(r.conflicts))
	copy(out, r.conflicts)
	return out
}

// Len returns the number of recorded conflicts.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conflicts)
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = nil
}
