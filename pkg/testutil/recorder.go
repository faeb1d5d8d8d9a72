package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/orgrun/pkg/types"
)

// Event is one output callback invocation.
type Event struct {
	Text string
	Tag  types.Tag
}

// ProgressUpdate is one progress callback invocation.
type ProgressUpdate struct {
	Percent float64
	Status  string
}

// Recorder captures callbacks. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	events   []Event
	progress []ProgressUpdate
	log      []string

	// OnEvent, when set, runs after each output event is recorded.
	OnEvent func(Event)
}

// Callbacks returns sinks that feed the recorder.
func (r *Recorder) Callbacks() types.Callbacks {
	return types.Callbacks{
		Output: func(text string, tag types.Tag) {
			ev := Event{Text: text, Tag: tag}
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.log = append(r.log, fmt.Sprintf("[%s] %s", tag, strings.ReplaceAll(text, "\n", `\n`)))
			hook := r.OnEvent
			r.mu.Unlock()
			if hook != nil {
				hook(ev)
			}
		},
		Progress: func(percent float64, status string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.progress = append(r.progress, ProgressUpdate{Percent: percent, Status: status})
			r.log = append(r.log, fmt.Sprintf("progress %.1f %s", percent, status))
		},
	}
}

// Events returns a copy of the recorded output events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Progress returns a copy of the recorded progress updates.
func (r *Recorder) Progress() []ProgressUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ProgressUpdate(nil), r.progress...)
}

// Texts returns the text of every event with the given tag.
func (r *Recorder) Texts(tag types.Tag) []string {
	var out []string
	for _, ev := range r.Events() {
		if ev.Tag == tag {
			out = append(out, ev.Text)
		}
	}
	return out
}

// Has reports whether an event with tag contains substr.
func (r *Recorder) Has(tag types.Tag, substr string) bool {
	for _, text := range r.Texts(tag) {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

// Transcript renders all callbacks in arrival order, one per line, with
// newlines inside event text escaped.
func (r *Recorder) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.log) == 0 {
		return ""
	}
	return strings.Join(r.log, "\n") + "\n"
}
