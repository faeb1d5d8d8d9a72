// Package ui renders run events, outcomes and history in terminal, plain
// text or JSON form.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
)

// Renderer presents everything the CLI writes to stdout
type Renderer interface {
	// Event writes one classified line of run output
	Event(text string, tag types.Tag)
	// Progress reports a coarse progress estimate
	Progress(percent float64, status string)
	// Outcome writes the final result of a run or kill request
	Outcome(out types.Outcome) error
	// Runs writes a history listing
	Runs(runs []types.RunRecord) error
	// Run writes one history entry with its results
	Run(rec types.RunRecord) error
	// Message writes a line of informational text
	Message(msg string) error
	// Error writes an error for the user
	Error(err error) error
}

// Options tune a renderer
type Options struct {
	// ShowDebug includes debug-tagged events
	ShowDebug bool
	// Theme overrides the embedded styles for terminal output
	Theme Theme
}

// NewRenderer creates a renderer for format writing to w.
// FormatAuto inspects w when it is a file and falls back to text otherwise.
func NewRenderer(format Format, w io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		if f, ok := w.(*os.File); ok {
			return NewRenderer(DetectFormat(f), w, opts)
		}
		return NewRenderer(FormatText, w, opts)
	case FormatTerminal:
		return newTerminal(w, opts), nil
	case FormatText:
		return newText(w, opts), nil
	case FormatJSON:
		return newJSON(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

// Callbacks adapts a renderer to the event sinks of a run
func Callbacks(r Renderer) types.Callbacks {
	return types.Callbacks{
		Output:   r.Event,
		Progress: r.Progress,
	}
}
