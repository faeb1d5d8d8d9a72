package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
)

type textRenderer struct {
	w         io.Writer
	showDebug bool
}

func newText(w io.Writer, opts Options) *textRenderer {
	return &textRenderer{w: w, showDebug: opts.ShowDebug}
}

func (r *textRenderer) Event(text string, tag types.Tag) {
	if tag == types.TagDebug && !r.showDebug {
		return
	}
	_, _ = fmt.Fprintln(r.w, text)
}

// Progress is not shown in plain output; every operation already has a line.
func (r *textRenderer) Progress(float64, string) {}

func (r *textRenderer) Outcome(out types.Outcome) error {
	if len(out.Results) > 0 {
		if err := r.table(resultsTable(out.Results)); err != nil {
			return err
		}
	}
	if out.RunID == "" && len(out.Results) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, Summarize(out.Results)); err != nil {
		return err
	}
	if out.RunID != "" {
		_, err := fmt.Fprintln(r.w, "run "+out.RunID)
		return err
	}
	return nil
}

func (r *textRenderer) Runs(runs []types.RunRecord) error {
	if len(runs) == 0 {
		return r.Message("No runs recorded yet.")
	}
	return r.table(runsTable(runs))
}

func (r *textRenderer) Run(rec types.RunRecord) error {
	_, err := io.WriteString(r.w, RunReport(rec))
	return err
}

func (r *textRenderer) Message(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *textRenderer) Error(err error) error {
	_, werr := fmt.Fprintln(r.w, "Error: "+errors.UserMessage(err))
	return werr
}

func (r *textRenderer) table(data pterm.TableData) error {
	table, err := renderTable(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.w, pterm.RemoveColorFromString(table), "\n")
	return err
}
