package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
)

const (
	reportWidth = 100
	clearLine   = "\r\033[K"
)

type terminalRenderer struct {
	w         io.Writer
	theme     Theme
	showDebug bool

	// live draws progress in place on an interactive terminal
	live      bool
	liveShown bool
}

func newTerminal(w io.Writer, opts Options) *terminalRenderer {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	f, _ := w.(*os.File)
	return &terminalRenderer{
		w:         w,
		theme:     theme,
		showDebug: opts.ShowDebug,
		live:      isTerminal(f),
	}
}

func (r *terminalRenderer) clearLive() {
	if r.liveShown {
		_, _ = io.WriteString(r.w, clearLine)
		r.liveShown = false
	}
}

func (r *terminalRenderer) Event(text string, tag types.Tag) {
	if tag == types.TagDebug && !r.showDebug {
		return
	}
	r.clearLive()
	_, _ = fmt.Fprintln(r.w, r.theme.Tag(tag, text))
}

func (r *terminalRenderer) Progress(percent float64, status string) {
	if !r.live {
		return
	}
	line := fmt.Sprintf("[%3.0f%%] %s", percent, status)
	_, _ = io.WriteString(r.w, clearLine+r.theme.Render(StyleProgress, line))
	r.liveShown = true
}

func (r *terminalRenderer) Outcome(out types.Outcome) error {
	r.clearLive()
	if len(out.Results) > 0 {
		table, err := renderTable(resultsTable(out.Results))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(r.w, "\n", table, "\n"); err != nil {
			return err
		}
	}
	if out.RunID == "" && len(out.Results) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, r.theme.Render(StyleTitle, Summarize(out.Results))); err != nil {
		return err
	}
	if out.RunID != "" {
		_, err := fmt.Fprintln(r.w, r.theme.Tag(types.TagDebug, "run "+out.RunID))
		return err
	}
	return nil
}

func (r *terminalRenderer) Runs(runs []types.RunRecord) error {
	if len(runs) == 0 {
		return r.Message("No runs recorded yet.")
	}
	table, err := renderTable(runsTable(runs))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.w, table, "\n")
	return err
}

func (r *terminalRenderer) Run(rec types.RunRecord) error {
	_, err := io.WriteString(r.w, renderMarkdown(RunReport(rec)))
	return err
}

func (r *terminalRenderer) Message(msg string) error {
	r.clearLive()
	_, err := fmt.Fprintln(r.w, r.theme.Tag(types.TagInfo, msg))
	return err
}

func (r *terminalRenderer) Error(err error) error {
	r.clearLive()
	_, werr := fmt.Fprintln(r.w, r.theme.Tag(types.TagError, "Error: "+errors.UserMessage(err)))
	return werr
}

// renderMarkdown renders markdown for the terminal, returning it unchanged
// when glamour cannot render it.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(reportWidth),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
