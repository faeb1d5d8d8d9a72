package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/orgrun/pkg/types"
)

// statusOrder fixes the order of counts in summaries
var statusOrder = []types.Status{
	types.StatusMoved,
	types.StatusCopied,
	types.StatusRenamed,
	types.StatusDeleted,
	types.StatusWouldMove,
	types.StatusWouldCopy,
	types.StatusWouldRename,
	types.StatusWouldDelete,
	types.StatusSkipped,
	types.StatusError,
}

const timeLayout = "2006-01-02 15:04:05"

// Summarize returns a one-line tally such as "3 results: 2 Would move, 1 Error"
func Summarize(results []types.Result) string {
	if len(results) == 0 {
		return "No files were matched."
	}
	counts := types.CountByStatus(results)
	parts := make([]string, 0, len(counts))
	for _, s := range statusOrder {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s.Label()))
		}
	}
	noun := "results"
	if len(results) == 1 {
		noun = "result"
	}
	return fmt.Sprintf("%d %s: %s", len(results), noun, strings.Join(parts, ", "))
}

func resultsTable(results []types.Result) pterm.TableData {
	data := pterm.TableData{{"Status", "Source", "Destination", "Rule"}}
	for _, r := range results {
		data = append(data, []string{r.Status.Label(), r.Source, r.Destination, r.Rule})
	}
	return data
}

func runsTable(runs []types.RunRecord) pterm.TableData {
	data := pterm.TableData{{"ID", "Started", "Mode", "Exit", "Results", "Message"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID,
			r.StartedAt.Local().Format(timeLayout),
			modeName(r.Simulate),
			exitLabel(r),
			fmt.Sprint(r.ResultCount),
			r.Message,
		})
	}
	return data
}

func renderTable(data pterm.TableData) (string, error) {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func modeName(simulate bool) string {
	if simulate {
		return "simulate"
	}
	return "run"
}

func exitLabel(r types.RunRecord) string {
	if r.Killed {
		return fmt.Sprintf("%d (killed)", r.ExitCode)
	}
	return fmt.Sprint(r.ExitCode)
}

// RunReport renders one history entry as markdown
func RunReport(rec types.RunRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", rec.ID)
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Mode | %s |\n", modeName(rec.Simulate))
	fmt.Fprintf(&b, "| Started | %s |\n", rec.StartedAt.Local().Format(timeLayout))
	fmt.Fprintf(&b, "| Duration | %s |\n", rec.Duration().Round(time.Millisecond))
	fmt.Fprintf(&b, "| Exit code | %s |\n", exitLabel(rec))
	fmt.Fprintf(&b, "| Command | `%s` |\n", rec.Command)
	fmt.Fprintf(&b, "| Message | %s |\n", mdCell(rec.Message))

	b.WriteString("\n## Results\n\n")
	if len(rec.Results) == 0 {
		b.WriteString("_No results were recorded._\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n\n", Summarize(rec.Results))
	b.WriteString("| Status | Source | Destination | Rule |\n|---|---|---|---|\n")
	for _, r := range rec.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			r.Status.Label(), mdCell(r.Source), mdCell(r.Destination), mdCell(r.Rule))
	}
	return b.String()
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
