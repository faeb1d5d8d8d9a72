package types

// Tag classifies a line of output for presentation
type Tag string

const (
	TagHeading Tag = "heading"
	TagInfo    Tag = "info"
	TagMove    Tag = "move"
	TagCopy    Tag = "copy"
	TagRename  Tag = "rename"
	TagDelete  Tag = "delete"
	TagSkipped Tag = "skipped"
	TagError   Tag = "error"
	TagEcho    Tag = "echo"
	TagSuccess Tag = "success"
	TagWarning Tag = "warning"
	TagDebug   Tag = "debug"
)

// OutputFunc receives classified text events
type OutputFunc func(text string, tag Tag)

// ProgressFunc receives coarse progress estimates in percent
type ProgressFunc func(percent float64, status string)

// Callbacks bundles the two event sinks of a run. Both are optional and are
// invoked on the goroutine executing the run.
type Callbacks struct {
	Output   OutputFunc
	Progress ProgressFunc
}

// Emit forwards text to the output sink if one is set
func (c Callbacks) Emit(text string, tag Tag) {
	if c.Output != nil {
		c.Output(text, tag)
	}
}

// Report forwards a progress update if a progress sink is set
func (c Callbacks) Report(percent float64, status string) {
	if c.Progress != nil {
		c.Progress(percent, status)
	}
}
