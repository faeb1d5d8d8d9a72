package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
)

// Record types written by the JSON renderer, one object per line
const (
	RecordEvent    = "event"
	RecordProgress = "progress"
	RecordOutcome  = "outcome"
	RecordRuns     = "runs"
	RecordRun      = "run"
	RecordMessage  = "message"
	RecordError    = "error"
)

// Record is one line of JSON output
type Record struct {
	Type    string            `json:"type"`
	Tag     types.Tag         `json:"tag,omitempty"`
	Text    string            `json:"text,omitempty"`
	Percent *float64          `json:"percent,omitempty"`
	Status  string            `json:"status,omitempty"`
	Outcome *types.Outcome    `json:"outcome,omitempty"`
	Runs    []types.RunRecord `json:"runs,omitempty"`
	Run     *types.RunRecord  `json:"run,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
}

type jsonRenderer struct {
	enc *json.Encoder
}

func newJSON(w io.Writer) *jsonRenderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &jsonRenderer{enc: enc}
}

// Debug events are kept: consumers filter on tag.
func (r *jsonRenderer) Event(text string, tag types.Tag) {
	_ = r.enc.Encode(Record{Type: RecordEvent, Tag: tag, Text: text})
}

func (r *jsonRenderer) Progress(percent float64, status string) {
	_ = r.enc.Encode(Record{Type: RecordProgress, Percent: &percent, Status: status})
}

func (r *jsonRenderer) Outcome(out types.Outcome) error {
	rec := Record{Type: RecordOutcome, Outcome: &out}
	if out.Err != nil {
		rec.Code = string(errors.GetErrorCode(out.Err))
		rec.Error = errors.UserMessage(out.Err)
	}
	return r.enc.Encode(rec)
}

func (r *jsonRenderer) Runs(runs []types.RunRecord) error {
	if runs == nil {
		runs = []types.RunRecord{}
	}
	return r.enc.Encode(struct {
		Type string            `json:"type"`
		Runs []types.RunRecord `json:"runs"`
	}{RecordRuns, runs})
}

func (r *jsonRenderer) Run(rec types.RunRecord) error {
	return r.enc.Encode(Record{Type: RecordRun, Run: &rec})
}

func (r *jsonRenderer) Message(msg string) error {
	return r.enc.Encode(Record{Type: RecordMessage, Text: msg})
}

func (r *jsonRenderer) Error(err error) error {
	return r.enc.Encode(Record{
		Type:  RecordError,
		Error: errors.UserMessage(err),
		Code:  string(errors.GetErrorCode(err)),
	})
}
