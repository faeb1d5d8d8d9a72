// pkg/testutil/recorder_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Verify the callback recorder keeps arrival order

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/orgrun/pkg/types"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	var hooked []string
	r.OnEvent = func(ev Event) { hooked = append(hooked, ev.Text) }

	cb := r.Callbacks()
	cb.Emit("Rule \"A\"", types.TagHeading)
	cb.Report(2, "Processed 1 files...")
	cb.Emit("STDERR:\nboom", types.TagError)

	assert.Len(t, r.Events(), 2)
	assert.Len(t, r.Progress(), 1)
	assert.Equal(t, []string{"STDERR:\nboom"}, r.Texts(types.TagError))
	assert.True(t, r.Has(types.TagHeading, "A"))
	assert.False(t, r.Has(types.TagInfo, "A"))
	assert.Equal(t, []string{"Rule \"A\"", "STDERR:\nboom"}, hooked)
	assert.Equal(t, "[heading] Rule \"A\"\nprogress 2.0 Processed 1 files...\n[error] STDERR:\\nboom\n", r.Transcript())
}
