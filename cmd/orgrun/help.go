package orgrun

import (
	"embed"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/orgrun/pkg/cobrax/topics"
	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/ui"
)

//go:embed topics/*.md
var topicFiles embed.FS

func installTopics(root *cobra.Command) {
	var renderer topics.Renderer = topics.PlainRenderer{}
	if ui.DetectFormat(os.Stdout) == ui.FormatTerminal {
		renderer = topics.GlamourRenderer{Width: 100}
	}

	m, err := topics.Load(topicFiles, "topics", topics.Options{Renderer: renderer})
	if err != nil {
		logger := logging.GetLogger("cmd")
		logger.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	m.Install(root)
}
