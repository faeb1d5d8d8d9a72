package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/arthur-debert/orgrun/cmd/orgrun"
	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
	"github.com/arthur-debert/orgrun/pkg/ui"
)

func main() {
	rootCmd := orgrun.NewRootCmd()
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *orgrun.ExitError
	if !stderrors.As(err, &exitErr) || !exitErr.Reported() {
		msg := "Error: " + errors.UserMessage(err)
		if ui.DetectFormat(os.Stderr) == ui.FormatTerminal {
			msg = ui.DefaultTheme().Tag(types.TagError, msg)
		}
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(orgrun.ExitCode(err))
}
