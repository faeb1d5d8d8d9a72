package orgrun

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/orgrun/pkg/document"
	"github.com/arthur-debert/orgrun/pkg/types"
	"github.com/arthur-debert/orgrun/pkg/ui"
)

type runFlags struct {
	configPath    string
	rulesFile     string
	verboseEngine bool
}

func (a *app) newRunCmd(simulate bool) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.executeRun(cmd, simulate, flags)
		},
	}
	if simulate {
		cmd.Use = "simulate"
		cmd.Short = MsgSimulateShort
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", MsgFlagConfig)
	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", MsgFlagRules)
	cmd.Flags().BoolVar(&flags.verboseEngine, "verbose-engine", false, MsgFlagVerboseEngine)
	cmd.MarkFlagsMutuallyExclusive("config", "rules")
	_ = cmd.MarkFlagFilename("config", "yaml", "yml")
	_ = cmd.MarkFlagFilename("rules", "yaml", "yml")

	return cmd
}

func (a *app) executeRun(cmd *cobra.Command, simulate bool, flags runFlags) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	rend, err := a.renderer(cmd)
	if err != nil {
		return err
	}

	req := types.RunRequest{
		Simulate:   simulate,
		Verbose:    flags.verboseEngine,
		ConfigPath: flags.configPath,
	}
	if flags.rulesFile != "" {
		doc, err := document.Load(flags.rulesFile)
		if err != nil {
			return err
		}
		req.ConfigData = doc
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, closeRunner := a.newRunner(ctx, cfg)
	defer closeRunner()

	a.logger.Info().
		Bool("simulate", simulate).
		Str("config", req.ConfigPath).
		Bool("rules", req.ConfigData != nil).
		Msg("Starting run")

	out := r.Run(ctx, req, ui.Callbacks(rend))
	if err := rend.Outcome(out); err != nil {
		return err
	}
	if !out.Success {
		return &ExitError{Code: ExitRunFailed}
	}
	return nil
}
