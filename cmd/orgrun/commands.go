package orgrun

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/orgrun/internal/version"
	"github.com/arthur-debert/orgrun/pkg/config"
	"github.com/arthur-debert/orgrun/pkg/decoder"
	"github.com/arthur-debert/orgrun/pkg/document"
	"github.com/arthur-debert/orgrun/pkg/history"
	"github.com/arthur-debert/orgrun/pkg/locator"
	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/platform"
	"github.com/arthur-debert/orgrun/pkg/runner"
	"github.com/arthur-debert/orgrun/pkg/ui"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	verbosity int
	format    string

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "orgrun",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			a.logger = logging.GetLogger("cmd." + cmd.Name())
			a.logger.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
			if _, err := ui.ParseFormat(a.format); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return &ExitError{Code: ExitCommandError, Err: fmt.Errorf("no command specified")}
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(a.newRunCmd(false))
	rootCmd.AddCommand(a.newRunCmd(true))
	rootCmd.AddCommand(a.newLocateCmd())
	rootCmd.AddCommand(a.newValidateCmd())
	rootCmd.AddCommand(a.newHistoryCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	installTopics(rootCmd)

	return rootCmd
}

// config loads the orgrun configuration once per invocation.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		a.logger.Debug().Str("path", cfg.Source).Msg("Using config file")
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout(), ui.Options{ShowDebug: a.verbosity >= 2})
}

func locatorOptions(cfg *config.Config, plat platform.Platform) locator.Options {
	return locator.Options{
		EngineName: cfg.Engine.Name,
		ScriptName: cfg.Engine.ScriptName,
		BaseDir:    cfg.Engine.BaseDir,
		Layout:     plat.Layout(),
	}
}

// newRunner wires a Runner from configuration. The returned close function
// releases the history store, if one was opened.
func (a *app) newRunner(ctx context.Context, cfg *config.Config) (*runner.Runner, func()) {
	plat := platform.Current()
	opts := runner.Options{
		Locator:  locator.Find(ctx, locatorOptions(cfg, plat)),
		Platform: plat,
		Decoder: decoder.Options{
			ProgressOffset: cfg.Decoder.ProgressOffset,
			ProgressCap:    cfg.Decoder.ProgressCap,
		},
		KillTimeout: cfg.Runner.KillTimeout,
	}

	closeFn := func() {}
	if cfg.History.Enabled {
		store, err := a.openHistory(cfg)
		if err != nil {
			a.logger.Warn().Err(err).Msg("Run history unavailable, continuing without it")
		} else {
			opts.Recorder = store
			closeFn = func() { _ = store.Close() }
		}
	}
	return runner.New(opts), closeFn
}

func (a *app) openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func (a *app) newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "locate",
		Short:   MsgLocateShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			rend, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			plat := platform.Current()
			loc := locator.Find(cmd.Context(), locatorOptions(cfg, plat))
			state, mode := "missing", "direct"
			if info, err := os.Stat(loc.Script); err == nil && !info.IsDir() {
				state, mode = "found", "script"
			}
			for _, line := range []string{
				fmt.Sprintf(MsgLocateCommand, loc.Command),
				fmt.Sprintf(MsgLocateScript, loc.Script, state),
				fmt.Sprintf(MsgLocateMode, mode),
			} {
				if err := rend.Message(line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate FILE",
		Short:   MsgValidateShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rend, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			doc, err := document.Load(args[0])
			if err != nil {
				_ = rend.Error(err)
				return &ExitError{Code: ExitRunFailed}
			}
			summary := document.Summarize(doc)
			noun := "rules"
			if summary.RuleCount == 1 {
				noun = "rule"
			}
			if err := rend.Message(fmt.Sprintf(MsgDocumentValid, args[0], summary.RuleCount, noun)); err != nil {
				return err
			}
			for _, name := range summary.RuleNames {
				if err := rend.Message("  - " + name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			out, err := cfg.ToTOML()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cfg.Source != "" {
				_, _ = fmt.Fprintf(w, MsgConfigSource, cfg.Source)
			}
			_, err = w.Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v, commit, date := version.Info()
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "orgrun version %s\n", v)
			_, _ = fmt.Fprintf(w, "  commit: %s\n", commit)
			_, _ = fmt.Fprintf(w, "  built:  %s\n", date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletion,
		Long: `To load completions:

Bash:
  $ source <(orgrun completion bash)

Zsh:
  $ orgrun completion zsh > "${fpath[1]}/_orgrun"

Fish:
  $ orgrun completion fish | source

PowerShell:
  PS> orgrun completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man DIR",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(args[0], 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "ORGRUN",
				Section: "1",
				Source:  "orgrun " + version.String(),
				Manual:  "orgrun manual",
			}
			return doc.GenManTree(cmd.Root(), header, args[0])
		},
	}
}
