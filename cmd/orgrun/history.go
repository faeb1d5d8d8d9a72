package orgrun

import (
	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   MsgHistoryShort,
		GroupID: "core",
	}
	cmd.AddCommand(a.newHistoryListCmd())
	cmd.AddCommand(a.newHistoryShowCmd())
	return cmd
}

func (a *app) newHistoryListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgHistoryList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			rend, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return rend.Message(MsgHistoryDisabled)
			}
			store, err := a.openHistory(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return rend.Runs(runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, MsgFlagLimit)
	return cmd
}

func (a *app) newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: MsgHistoryShow,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			rend, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			store, err := a.openHistory(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return rend.Run(rec)
		},
	}
}
