package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/status-im/solscope/render"
	"github.com/status-im/solscope/storage/factory"
)

func newHistoryCommand(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored ranking snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			defer flush()

			ctx, cancel := withTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, err := factory.Open(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			return render.History(cmd.OutOrStdout(), snaps)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of snapshots to show")
	return cmd
}
