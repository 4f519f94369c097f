package cli

import (
	"github.com/spf13/cobra"

	"github.com/status-im/solscope/render"
	"github.com/status-im/solscope/solana"
	"github.com/status-im/solscope/wallet"
)

func newWalletCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet <address>",
		Short: "Show the SOL balance and SPL token holdings of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			defer flush()

			rpc := solana.NewHTTPClient(cfg.Solana.RPCURL,
				solana.WithTimeout(cfg.Solana.Timeout),
				solana.WithMaxRetries(cfg.Solana.MaxRetries),
			)
			svc := wallet.NewService(rpc, nil, 0)

			ctx, cancel := withTimeout(cmd.Context(), cfg.Solana.Timeout*2)
			defer cancel()

			summary, err := svc.Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			return render.Wallet(cmd.OutOrStdout(), summary)
		},
	}
}
