package cmd

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/devesh1011/EtherBlinks/internal/wallet"
	"github.com/devesh1011/EtherBlinks/pkg/chainclient"
	"github.com/devesh1011/EtherBlinks/pkg/executor"
	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/devesh1011/EtherBlinks/pkg/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExecuteCmd(v *viper.Viper) *cobra.Command {
	var (
		keystorePath string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "execute <link-or-token>",
		Short: "Sign and send the transaction of a link with a local key",
		Long: "The key is read from BLINK_PRIVATE_KEY, or from a keystore file " +
			"unlocked with BLINK_KEYSTORE_PASSWORD.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			resolver := link.Dispatch{
				Store:  link.NewStore(apiClient(v)),
				Inline: link.Inline{},
			}
			action, err := resolver.Resolve(ctx, link.TokenFromURL(args[0]))
			if err != nil {
				return err
			}

			key, err := loadKey(v, keystorePath)
			if err != nil {
				return err
			}

			cfg := chainConfig(v)
			backend, err := chainclient.Dial(ctx, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			out := cmd.OutOrStdout()
			md := service.Present(action, cfg.Currency.Symbol)
			fmt.Fprintf(out, "%s: %s\n", md.Title, md.Description)

			ex := executor.New(action, executor.Session{
				Wallet: chainclient.NewKeyWallet(backend, key, cfg.ChainID()),
				Chain:  cfg,
			}, executor.WithObserver(func(st executor.State) {
				switch st.Status {
				case executor.AwaitingChainConfirmation:
					fmt.Fprintf(out, "%s %s\n", st.Status, st.TxHash.Hex())
				case executor.Failed:
					fmt.Fprintf(out, "%s: %s\n", st.Status, st.Message)
				default:
					fmt.Fprintln(out, st.Status)
				}
			}))

			if err := ex.Execute(ctx); err != nil {
				return err
			}
			if url := ex.ExplorerURL(); url != "" {
				fmt.Fprintln(out, url)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keystorePath, "keystore", "", "Path to a keystore file holding the signing key.")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "How long to wait for the transaction to be mined.")
	return cmd
}

func loadKey(v *viper.Viper, keystorePath string) (*ecdsa.PrivateKey, error) {
	if keystorePath != "" {
		return wallet.LoadKeystore(keystorePath, v.GetString("keystore_password"))
	}
	if hex := v.GetString("private_key"); hex != "" {
		return wallet.ParsePrivateKey(hex)
	}
	return nil, errors.New("no signing key: set BLINK_PRIVATE_KEY or pass --keystore")
}
