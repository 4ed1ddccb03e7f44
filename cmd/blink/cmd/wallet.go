package cmd

import (
	"fmt"
	"os"

	"github.com/devesh1011/EtherBlinks/internal/wallet"
	"github.com/spf13/cobra"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage local signing keys",
	}
	cmd.AddCommand(newWalletNewCmd())
	return cmd
}

func newWalletNewCmd() *cobra.Command {
	var keystoreDir string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new key pair",
		Long: "Without --keystore-dir the private key is printed. With it, the key " +
			"is encrypted with BLINK_KEYSTORE_PASSWORD and only the file path is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := wallet.Generate()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "address:", w.Address)

			if keystoreDir == "" {
				fmt.Fprintln(out, "private key:", w.PrivateKey)
				return nil
			}

			path, err := wallet.SaveKeystore(w, keystoreDir, os.Getenv("BLINK_KEYSTORE_PASSWORD"))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "keystore:", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&keystoreDir, "keystore-dir", "", "Directory to write an encrypted keystore file to.")
	return cmd
}
