// Package cmd contains the blink command line client.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/devesh1011/EtherBlinks/pkg/client"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree. Every flag can also be set through a
// BLINK_ prefixed environment variable, e.g. BLINK_API.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("blink")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "blink",
		Short:         "Create, inspect and execute EtherBlink action links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if v.GetBool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("api", "http://localhost:8080", "Base URL of the EtherBlinks server.")
	flags.String("rpc", chain.EtherlinkTestnet.RPCURL, "JSON-RPC endpoint of the chain.")
	flags.Int64("chain-id", chain.EtherlinkTestnet.ID, "Chain id transactions are signed for.")
	flags.String("explorer", chain.EtherlinkTestnet.ExplorerURL, "Block explorer base URL.")
	flags.BoolP("verbose", "v", false, "Log debug output.")
	_ = v.BindPFlags(flags)

	root.AddCommand(
		newEncodeCmd(v),
		newDecodeCmd(v),
		newCreateCmd(v),
		newResolveCmd(v),
		newStatusCmd(v),
		newExecuteCmd(v),
		newWalletCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func apiClient(v *viper.Viper) *client.Client {
	return client.New(v.GetString("api"))
}

func chainConfig(v *viper.Viper) chain.Config {
	cfg := chain.EtherlinkTestnet
	cfg.RPCURL = v.GetString("rpc")
	cfg.ExplorerURL = v.GetString("explorer")
	if id := v.GetInt64("chain-id"); id != cfg.ID {
		cfg.ID = id
		cfg.Name = fmt.Sprintf("Chain %d", id)
	}
	return cfg
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
