package cmd

import (
	"fmt"

	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEncodeCmd(v *viper.Viper) *cobra.Command {
	var flags actionFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a self-contained link without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.action()
			if err != nil {
				return err
			}

			token, err := link.Inline{}.Encode(cmd.Context(), a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link.URL(v.GetString("api"), token))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
