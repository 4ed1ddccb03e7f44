package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCreateCmd(v *viper.Viper) *cobra.Command {
	var (
		flags  actionFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Store an action on the server and print its short link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := flags.input()
			if err := in.Validate(); err != nil {
				return err
			}

			resp, err := apiClient(v).CreateLink(cmd.Context(), in)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.ShortURL)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full server response.")
	return cmd
}
