package cmd

import (
	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/devesh1011/EtherBlinks/pkg/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type decoded struct {
	Type     models.ActionType `json:"type"`
	Action   models.Action     `json:"action"`
	Metadata models.Metadata   `json:"metadata"`
}

func newDecodeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <link-or-token>",
		Short: "Show the action behind a link",
		Long:  "Inline links are decoded locally, store-backed links are looked up on the server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := link.Dispatch{
				Store:  link.NewStore(apiClient(v)),
				Inline: link.Inline{},
			}

			a, err := resolver.Resolve(cmd.Context(), link.TokenFromURL(args[0]))
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), decoded{
				Type:     a.Type(),
				Action:   a,
				Metadata: service.Present(a, chainConfig(v).Currency.Symbol),
			})
		},
	}
}
