package cmd

import (
	"github.com/devesh1011/EtherBlinks/models"
	"github.com/spf13/cobra"
)

// actionFlags collects the fields of an action from the command line.
type actionFlags struct {
	actionType  string
	recipient   string
	amount      string
	contract    string
	tokenID     string
	price       string
	description string
}

func (f *actionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.actionType, "type", "t", string(models.ActionTip), "Action type: tip or nft_sale.")
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "Tip recipient address.")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Tip amount in the native currency.")
	cmd.Flags().StringVar(&f.contract, "contract", "", "NFT sale contract address.")
	cmd.Flags().StringVar(&f.tokenID, "token-id", "", "NFT token id.")
	cmd.Flags().StringVar(&f.price, "price", "", "NFT price in the native currency.")
	cmd.Flags().StringVarP(&f.description, "desc", "d", "", "Optional description shown to the visitor.")
}

func (f *actionFlags) input() models.CreateActionInput {
	return models.CreateActionInput{
		ActionType:       models.ActionType(f.actionType),
		RecipientAddress: f.recipient,
		TipAmountEth:     f.amount,
		ContractAddress:  f.contract,
		TokenID:          f.tokenID,
		Price:            f.price,
		Description:      f.description,
	}
}

func (f *actionFlags) action() (models.Action, error) {
	in := f.input()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in.Action()
}
