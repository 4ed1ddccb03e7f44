package models

import (
	"time"

	"github.com/google/uuid"
)

// ActionRecord is one row of the actions table. Rows are written once and
// never updated.
type ActionRecord struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	ShortID          string     `db:"short_id" json:"short_id"`
	ActionType       ActionType `db:"action_type" json:"action_type"`
	RecipientAddress *string    `db:"recipient_address" json:"recipient_address,omitempty"`
	TipAmountEth     *string    `db:"tip_amount_eth" json:"tip_amount_eth,omitempty"`
	ContractAddress  *string    `db:"contract_address" json:"contract_address,omitempty"`
	TokenID          *string    `db:"token_id" json:"token_id,omitempty"`
	Price            *string    `db:"price" json:"price,omitempty"`
	Description      *string    `db:"description" json:"description,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// Action maps the row back to its action. The row's own action_type decides
// the variant.
func (r ActionRecord) Action() (Action, error) {
	switch r.ActionType {
	case ActionTip:
		return Tip{
			RecipientAddress: deref(r.RecipientAddress),
			AmountNative:     deref(r.TipAmountEth),
			Description:      deref(r.Description),
		}, nil
	case ActionNftSale:
		return NftSale{
			ContractAddress: deref(r.ContractAddress),
			TokenID:         deref(r.TokenID),
			PriceNative:     deref(r.Price),
			Description:     deref(r.Description),
		}, nil
	default:
		return nil, ErrUnknownActionType
	}
}

// NewActionRecord flattens an action into the columns of its variant.
func NewActionRecord(a Action) (ActionRecord, error) {
	rec := ActionRecord{ActionType: a.Type(), Description: ref(a.Desc())}
	switch v := a.(type) {
	case Tip:
		rec.RecipientAddress = ref(v.RecipientAddress)
		rec.TipAmountEth = ref(v.AmountNative)
	case NftSale:
		rec.ContractAddress = ref(v.ContractAddress)
		rec.TokenID = ref(v.TokenID)
		rec.Price = ref(v.PriceNative)
	default:
		return ActionRecord{}, ErrUnknownActionType
	}
	return rec, nil
}

// CreateActionInput is the flat body of POST /api/create-action.
type CreateActionInput struct {
	ActionType       ActionType `json:"action_type" form:"action_type" validate:"required,action_type"`
	RecipientAddress string     `json:"recipient_address" form:"recipient_address" validate:"required_if=ActionType tip,omitempty,chain_address"`
	TipAmountEth     string     `json:"tip_amount_eth" form:"tip_amount_eth" validate:"required_if=ActionType tip,omitempty,native_amount"`
	ContractAddress  string     `json:"contract_address" form:"contract_address" validate:"required_if=ActionType nft_sale,omitempty,chain_address"`
	TokenID          string     `json:"token_id" form:"token_id" validate:"required_if=ActionType nft_sale,omitempty,token_id"`
	Price            string     `json:"price" form:"price" validate:"required_if=ActionType nft_sale,omitempty,native_amount"`
	Description      string     `json:"description" form:"description" validate:"max=500"`
}

// Action builds the action described by the input. Fields of the other
// variant are ignored.
func (in CreateActionInput) Action() (Action, error) {
	switch in.ActionType {
	case ActionTip:
		return Tip{RecipientAddress: in.RecipientAddress, AmountNative: in.TipAmountEth, Description: in.Description}, nil
	case ActionNftSale:
		return NftSale{ContractAddress: in.ContractAddress, TokenID: in.TokenID, PriceNative: in.Price, Description: in.Description}, nil
	default:
		return nil, ErrUnknownActionType
	}
}

type CreateActionResponse struct {
	ID       uuid.UUID `json:"id"`
	ShortID  string    `json:"short_id"`
	ShortURL string    `json:"short_url"`
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
