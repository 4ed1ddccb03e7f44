package models

type ActionType string

const (
	ActionTip     ActionType = "tip"
	ActionNftSale ActionType = "nft_sale"
)

// ActionTypes lists every known discriminator.
var ActionTypes = []ActionType{ActionTip, ActionNftSale}

func (t ActionType) Known() bool {
	switch t {
	case ActionTip, ActionNftSale:
		return true
	}
	return false
}

// Action is the closed set of actions a link can carry: Tip or NftSale.
type Action interface {
	Type() ActionType
	Desc() string
	action()
}

type Tip struct {
	RecipientAddress string `json:"recipient"`
	AmountNative     string `json:"amount"`
	Description      string `json:"desc,omitempty"`
}

func (Tip) Type() ActionType { return ActionTip }
func (t Tip) Desc() string   { return t.Description }
func (Tip) action()          {}

type NftSale struct {
	ContractAddress string `json:"contract"`
	TokenID         string `json:"tokenId"`
	PriceNative     string `json:"price"`
	Description     string `json:"desc,omitempty"`
}

func (NftSale) Type() ActionType { return ActionNftSale }
func (n NftSale) Desc() string   { return n.Description }
func (NftSale) action()          {}

type Metadata struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Label       string `json:"label"`
}
