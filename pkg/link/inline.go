package link

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/pkg/errors"
)

// Inline is the stateless codec. The token is the Base64url encoding of the
// action's JSON, so resolving it never needs the network.
type Inline struct{}

// payload is the JSON shape of an inline token.
type payload struct {
	Type models.ActionType `json:"type"`

	Recipient string `json:"recipient,omitempty"`
	Amount    string `json:"amount,omitempty"`

	Contract string `json:"contract,omitempty"`
	TokenID  string `json:"tokenId,omitempty"`
	Price    string `json:"price,omitempty"`

	Desc string `json:"desc,omitempty"`
}

func (Inline) Encode(_ context.Context, a models.Action) (string, error) {
	p := payload{Type: a.Type(), Desc: a.Desc()}
	switch v := a.(type) {
	case models.Tip:
		p.Recipient = v.RecipientAddress
		p.Amount = v.AmountNative
	case models.NftSale:
		p.Contract = v.ContractAddress
		p.TokenID = v.TokenID
		p.Price = v.PriceNative
	default:
		return "", models.ErrUnknownActionType
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "encode action")
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func (Inline) Resolve(_ context.Context, token string) (models.Action, error) {
	if token == "" {
		return nil, models.ErrMalformedLink
	}

	// Links produced by plain btoa carry padding and the standard alphabet.
	token = strings.TrimRight(token, "=")
	token = strings.NewReplacer("+", "-", "/", "_").Replace(token)

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.Wrap(models.ErrMalformedLink, err.Error())
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(models.ErrMalformedLink, err.Error())
	}

	switch p.Type {
	case models.ActionTip:
		return models.Tip{RecipientAddress: p.Recipient, AmountNative: p.Amount, Description: p.Desc}, nil
	case models.ActionNftSale:
		return models.NftSale{ContractAddress: p.Contract, TokenID: p.TokenID, PriceNative: p.Price, Description: p.Desc}, nil
	default:
		return nil, errors.Wrapf(models.ErrUnknownActionType, "%q", p.Type)
	}
}
