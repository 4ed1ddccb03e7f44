package executor

import (
	"math/big"
	"strings"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// nftSaleABI is the single payable entry point a sale contract must expose.
const nftSaleABI = `[{"type":"function","name":"buy","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]}]`

var saleABI = mustParseABI(nftSaleABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// Call is the wallet call an action resolves to. Data is empty for a plain
// native transfer.
type Call struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// BuildRequest validates the action and turns it into the call a wallet has
// to submit.
func BuildRequest(a models.Action, cur chain.Currency) (Call, error) {
	if err := models.ValidateAction(a); err != nil {
		return Call{}, err
	}

	switch v := a.(type) {
	case models.Tip:
		value, err := chain.ParseNative(v.AmountNative, cur.Decimals)
		if err != nil {
			return Call{}, &models.ValidationError{Field: "tip_amount_eth", Reason: err.Error()}
		}
		return Call{To: common.HexToAddress(v.RecipientAddress), Value: value}, nil

	case models.NftSale:
		value, err := chain.ParseNative(v.PriceNative, cur.Decimals)
		if err != nil {
			return Call{}, &models.ValidationError{Field: "price", Reason: err.Error()}
		}
		tokenID, _ := new(big.Int).SetString(v.TokenID, 10)
		data, err := saleABI.Pack("buy", tokenID)
		if err != nil {
			return Call{}, &models.ValidationError{Field: "token_id", Reason: err.Error()}
		}
		return Call{To: common.HexToAddress(v.ContractAddress), Value: value, Data: data}, nil

	default:
		return Call{}, models.ErrUnknownActionType
	}
}

// Request renders the call for a browser wallet.
func (c Call) Request(chainID int64) models.TransactionRequest {
	req := models.TransactionRequest{
		ChainID: chainID,
		To:      c.To.Hex(),
		Value:   hexutil.EncodeBig(c.Value),
	}
	if len(c.Data) > 0 {
		req.Data = hexutil.Encode(c.Data)
	}
	return req
}
