package models

import (
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("action_type", func(fl validator.FieldLevel) bool {
		return ActionType(fl.Field().String()).Known()
	})
	_ = v.RegisterValidation("chain_address", func(fl validator.FieldLevel) bool {
		return IsChainAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("native_amount", func(fl validator.FieldLevel) bool {
		return IsNativeAmount(fl.Field().String())
	})
	_ = v.RegisterValidation("token_id", func(fl validator.FieldLevel) bool {
		return IsTokenID(fl.Field().String())
	})

	return v
}

// Validate checks the syntactic invariants of the input and returns a
// *ValidationError for the first field that fails.
func (in CreateActionInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Reason: reason(verrs[0].Tag())}
	}
	return err
}

// ValidateAction applies the same checks to an already built action.
func ValidateAction(a Action) error {
	switch v := a.(type) {
	case Tip:
		if !IsChainAddress(v.RecipientAddress) {
			return &ValidationError{Field: "recipient_address", Reason: reason("chain_address")}
		}
		if !IsNativeAmount(v.AmountNative) {
			return &ValidationError{Field: "tip_amount_eth", Reason: reason("native_amount")}
		}
	case NftSale:
		if !IsChainAddress(v.ContractAddress) {
			return &ValidationError{Field: "contract_address", Reason: reason("chain_address")}
		}
		if !IsTokenID(v.TokenID) {
			return &ValidationError{Field: "token_id", Reason: reason("token_id")}
		}
		if !IsNativeAmount(v.PriceNative) {
			return &ValidationError{Field: "price", Reason: reason("native_amount")}
		}
	default:
		return ErrUnknownActionType
	}
	return nil
}

// IsChainAddress accepts 40 hex characters with an optional 0x prefix.
func IsChainAddress(s string) bool {
	return common.IsHexAddress(s)
}

func IsNativeAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func IsTokenID(s string) bool {
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Sign() >= 0
}

func reason(tag string) string {
	switch tag {
	case "required", "required_if":
		return "is required"
	case "action_type":
		return "must be one of tip, nft_sale"
	case "chain_address":
		return "must be 40 hex characters, optionally 0x-prefixed"
	case "native_amount":
		return "must be a non-negative decimal"
	case "token_id":
		return "must be a non-negative integer"
	case "max":
		return "is too long"
	default:
		return "failed " + tag
	}
}
