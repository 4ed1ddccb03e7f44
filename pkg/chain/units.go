package chain

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseNative converts a decimal amount of native currency ("1.5") into its
// smallest unit using the given number of decimals.
func ParseNative(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
	}
	if d.IsNegative() {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is negative", amount)
	}

	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q has more than %d decimals", amount, decimals)
	}
	return units.BigInt(), nil
}

// FormatNative is the inverse of ParseNative.
func FormatNative(units *big.Int, decimals int32) string {
	if units == nil {
		return "0"
	}
	return decimal.NewFromBigInt(units, -decimals).String()
}
