package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNative(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"whole", "1", "1000000000000000000"},
		{"fraction", "1.5", "1500000000000000000"},
		{"small", "0.01", "10000000000000000"},
		{"one wei", "0.000000000000000001", "1"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNative(tt.amount, 18)
			require.NoError(t, err)
			want, _ := new(big.Int).SetString(tt.want, 10)
			assert.Equal(t, 0, want.Cmp(got), "got %s", got)
		})
	}
}

func TestParseNativeRejects(t *testing.T) {
	for _, amount := range []string{"", "abc", "-1", "0.0000000000000000001", "1,5"} {
		_, err := ParseNative(amount, 18)
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}
}

func TestFormatNative(t *testing.T) {
	units, err := ParseNative("1.5", 18)
	require.NoError(t, err)
	assert.Equal(t, "1.5", FormatNative(units, 18))
	assert.Equal(t, "0", FormatNative(nil, 18))
}

func TestTxURL(t *testing.T) {
	cfg := EtherlinkTestnet
	assert.Equal(t, "https://testnet.explorer.etherlink.com/tx/0xabc", cfg.TxURL("0xabc"))

	cfg.ExplorerURL = "https://explorer.example/"
	assert.Equal(t, "https://explorer.example/tx/0xabc", cfg.TxURL("0xabc"))
	assert.Empty(t, cfg.TxURL(""))
}
