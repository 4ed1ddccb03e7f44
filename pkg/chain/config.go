// Package chain describes the EVM network actions are executed on.
package chain

import (
	"math/big"
	"strings"
)

type Currency struct {
	Name     string
	Symbol   string
	Decimals int32
}

type Config struct {
	ID          int64
	Name        string
	RPCURL      string
	ExplorerURL string
	Currency    Currency
}

// EtherlinkTestnet is the network EtherBlink links target by default.
var EtherlinkTestnet = Config{
	ID:          128123,
	Name:        "Etherlink Testnet",
	RPCURL:      "https://node.ghostnet.etherlink.com",
	ExplorerURL: "https://testnet.explorer.etherlink.com",
	Currency: Currency{
		Name:     "Tezos",
		Symbol:   "XTZ",
		Decimals: 18,
	},
}

func (c Config) ChainID() *big.Int {
	return big.NewInt(c.ID)
}

// TxURL returns the block explorer page of a transaction.
func (c Config) TxURL(hash string) string {
	if c.ExplorerURL == "" || hash == "" {
		return ""
	}
	return strings.TrimRight(c.ExplorerURL, "/") + "/tx/" + hash
}
