package models

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// TransactionStatus is the answer of GET /api/tx/:hash.
type TransactionStatus struct {
	Hash        string   `json:"hash"`
	Status      TxStatus `json:"status"`
	BlockNumber uint64   `json:"block_number,omitempty"`
	ExplorerURL string   `json:"explorer_url"`
}

// TransactionRequest is the call a wallet has to submit for an action.
type TransactionRequest struct {
	ChainID int64  `json:"chain_id"`
	To      string `json:"to"`
	Value   string `json:"value"`
	Data    string `json:"data,omitempty"`
}
