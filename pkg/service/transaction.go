package service

import (
	"context"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/devesh1011/EtherBlinks/pkg/chainclient"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ErrNoChainClient is returned when the server runs without an RPC endpoint.
var ErrNoChainClient = errors.New("chain client is not configured")

type TransactionService struct {
	receipts chainclient.ReceiptReader
	chain    chain.Config
}

func NewTransactionService(receipts chainclient.ReceiptReader, cfg chain.Config) *TransactionService {
	return &TransactionService{receipts: receipts, chain: cfg}
}

func (s *TransactionService) TransactionStatus(ctx context.Context, hash string) (models.TransactionStatus, error) {
	if !isTxHash(hash) {
		return models.TransactionStatus{}, &models.ValidationError{Field: "hash", Reason: "must be a 0x-prefixed 32 byte hex string"}
	}
	if s.receipts == nil {
		return models.TransactionStatus{}, ErrNoChainClient
	}
	return chainclient.Status(ctx, s.receipts, s.chain, common.HexToHash(hash))
}

func isTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
