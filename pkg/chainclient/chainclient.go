// Package chainclient talks to an EVM JSON-RPC node: it signs and sends the
// transactions of a local key and follows them until they are mined.
package chainclient

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultPollInterval = 2 * time.Second

// Backend is the part of ethclient.Client the wallet uses.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

func Dial(ctx context.Context, cfg chain.Config) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", cfg.RPCURL)
	}
	return client, nil
}

// KeyWallet is a wallet backed by a private key held in memory.
type KeyWallet struct {
	backend      Backend
	key          *ecdsa.PrivateKey
	address      common.Address
	chainID      *big.Int
	pollInterval time.Duration
}

func NewKeyWallet(backend Backend, key *ecdsa.PrivateKey, chainID *big.Int) *KeyWallet {
	return &KeyWallet{
		backend:      backend,
		key:          key,
		address:      crypto.PubkeyToAddress(key.PublicKey),
		chainID:      chainID,
		pollInterval: defaultPollInterval,
	}
}

func (w *KeyWallet) Address() common.Address {
	return w.address
}

func (w *KeyWallet) SendTransfer(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error) {
	return w.send(ctx, to, nil, value)
}

func (w *KeyWallet) CallContract(ctx context.Context, contract common.Address, data []byte, value *big.Int) (common.Hash, error) {
	return w.send(ctx, contract, data, value)
}

func (w *KeyWallet) send(ctx context.Context, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	if err := w.checkChain(ctx); err != nil {
		return common.Hash{}, err
	}

	nonce, err := w.backend.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "pending nonce")
	}

	tipCap, err := w.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "suggest gas tip cap")
	}

	head, err := w.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "latest header")
	}
	feeCap := new(big.Int).Set(tipCap)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := w.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  w.address,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "estimate gas")
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   w.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.chainID), w.key)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "sign transaction")
	}

	if err := w.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, errors.Wrap(err, "send transaction")
	}

	logrus.WithFields(logrus.Fields{
		"hash":  signed.Hash().Hex(),
		"from":  w.address.Hex(),
		"to":    to.Hex(),
		"value": value.String(),
		"nonce": nonce,
	}).Info("transaction submitted")

	return signed.Hash(), nil
}

func (w *KeyWallet) checkChain(ctx context.Context) error {
	id, err := w.backend.ChainID(ctx)
	if err != nil {
		return errors.Wrap(err, "chain id")
	}
	if id.Cmp(w.chainID) != 0 {
		return errors.Errorf("wallet is connected to chain %s, expected %s", id, w.chainID)
	}
	return nil
}

// WaitForReceipt polls until the transaction is mined or ctx is done.
func (w *KeyWallet) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return WaitMined(ctx, w.backend, hash, w.pollInterval)
}

// ReceiptReader is satisfied by ethclient.Client.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// WaitMined polls for the receipt of hash every interval.
func WaitMined(ctx context.Context, r ReceiptReader, hash common.Hash, interval time.Duration) (*types.Receipt, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := r.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			logrus.WithError(err).Debugf("receipt of %s not available yet", hash.Hex())
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Status reports the state of a transaction without waiting.
func Status(ctx context.Context, r ReceiptReader, cfg chain.Config, hash common.Hash) (models.TransactionStatus, error) {
	st := models.TransactionStatus{
		Hash:        hash.Hex(),
		Status:      models.TxPending,
		ExplorerURL: cfg.TxURL(hash.Hex()),
	}

	receipt, err := r.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return st, nil
		}
		return models.TransactionStatus{}, errors.Wrap(err, "transaction receipt")
	}

	st.Status = models.TxConfirmed
	if receipt.Status != types.ReceiptStatusSuccessful {
		st.Status = models.TxFailed
	}
	if receipt.BlockNumber != nil {
		st.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return st, nil
}
