// Package executor drives one action through the wallet until the chain
// confirms it or something fails.
package executor

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// maxMessageLen bounds the failure message shown to the user.
const maxMessageLen = 160

var (
	ErrNotConnected = errors.New("wallet not connected")
	ErrReverted     = errors.New("transaction reverted")
)

// Wallet is the connected wallet of one page view.
type Wallet interface {
	Address() common.Address
	SendTransfer(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error)
	CallContract(ctx context.Context, contract common.Address, data []byte, value *big.Int) (common.Hash, error)
	WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Session carries what a page view has: an optional wallet and the chain it
// is connected to.
type Session struct {
	Wallet Wallet
	Chain  chain.Config
}

type Status int

const (
	Idle Status = iota
	AwaitingWalletConfirmation
	AwaitingChainConfirmation
	Confirmed
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingWalletConfirmation:
		return "awaiting_wallet_confirmation"
	case AwaitingChainConfirmation:
		return "awaiting_chain_confirmation"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == Confirmed || s == Failed
}

// Busy reports whether a transaction is in flight.
func (s Status) Busy() bool {
	return s == AwaitingWalletConfirmation || s == AwaitingChainConfirmation
}

type State struct {
	Status  Status
	TxHash  common.Hash
	Message string
}

// Executor runs at most one transaction for one action. Once Confirmed or
// Failed it never changes again; a retry needs a new Executor.
type Executor struct {
	action  models.Action
	session Session

	mu       sync.Mutex
	state    State
	onChange func(State)
}

type Option func(*Executor)

// WithObserver registers a callback invoked after every transition.
func WithObserver(fn func(State)) Option {
	return func(e *Executor) {
		e.onChange = fn
	}
}

func New(action models.Action, session Session, opts ...Option) *Executor {
	e := &Executor{
		action:  action,
		session: session,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ExplorerURL links the submitted transaction, or is empty before submission.
func (e *Executor) ExplorerURL() string {
	st := e.State()
	if st.TxHash == (common.Hash{}) {
		return ""
	}
	return e.session.Chain.TxURL(st.TxHash.Hex())
}

// Execute submits the action and blocks until it is confirmed or fails.
// Calling it while a transaction is in flight, or after a terminal state,
// does nothing.
func (e *Executor) Execute(ctx context.Context) error {
	e.mu.Lock()
	if e.state.Status != Idle {
		e.mu.Unlock()
		return nil
	}
	if e.session.Wallet == nil {
		e.mu.Unlock()
		return ErrNotConnected
	}
	e.state = State{Status: AwaitingWalletConfirmation}
	e.mu.Unlock()
	e.notify(State{Status: AwaitingWalletConfirmation})

	hash, err := e.submit(ctx)
	if err != nil {
		return e.fail(err)
	}
	e.transition(State{Status: AwaitingChainConfirmation, TxHash: hash})

	receipt, err := e.session.Wallet.WaitForReceipt(ctx, hash)
	if err != nil {
		return e.fail(&models.WalletRejectionError{Err: err})
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return e.fail(&models.WalletRejectionError{Err: ErrReverted})
	}

	e.transition(State{Status: Confirmed, TxHash: hash})
	return nil
}

func (e *Executor) submit(ctx context.Context) (common.Hash, error) {
	call, err := BuildRequest(e.action, e.session.Chain.Currency)
	if err != nil {
		return common.Hash{}, err
	}

	var hash common.Hash
	switch e.action.(type) {
	case models.Tip:
		hash, err = e.session.Wallet.SendTransfer(ctx, call.To, call.Value)
	case models.NftSale:
		hash, err = e.session.Wallet.CallContract(ctx, call.To, call.Data, call.Value)
	default:
		return common.Hash{}, models.ErrUnknownActionType
	}
	if err != nil {
		return common.Hash{}, &models.WalletRejectionError{Err: err}
	}
	return hash, nil
}

func (e *Executor) fail(err error) error {
	e.mu.Lock()
	hash := e.state.TxHash
	e.mu.Unlock()

	e.transition(State{Status: Failed, TxHash: hash, Message: FirstLine(err.Error())})
	return err
}

// transition moves to st unless a terminal state was already reached.
func (e *Executor) transition(st State) {
	e.mu.Lock()
	if e.state.Status.Terminal() {
		e.mu.Unlock()
		return
	}
	e.state = st
	e.mu.Unlock()

	e.notify(st)
}

func (e *Executor) notify(st State) {
	if e.onChange != nil {
		e.onChange(st)
	}
}

// FirstLine keeps the first line of an error text, truncated for display.
func FirstLine(msg string) string {
	msg, _, _ = strings.Cut(msg, "\n")
	msg = strings.TrimSpace(msg)

	runes := []rune(msg)
	if len(runes) > maxMessageLen {
		return string(runes[:maxMessageLen-3]) + "..."
	}
	return msg
}
