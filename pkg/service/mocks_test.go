package service

import (
	"context"
	"sync"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) CreateAction(ctx context.Context, rec models.ActionRecord) (models.ActionRecord, error) {
	args := m.Called(ctx, rec)
	if fn, ok := args.Get(0).(func(context.Context, models.ActionRecord) models.ActionRecord); ok {
		return fn(ctx, rec), args.Error(1)
	}
	return args.Get(0).(models.ActionRecord), args.Error(1)
}

func (m *repoMock) GetActionByShortID(ctx context.Context, shortID string) (models.ActionRecord, error) {
	args := m.Called(ctx, shortID)
	return args.Get(0).(models.ActionRecord), args.Error(1)
}

type notifierMock struct {
	mu    sync.Mutex
	err   error
	links []string
	sent  chan struct{}
}

func newNotifierMock(err error) *notifierMock {
	return &notifierMock{err: err, sent: make(chan struct{}, 8)}
}

func (n *notifierMock) ActionCreated(_ context.Context, _ models.ActionRecord, link string) error {
	n.mu.Lock()
	n.links = append(n.links, link)
	n.mu.Unlock()
	n.sent <- struct{}{}
	return n.err
}

type receiptsMock struct {
	receipts map[common.Hash]*types.Receipt
	err      error
}

func (r receiptsMock) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return rec, nil
}
