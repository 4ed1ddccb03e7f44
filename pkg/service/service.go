package service

import (
	"context"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/cache"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/devesh1011/EtherBlinks/pkg/chainclient"
	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/devesh1011/EtherBlinks/pkg/repository"
	"github.com/devesh1011/EtherBlinks/pkg/utils"
)

const (
	StrategyStore  = "store"
	StrategyInline = "inline"
)

type Action interface {
	CreateAction(ctx context.Context, a models.Action) (models.ActionRecord, error)
	GetAction(ctx context.Context, shortID string) (models.ActionRecord, error)
	CreateLink(ctx context.Context, in models.CreateActionInput) (models.CreateActionResponse, error)
}

type Link interface {
	EncodeLink(ctx context.Context, a models.Action) (string, error)
	ResolveLink(ctx context.Context, token string) (models.Action, error)
	Present(a models.Action) models.Metadata
	Request(a models.Action) (models.TransactionRequest, error)
}

type Transaction interface {
	TransactionStatus(ctx context.Context, hash string) (models.TransactionStatus, error)
}

type Health interface {
	Ping(ctx context.Context) error
}

type Service struct {
	Action
	Link
	Transaction
	Health
	Chain chain.Config
}

// Options carries the collaborators and settings NewService wires together.
// Zero values fall back to a disabled cache, no notifications and the
// store-backed link strategy.
type Options struct {
	BaseURL  string
	Strategy string
	Chain    chain.Config
	Cache    cache.Records
	Notifier utils.Notifier
	Receipts chainclient.ReceiptReader
}

func NewService(repos *repository.Repository, opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.Notifier == nil {
		opts.Notifier = utils.NopNotifier{}
	}

	actions := NewActionService(repos.Action, opts.Cache, opts.Notifier, opts.BaseURL)
	store := link.NewStore(actions)

	var encoder link.Encoder = store
	if opts.Strategy == StrategyInline {
		encoder = link.Inline{}
	}

	return &Service{
		Action:      actions,
		Link:        NewLinkService(encoder, link.Dispatch{Store: store, Inline: link.Inline{}}, opts.BaseURL, opts.Chain),
		Transaction: NewTransactionService(opts.Receipts, opts.Chain),
		Health:      repos,
		Chain:       opts.Chain,
	}
}
