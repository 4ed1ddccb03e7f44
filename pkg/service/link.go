package service

import (
	"context"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/devesh1011/EtherBlinks/pkg/executor"
	"github.com/devesh1011/EtherBlinks/pkg/link"
)

type LinkService struct {
	encoder  link.Encoder
	resolver link.Resolver
	baseURL  string
	chain    chain.Config
}

func NewLinkService(encoder link.Encoder, resolver link.Resolver, baseURL string, cfg chain.Config) *LinkService {
	return &LinkService{
		encoder:  encoder,
		resolver: resolver,
		baseURL:  baseURL,
		chain:    cfg,
	}
}

// EncodeLink returns the full shareable URL of a.
func (s *LinkService) EncodeLink(ctx context.Context, a models.Action) (string, error) {
	token, err := s.encoder.Encode(ctx, a)
	if err != nil {
		return "", err
	}
	return link.URL(s.baseURL, token), nil
}

func (s *LinkService) ResolveLink(ctx context.Context, token string) (models.Action, error) {
	return s.resolver.Resolve(ctx, token)
}

func (s *LinkService) Present(a models.Action) models.Metadata {
	return Present(a, s.chain.Currency.Symbol)
}

// Request builds the call a browser wallet is asked to sign for a.
func (s *LinkService) Request(a models.Action) (models.TransactionRequest, error) {
	call, err := executor.BuildRequest(a, s.chain.Currency)
	if err != nil {
		return models.TransactionRequest{}, err
	}
	return call.Request(s.chain.ID), nil
}
