// Package client is a Go client for the EtherBlinks HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer of the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) CreateLink(ctx context.Context, in models.CreateActionInput) (models.CreateActionResponse, error) {
	var out models.CreateActionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		SetError(&APIError{}).
		Post("/api/create-action")
	if err := check(resp, err); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return models.CreateActionResponse{}, &models.ValidationError{Field: "request", Reason: apiErr.Message}
		}
		return models.CreateActionResponse{}, err
	}
	return out, nil
}

// CreateAction stores a on the server. It lets the client back a link.Store.
func (c *Client) CreateAction(ctx context.Context, a models.Action) (models.ActionRecord, error) {
	in := inputOf(a)
	out, err := c.CreateLink(ctx, in)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return models.ActionRecord{}, err
		}
		return models.ActionRecord{}, &models.StoreWriteError{Err: err}
	}

	rec, err := models.NewActionRecord(a)
	if err != nil {
		return models.ActionRecord{}, err
	}
	rec.ID = out.ID
	rec.ShortID = out.ShortID
	return rec, nil
}

func (c *Client) GetAction(ctx context.Context, shortID string) (models.ActionRecord, error) {
	var out models.ActionRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("shortId", shortID).
		SetResult(&out).
		SetError(&APIError{}).
		Get("/api/execute/{shortId}")
	if err := check(resp, err); err != nil {
		if resp != nil && resp.StatusCode() == http.StatusNotFound {
			return models.ActionRecord{}, errors.Wrapf(models.ErrActionNotFound, "short id %q", shortID)
		}
		return models.ActionRecord{}, err
	}
	return out, nil
}

func (c *Client) TransactionStatus(ctx context.Context, hash string) (models.TransactionStatus, error) {
	var out models.TransactionStatus
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("hash", hash).
		SetResult(&out).
		SetError(&APIError{}).
		Get("/api/tx/{hash}")
	if err := check(resp, err); err != nil {
		return models.TransactionStatus{}, err
	}
	return out, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Wrap(err, "request")
	}
	if !resp.IsError() {
		return nil
	}

	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr.Message == "" {
		apiErr = &APIError{Message: http.StatusText(resp.StatusCode())}
	}
	apiErr.StatusCode = resp.StatusCode()
	return apiErr
}

func inputOf(a models.Action) models.CreateActionInput {
	in := models.CreateActionInput{ActionType: a.Type(), Description: a.Desc()}
	switch v := a.(type) {
	case models.Tip:
		in.RecipientAddress = v.RecipientAddress
		in.TipAmountEth = v.AmountNative
	case models.NftSale:
		in.ContractAddress = v.ContractAddress
		in.TokenID = v.TokenID
		in.Price = v.PriceNative
	}
	return in
}
