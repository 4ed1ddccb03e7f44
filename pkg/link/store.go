package link

import (
	"context"
	"strings"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RecordStore is the persistence seam of the store-backed strategy.
type RecordStore interface {
	CreateAction(ctx context.Context, a models.Action) (models.ActionRecord, error)
	GetAction(ctx context.Context, shortID string) (models.ActionRecord, error)
}

// Store is the store-backed codec. Tokens are "{actionType}-{shortId}" and
// carry no payload of their own.
type Store struct {
	records RecordStore
}

func NewStore(records RecordStore) *Store {
	return &Store{records: records}
}

func (s *Store) Encode(ctx context.Context, a models.Action) (string, error) {
	rec, err := s.records.CreateAction(ctx, a)
	if err != nil {
		var swe *models.StoreWriteError
		if errors.As(err, &swe) {
			return "", err
		}
		return "", &models.StoreWriteError{Err: err}
	}
	return StoreToken(rec.ActionType, rec.ShortID), nil
}

func (s *Store) Resolve(ctx context.Context, token string) (models.Action, error) {
	hint, shortID, err := SplitStoreToken(token)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.GetAction(ctx, shortID)
	if err != nil {
		if errors.Is(err, models.ErrActionNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(models.ErrActionNotFound, err.Error())
	}

	if rec.ActionType != hint {
		logrus.WithFields(logrus.Fields{
			"short_id":    shortID,
			"url_type":    hint,
			"record_type": rec.ActionType,
		}).Warn("action type in link disagrees with stored record")
	}

	return rec.Action()
}

// StoreToken composes the token of a stored record.
func StoreToken(t models.ActionType, shortID string) string {
	return string(t) + "-" + shortID
}

// SplitStoreToken splits a token on its first "-".
func SplitStoreToken(token string) (models.ActionType, string, error) {
	hint, shortID, ok := strings.Cut(token, "-")
	if !ok || hint == "" || shortID == "" {
		return "", "", models.ErrMalformedLink
	}
	return models.ActionType(hint), shortID, nil
}
