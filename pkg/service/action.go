package service

import (
	"context"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/cache"
	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/devesh1011/EtherBlinks/pkg/repository"
	"github.com/devesh1011/EtherBlinks/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	shortIDAttempts = 3
	notifyTimeout   = 30 * time.Second
)

type ActionService struct {
	repo     repository.Action
	cache    cache.Records
	notifier utils.Notifier
	baseURL  string

	newShortID func() (string, error)
}

func NewActionService(repo repository.Action, records cache.Records, notifier utils.Notifier, baseURL string) *ActionService {
	return &ActionService{
		repo:       repo,
		cache:      records,
		notifier:   notifier,
		baseURL:    baseURL,
		newShortID: utils.NewShortID,
	}
}

// CreateAction persists a under a fresh short id. A colliding short id is
// regenerated a few times before giving up.
func (s *ActionService) CreateAction(ctx context.Context, a models.Action) (models.ActionRecord, error) {
	rec, err := models.NewActionRecord(a)
	if err != nil {
		return models.ActionRecord{}, err
	}

	for attempt := 1; ; attempt++ {
		rec.ShortID, err = s.newShortID()
		if err != nil {
			return models.ActionRecord{}, &models.StoreWriteError{Err: err}
		}

		saved, err := s.repo.CreateAction(ctx, rec)
		if err == nil {
			s.cache.Set(ctx, saved)
			return saved, nil
		}
		if !errors.Is(err, repository.ErrDuplicateShortID) || attempt == shortIDAttempts {
			return models.ActionRecord{}, err
		}
		logrus.WithField("short_id", rec.ShortID).Warn("short id collision, retrying")
	}
}

func (s *ActionService) GetAction(ctx context.Context, shortID string) (models.ActionRecord, error) {
	if rec, ok := s.cache.Get(ctx, shortID); ok {
		return rec, nil
	}

	rec, err := s.repo.GetActionByShortID(ctx, shortID)
	if err != nil {
		return models.ActionRecord{}, err
	}
	s.cache.Set(ctx, rec)
	return rec, nil
}

// CreateLink validates the input, stores the action and returns its
// shareable URL. The operator notification runs in the background and its
// failure never fails the request.
func (s *ActionService) CreateLink(ctx context.Context, in models.CreateActionInput) (models.CreateActionResponse, error) {
	if err := in.Validate(); err != nil {
		return models.CreateActionResponse{}, err
	}

	a, err := in.Action()
	if err != nil {
		return models.CreateActionResponse{}, err
	}

	rec, err := s.CreateAction(ctx, a)
	if err != nil {
		return models.CreateActionResponse{}, err
	}

	shortURL := link.URL(s.baseURL, link.StoreToken(rec.ActionType, rec.ShortID))
	go s.notify(rec, shortURL)

	return models.CreateActionResponse{
		ID:       rec.ID,
		ShortID:  rec.ShortID,
		ShortURL: shortURL,
	}, nil
}

func (s *ActionService) notify(rec models.ActionRecord, shortURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.ActionCreated(ctx, rec, shortURL); err != nil {
		logrus.WithError(err).WithField("short_id", rec.ShortID).Error("action created notification failed")
	}
}
