package repository

import (
	"context"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/jmoiron/sqlx"
)

type Action interface {
	CreateAction(ctx context.Context, rec models.ActionRecord) (models.ActionRecord, error)
	GetActionByShortID(ctx context.Context, shortID string) (models.ActionRecord, error)
}

type Repository struct {
	Action
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Action: NewActionPostgres(db),
		db:     db,
	}
}

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
