package repository

import (
	"context"
	"database/sql"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

// ErrDuplicateShortID is returned when a generated short id is already taken.
var ErrDuplicateShortID = errors.New("short id already exists")

type ActionPostgres struct {
	db *sqlx.DB
}

func NewActionPostgres(db *sqlx.DB) *ActionPostgres {
	return &ActionPostgres{db: db}
}

// CreateAction inserts the record and returns it with id and created_at set.
func (r *ActionPostgres) CreateAction(ctx context.Context, rec models.ActionRecord) (models.ActionRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
        INSERT INTO ` + actionsTable + ` (id, short_id, action_type, recipient_address, tip_amount_eth, contract_address, token_id, price, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at
    `
	err := r.db.QueryRowxContext(ctx, query,
		rec.ID,
		rec.ShortID,
		rec.ActionType,
		rec.RecipientAddress,
		rec.TipAmountEth,
		rec.ContractAddress,
		rec.TokenID,
		rec.Price,
		rec.Description,
	).Scan(&rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			err = errors.Wrap(ErrDuplicateShortID, rec.ShortID)
		}
		return models.ActionRecord{}, &models.StoreWriteError{Err: err}
	}
	return rec, nil
}

func (r *ActionPostgres) GetActionByShortID(ctx context.Context, shortID string) (models.ActionRecord, error) {
	var rec models.ActionRecord
	query := `SELECT id, short_id, action_type, recipient_address, tip_amount_eth, contract_address, token_id, price, description, created_at FROM ` + actionsTable + ` WHERE short_id = $1`
	err := r.db.GetContext(ctx, &rec, query, shortID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ActionRecord{}, errors.Wrapf(models.ErrActionNotFound, "short id %q", shortID)
		}
		return models.ActionRecord{}, errors.Wrap(err, "select action")
	}
	return rec, nil
}
