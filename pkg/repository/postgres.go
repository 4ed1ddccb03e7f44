package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const actionsTable = "actions"

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

func (cfg Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DBName, cfg.Password, cfg.SSLMode)
}

func NewPostgresDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// EnsureSchema creates the actions table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	ddl := `
CREATE TABLE IF NOT EXISTS ` + actionsTable + ` (
  id UUID PRIMARY KEY,
  short_id TEXT NOT NULL UNIQUE,
  action_type TEXT NOT NULL,

  recipient_address TEXT NULL,
  tip_amount_eth TEXT NULL,

  contract_address TEXT NULL,
  token_id TEXT NULL,
  price TEXT NULL,

  description TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	_, err := db.ExecContext(ctx, ddl)
	return errors.Wrap(err, "ensure schema")
}
