package repository

import (
	"database/sql"

	"github.com/candela-labs/vesting-ledger/backend/internal/config"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	clock  vesting.Clock
}

func NewRepository(cfg *config.Config, dbpool *sql.DB, clock vesting.Clock) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		clock:  clock,
	}
}
