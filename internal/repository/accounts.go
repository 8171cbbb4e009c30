package repository

import (
	"context"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

func (r *Repository) CreateAccount(account *domain.Account) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO accounts (address, password_hash, full_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{account.Address, account.PasswordHash, account.FullName, account.Email}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&account.ID, &account.CreatedAt, &account.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAccountByAddress(address string) (*domain.Account, error) {
	query := `
		SELECT id, password_hash, full_name, email, created_at, version
		FROM accounts WHERE address = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	account := &domain.Account{
		Address: address,
	}

	dst := []any{&account.ID, &account.PasswordHash, &account.FullName, &account.Email, &account.CreatedAt, &account.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, address).Scan(dst...); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *Repository) GetAllAccounts() ([]*domain.Account, error) {
	query := `
		SELECT id, address, password_hash, full_name, email, created_at, version FROM accounts
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account := &domain.Account{}
		dst := []any{&account.ID, &account.Address, &account.PasswordHash, &account.FullName, &account.Email, &account.CreatedAt, &account.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}
