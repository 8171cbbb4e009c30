package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

func (r *Repository) GetBalanceByAddress(address string) (*domain.Balance, error) {
	query := `
		SELECT amount, created_at, version
		FROM balances WHERE address = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	balance := &domain.Balance{
		Address: address,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, address).Scan(&balance.Amount, &balance.CreatedAt, &balance.Version); err != nil {
		return nil, err
	}

	return balance, nil
}

// Deposit 给某个地址入账，地址不存在时自动建立余额记录
func (r *Repository) Deposit(address string, amount uint64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return depositTx(ctx, r.dbpool, address, amount)
}

// execer 让转账辅助函数既能跑在连接池上也能跑在事务里
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func depositTx(ctx context.Context, db execer, address string, amount uint64) error {
	query := `
		INSERT INTO balances (address, amount)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE
		SET amount = balances.amount + EXCLUDED.amount, version = balances.version + 1
	`

	if _, err := db.ExecContext(ctx, query, address, amount); err != nil {
		return err
	}

	return nil
}

func withdrawTx(ctx context.Context, db execer, address string, amount uint64) error {
	// 余额不足时不更新任何行，而不是让 CHECK 约束报错
	query := `
		UPDATE balances
		SET amount = amount - $1, version = version + 1
		WHERE address = $2 AND amount >= $1
	`

	result, err := db.ExecContext(ctx, query, amount, address)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return vesting.ErrInsufficientBalance
	}

	return nil
}
