package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

// SettleClaim 在一个可串行化事务中完成一次领取：
// 锁住调用者名下管理器的全部计划，结算出各计划的变动，
// 落库后从金库转账给受益人。任何一步失败整个事务回滚，
// 调用方只会观察到失败的种类而不会观察到部分写入
func (r *Repository) SettleClaim(beneficiary string) (*vesting.SettlementResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 领取只会作用在调用者自己名下的管理器上
	query := `SELECT id, created_at, version FROM managers WHERE owner = $1 FOR UPDATE`

	manager := &domain.Manager{
		Owner: beneficiary,
	}
	if err := tx.QueryRowContext(ctx, query, beneficiary).Scan(&manager.ID, &manager.CreatedAt, &manager.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT id, seq, beneficiary, total_amount, start_time, cliff_duration, total_duration, claimed_amount, state, created_at, version
		FROM schedules
		WHERE manager_id = $1
		ORDER BY seq ASC
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, manager.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	manager.Schedules = make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule := &domain.Schedule{
			Owner: manager.Owner,
		}
		dst := []any{
			&schedule.ID,
			&schedule.Seq,
			&schedule.Beneficiary,
			&schedule.TotalAmount,
			&schedule.StartTime,
			&schedule.CliffDuration,
			&schedule.TotalDuration,
			&schedule.ClaimedAmount,
			&schedule.State,
			&schedule.CreatedAt,
			&schedule.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		manager.Schedules = append(manager.Schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 一次事务内只取一次时间，贯穿整个结算
	now := r.clock.Now()

	result, err := vesting.Settle(manager, beneficiary, now)
	if err != nil {
		return nil, err
	}

	query = `
		UPDATE schedules
		SET claimed_amount = $1, state = $2, version = version + 1
		WHERE id = $3
	`
	for _, entry := range result.Entries {
		if _, err := tx.ExecContext(ctx, query, entry.NewClaimedAmount, entry.NewState, entry.ScheduleID); err != nil {
			return nil, err
		}
	}

	// 资产转移与计划状态的变更在同一个事务中，总量守恒
	if err := withdrawTx(ctx, tx, r.cfg.Treasury.Address, result.Total); err != nil {
		return nil, err
	}
	if err := depositTx(ctx, tx, beneficiary, result.Total); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}
