package repository

import (
	"context"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

func (r *Repository) CreateSchedule(manager *domain.Manager, schedule *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先锁住 manager 行，避免并发追加时出现重复的序号
	query := `SELECT version FROM managers WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, manager.ID).Scan(&manager.Version); err != nil {
		return err
	}

	query = `SELECT COALESCE(MAX(seq) + 1, 0) FROM schedules WHERE manager_id = $1`
	if err := tx.QueryRowContext(ctx, query, manager.ID).Scan(&schedule.Seq); err != nil {
		return err
	}

	query = `
		INSERT INTO schedules (manager_id, seq, beneficiary, total_amount, start_time, cliff_duration, total_duration, claimed_amount, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)
		RETURNING id, claimed_amount, created_at, version
	`

	args := []any{
		manager.ID,
		schedule.Seq,
		schedule.Beneficiary,
		schedule.TotalAmount,
		schedule.StartTime,
		schedule.CliffDuration,
		schedule.TotalDuration,
		domain.ScheduleStateActive,
	}
	dst := []any{&schedule.ID, &schedule.ClaimedAmount, &schedule.CreatedAt, &schedule.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	schedule.Owner = manager.Owner
	schedule.State = domain.ScheduleStateActive

	return nil
}

func (r *Repository) UpdateScheduleState(schedule *domain.Schedule) error {
	query := `
		UPDATE schedules
		SET
			state = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, schedule.State, schedule.ID, schedule.Version).Scan(&schedule.Version); err != nil {
		return err
	}

	return nil
}
