package repository

import (
	"context"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

func (r *Repository) CreateManager(owner string) (*domain.Manager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO managers (owner)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	manager := &domain.Manager{
		Owner:     owner,
		Schedules: make([]*domain.Schedule, 0),
	}

	if err := r.dbpool.QueryRowContext(ctx, query, owner).Scan(&manager.ID, &manager.CreatedAt, &manager.Version); err != nil {
		return nil, err
	}

	return manager, nil
}

func (r *Repository) GetManagerByOwner(owner string) (*domain.Manager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, created_at, version
		FROM managers WHERE owner = $1
	`

	manager := &domain.Manager{
		Owner: owner,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, owner).Scan(&manager.ID, &manager.CreatedAt, &manager.Version); err != nil {
		return nil, err
	}

	// 计划按照序号升序返回，序号是暂停/恢复操作的稳定标识
	query = `
		SELECT id, seq, beneficiary, total_amount, start_time, cliff_duration, total_duration, claimed_amount, state, created_at, version
		FROM schedules
		WHERE manager_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, manager.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	manager.Schedules = make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule := &domain.Schedule{
			Owner: owner,
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

	return manager, nil
}
