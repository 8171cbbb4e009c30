package seed

import (
	"log/slog"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
	"github.com/candela-labs/vesting-ledger/backend/internal/repository"
	"github.com/candela-labs/vesting-ledger/backend/internal/utils"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

// 演示账本里的归属计划，覆盖悬崖期、线性释放期、已全部归属三种阶段，
// 金额刻意取整便于人工核对线性释放的数值
var demoScheduleShapes = []struct {
	totalAmount   uint64
	startOffset   time.Duration // 相对当前时间，负值表示过去
	cliffDuration time.Duration
	totalDuration time.Duration
	paused        bool
}{
	{totalAmount: 1000, startOffset: -time.Hour * 24, cliffDuration: time.Hour * 24 * 30, totalDuration: time.Hour * 24 * 365},
	{totalAmount: 365000, startOffset: -time.Hour * 24 * 100, cliffDuration: time.Hour * 24 * 30, totalDuration: time.Hour * 24 * 365},
	{totalAmount: 5000, startOffset: -time.Hour * 24 * 400, cliffDuration: time.Hour * 24 * 30, totalDuration: time.Hour * 24 * 365},
	{totalAmount: 80000, startOffset: -time.Hour * 24 * 180, cliffDuration: 0, totalDuration: time.Hour * 24 * 360, paused: true},
}

// SeedDemoLedger 建立一个完整的演示账本：一个注册账户、它的管理器、
// 四份不同阶段的归属计划以及一笔初始余额
func SeedDemoLedger(r *repository.Repository, password string, balance uint64, emailDomainName string) {
	account, err := utils.GenerateRandomAccount(password, emailDomainName)
	if err != nil {
		slog.Error("无法生成演示账户", "error", err)
		return
	}

	if err := r.CreateAccount(account); err != nil {
		slog.Error("无法插入演示账户", "error", err)
		return
	}

	if err := r.Deposit(account.Address, balance); err != nil {
		slog.Error("无法为演示账户注资", "error", err)
		return
	}

	manager, err := r.CreateManager(account.Address)
	if err != nil {
		slog.Error("无法初始化演示管理器", "error", err)
		return
	}

	now := time.Now()
	for _, shape := range demoScheduleShapes {
		schedule := &domain.Schedule{
			// 受益人就是 owner 自己，这样演示账户登录后就能直接领取
			Beneficiary:   account.Address,
			TotalAmount:   shape.totalAmount,
			StartTime:     uint64(now.Add(shape.startOffset).Unix()),
			CliffDuration: uint64(shape.cliffDuration.Seconds()),
			TotalDuration: uint64(shape.totalDuration.Seconds()),
		}

		if err := r.CreateSchedule(manager, schedule); err != nil {
			slog.Error("无法插入演示归属计划", "error", err)
			return
		}

		if shape.paused {
			vesting.Pause(schedule)
			if err := r.UpdateScheduleState(schedule); err != nil {
				slog.Error("无法暂停演示归属计划", "error", err)
				return
			}
		}
	}

	slog.Info("演示账本建立成功",
		"address", account.Address,
		"email", account.Email,
		"schedules", len(demoScheduleShapes),
	)
}
