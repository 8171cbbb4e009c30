package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/candela-labs/vesting-ledger/backend/internal/config"
	"github.com/candela-labs/vesting-ledger/backend/internal/repository"
	"github.com/candela-labs/vesting-ledger/backend/internal/seed"
	"github.com/candela-labs/vesting-ledger/backend/internal/utils"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const seedEmailDomain = "candela.dev"

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机账户并注资, 2: 为随机账户初始化管理器, 3: 为每个管理器插入随机归属计划, 4: 建立演示账本)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool, vesting.SystemClock{})

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的账户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				// 每个账户一个独立的随机密码，打印出来方便登录演示
				password := utils.GenerateRandomPassword(16)
				account, err := utils.GenerateRandomAccount(password, seedEmailDomain)
				if err != nil {
					slog.Error("无法生成随机账户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateAccount(account); err != nil {
					slog.Error("无法插入账户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.Deposit(account.Address, cfg.Seed.Account.Balance); err != nil {
					slog.Error("无法为账户注资", slog.String("error", err.Error()))
					continue
				}

				slog.Info("插入账户", slog.String("address", account.Address), slog.String("password", password))
				cnt--
			}

			slog.Info("插入账户成功", slog.Int("count", n-cnt))
		}
	case 2:
		// 为还没有管理器的账户初始化管理器
		accounts, err := repo.GetAllAccounts()
		if err != nil {
			slog.Error("无法获取所有账户", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, account := range accounts {
			if _, err := repo.GetManagerByOwner(account.Address); err == nil {
				continue
			}

			if _, err := repo.CreateManager(account.Address); err != nil {
				slog.Error("无法初始化管理器", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("初始化管理器成功", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的归属计划数量")
			return
		}

		accounts, err := repo.GetAllAccounts()
		if err != nil {
			slog.Error("无法获取所有账户", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, account := range accounts {
			manager, err := repo.GetManagerByOwner(account.Address)
			if err != nil {
				continue
			}

			for i := 0; i < n; i++ {
				// 一半的计划以 owner 自己为受益人，方便演示领取流程
				beneficiary := account.Address
				if rand.Intn(2) == 0 {
					beneficiary = accounts[rand.Intn(len(accounts))].Address
				}

				schedule := utils.GenerateRandomSchedule(account.Address, beneficiary)
				if err := repo.CreateSchedule(manager, schedule); err != nil {
					slog.Error("无法插入归属计划", slog.String("error", err.Error()))
					continue
				}

				cnt++
			}
		}

		slog.Info("插入归属计划成功", slog.Int("count", cnt))
	case 4:
		seed.SeedDemoLedger(repo, cfg.Seed.Account.Password, cfg.Seed.Account.Balance, seedEmailDomain)
	default:
		slog.Error("指定的操作非法")
	}
}
