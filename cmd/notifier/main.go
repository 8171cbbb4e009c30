package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/candela-labs/vesting-ledger/backend/internal/config"
	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
	"github.com/candela-labs/vesting-ledger/backend/internal/repository"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接数据库（用于把事件中的地址解析成账户邮箱）
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool, vesting.SystemClock{})

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	q, err := ch.QueueDeclare(
		"vesting_events", // 队列名称
		true,             // 是否持久化
		false,            // 是否自动删除，设置为 false 可以避免没有消费者的时候自动删除队列
		false,            // 是否独占，即是否允许多个消费者访问这个队列
		false,            // 是否不等待，设置为 false，即等待 RabbitMQ 确认队列是否创建成功
		nil,              // 额外参数
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name, // 队列
		"",     // 消费者标识，设置为空字符串，表示由 RabbitMQ 自动分配
		false,  // 是否自动确认消息
		false,  // 是否独占队列
		false,  // 是否禁止消费者接受自己发送的消息，必须设置为 false，因为 RabbitMQ 不支持这个参数
		false,  // 是否不等待，等待 RabbitMQ 响应
		nil,    // 额外参数
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("收到事件", slog.String("message", string(msg.Body)))

				// 对事件反序列化，Data 留到确定类型后再解析
				var envelope struct {
					Type string          `json:"type"`
					Data json.RawMessage `json:"data"`
				}
				if err := json.Unmarshal(msg.Body, &envelope); err != nil {
					logger.Error("事件反序列化失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// 根据事件类型解析数据并确定收件人
				var beneficiary string
				var subject string
				var templateFile string
				var templateData any

				switch envelope.Type {
				case "schedule_created":
					data := domain.ScheduleCreatedEventData{}
					if err := json.Unmarshal(envelope.Data, &data); err != nil {
						logger.Error("事件数据解析失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					beneficiary = data.Beneficiary
					subject = "归属账本 - 新的归属计划"
					templateFile = "./templates/schedule_created_email.html"
					templateData = data
				case "claim_settled":
					data := domain.ClaimSettledEventData{}
					if err := json.Unmarshal(envelope.Data, &data); err != nil {
						logger.Error("事件数据解析失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					beneficiary = data.Beneficiary
					subject = "归属账本 - 领取回执"
					templateFile = "./templates/claim_settled_email.html"
					templateData = data
				default:
					logger.Error("不支持的事件类型", slog.String("type", envelope.Type))
					_ = msg.Nack(false, false)
					continue
				}

				// 事件里只有地址，邮箱要查账户表；没有对应账户时跳过通知
				account, err := repo.GetAccountByAddress(beneficiary)
				if err != nil {
					switch {
					case errors.Is(err, sql.ErrNoRows):
						logger.Info("受益人没有注册账户，跳过通知", slog.String("beneficiary", beneficiary))
						_ = msg.Ack(false)
					default:
						logger.Error("查询受益人账户失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, true)
					}
					continue
				}

				// 构建邮件
				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("无法设置邮件发件人", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(account.Email); err != nil {
					logger.Error("无法设置邮件收件人", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, err := template.ParseFiles(templateFile)
				if err != nil {
					logger.Error("无法解析邮件模板", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, templateData); err != nil {
					logger.Error("无法设置邮件正文", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(subject)

				// 发送邮件
				if err := client.DialAndSend(m); err != nil {
					logger.Error("邮件发送失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // 将消息重新入队
					continue
				}

				// 确认消息
				_ = msg.Ack(false)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待事件...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	slog.Info("正在关闭 notifier...")
	cancel()
	wg.Wait() // 等待所有 goroutine 完成
	slog.Info("notifier 已成功关闭")
}
