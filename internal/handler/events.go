package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

const eventQueueName = "vesting_events"

// publishEvent 在数据库事务提交成功之后把事件发到消息队列，至少一次投递，
// 核心逻辑不会读回这些事件
func (h *Handler) publishEvent(eventType string, data any) error {
	message := domain.EventMessage{
		Type: eventType,
		Data: data,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.eventChannel.PublishWithContext(
		ctx,
		"",
		eventQueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
