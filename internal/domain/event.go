package domain

// 发往 vesting_events 队列的事件，消费者（notifier）不会被核心逻辑读回
type EventMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type ScheduleCreatedEventData struct {
	Owner       string `json:"owner"`
	Beneficiary string `json:"beneficiary"`
	TotalAmount uint64 `json:"totalAmount"`
	StartTime   uint64 `json:"startTime"`
}

type ClaimSettledEventData struct {
	Beneficiary string `json:"beneficiary"`
	Amount      uint64 `json:"amount"`
	ClaimedAt   uint64 `json:"claimedAt"`
}
