package domain

import (
	"time"
)

type ScheduleState string

const (
	ScheduleStateActive    ScheduleState = "生效中"
	ScheduleStatePaused    ScheduleState = "已暂停"
	ScheduleStateCompleted ScheduleState = "已领完"
)

// Schedule 表示一笔归属计划，除 ClaimedAmount 和 State 之外的字段在创建后不可变
type Schedule struct {
	ID            int64         `json:"id"`
	Owner         string        `json:"owner"`
	Seq           int32         `json:"seq"` // 在 Manager 中的序号，从 0 开始，作为暂停/恢复操作的稳定标识
	Beneficiary   string        `json:"beneficiary"`
	TotalAmount   uint64        `json:"totalAmount"`
	StartTime     uint64        `json:"startTime"`     // Unix 秒
	CliffDuration uint64        `json:"cliffDuration"` // 秒
	TotalDuration uint64        `json:"totalDuration"` // 秒
	ClaimedAmount uint64        `json:"claimedAmount"`
	State         ScheduleState `json:"state"`
	CreatedAt     time.Time     `json:"createdAt"`
	Version       int32         `json:"-"`
}
