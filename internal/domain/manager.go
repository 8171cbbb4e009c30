package domain

import "time"

// Manager 是某个 owner 名下所有归属计划的集合，计划只追加不删除
type Manager struct {
	ID        int64       `json:"id"`
	Owner     string      `json:"owner"`
	Schedules []*Schedule `json:"schedules"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
