package domain

import "time"

type Balance struct {
	Address   string    `json:"address"`
	Amount    uint64    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
