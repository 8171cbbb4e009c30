package domain

import (
	"time"
)

type Account struct {
	ID           int64     `json:"id"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
