package entity

import "time"

type User struct {
	ID        int64
	Username  string
	PassHash  []byte
	CreatedAt time.Time
}
