package entity

import "time"

type Poll struct {
	ID        int64
	Question  string
	CreatorID int64
	CreatedAt time.Time
	Options   []Option
}

type Option struct {
	ID     int64
	PollID int64
	Text   string
}
