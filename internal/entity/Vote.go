package entity

import "time"

type Vote struct {
	ID        int64
	PollID    int64
	OptionID  int64
	UserID    int64
	CreatedAt time.Time
}
