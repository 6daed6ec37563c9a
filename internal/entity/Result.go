package entity

type OptionResult struct {
	OptionID  int64
	Text      string
	VoteCount int64
}

type PollResults struct {
	PollID   int64
	Question string
	Results  []OptionResult
}
