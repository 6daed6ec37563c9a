package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/akazakov/polls-api/internal/storage"
)

//go:generate mockgen -source=polls.go -destination=../mocks/polls.go -package=mocks

var (
	ErrValidation   = errors.New("validation error")
	ErrPollNotFound = errors.New("poll not found")
	ErrForbidden    = errors.New("poll does not belong to user")
	ErrAlreadyVoted = errors.New("vote already cast in this poll")
)

const DefaultMaxPageSize = 100

type Polls struct {
	log           *slog.Logger
	pollStorage   PollStorage
	voteStorage   VoteStorage
	resultStorage ResultStorage
	maxPageSize   int
}

type PollStorage interface {
	SavePoll(ctx context.Context, question string, creatorID int64, options []string) (entity.Poll, error)
	GetPollByID(ctx context.Context, id int64) (entity.Poll, error)
	GetPolls(ctx context.Context, skip, limit int) ([]entity.Poll, error)
	DeletePoll(ctx context.Context, id int64) error
}

type VoteStorage interface {
	SaveVote(ctx context.Context, pollID, optionID, userID int64) (entity.Vote, error)
}

type ResultStorage interface {
	GetPollResults(ctx context.Context, pollID int64) ([]entity.OptionResult, error)
}

func NewPolls(
	log *slog.Logger,
	pollStorage PollStorage,
	voteStorage VoteStorage,
	resultStorage ResultStorage,
	maxPageSize int,
) *Polls {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &Polls{
		log:           log,
		pollStorage:   pollStorage,
		voteStorage:   voteStorage,
		resultStorage: resultStorage,
		maxPageSize:   maxPageSize,
	}
}

// CreatePoll validates the question with its options and stores the poll
// atomically. Options are immutable after this point.
func (p *Polls) CreatePoll(ctx context.Context, question string, options []string, creatorID int64) (entity.Poll, error) {
	const op = "polls.CreatePoll"

	log := p.log.With(slog.String("op", op))

	if strings.TrimSpace(question) == "" {
		return entity.Poll{}, fmt.Errorf("%w: question is empty", ErrValidation)
	}
	if len(options) < 2 {
		return entity.Poll{}, fmt.Errorf("%w: poll needs at least two options", ErrValidation)
	}
	for _, text := range options {
		if strings.TrimSpace(text) == "" {
			return entity.Poll{}, fmt.Errorf("%w: option text is empty", ErrValidation)
		}
	}

	poll, err := p.pollStorage.SavePoll(ctx, question, creatorID, options)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("poll created", slog.Int64("pollID", poll.ID), slog.Int64("creatorID", creatorID))

	return poll, nil
}

func (p *Polls) GetPollByID(ctx context.Context, id int64) (entity.Poll, error) {
	const op = "polls.GetPollByID"

	poll, err := p.pollStorage.GetPollByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

// GetPolls returns a page of polls in creation order. A limit above the
// configured maximum is capped; a skip past the end yields an empty page.
func (p *Polls) GetPolls(ctx context.Context, skip, limit int) ([]entity.Poll, error) {
	const op = "polls.GetPolls"

	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", ErrValidation)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrValidation)
	}
	if limit > p.maxPageSize {
		limit = p.maxPageSize
	}

	polls, err := p.pollStorage.GetPolls(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

// DeletePoll removes the poll with its options and votes in one storage
// transaction. Only the creator may delete a poll.
func (p *Polls) DeletePoll(ctx context.Context, id, userID int64) error {
	const op = "polls.DeletePoll"

	log := p.log.With(slog.String("op", op))

	poll, err := p.pollStorage.GetPollByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if poll.CreatorID != userID {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err := p.pollStorage.DeletePoll(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("poll deleted", slog.Int64("pollID", id), slog.Int64("userID", userID))

	return nil
}

// CastVote records a single vote for the user in the poll. There is no
// read-then-write duplicate check: the storage uniqueness constraint is
// the sole arbiter, so concurrent duplicates surface as ErrAlreadyVoted.
func (p *Polls) CastVote(ctx context.Context, pollID, optionID, userID int64) (entity.Vote, error) {
	const op = "polls.CastVote"

	log := p.log.With(slog.String("op", op))

	poll, err := p.pollStorage.GetPollByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return entity.Vote{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	belongs := false
	for _, option := range poll.Options {
		if option.ID == optionID {
			belongs = true
			break
		}
	}
	if !belongs {
		return entity.Vote{}, fmt.Errorf("%w: option %d does not belong to poll %d", ErrValidation, optionID, pollID)
	}

	vote, err := p.voteStorage.SaveVote(ctx, pollID, optionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrVoteExists):
			return entity.Vote{}, fmt.Errorf("%s: %w", op, ErrAlreadyVoted)
		case errors.Is(err, storage.ErrOptionNotFound):
			return entity.Vote{}, fmt.Errorf("%w: option %d does not belong to poll %d", ErrValidation, optionID, pollID)
		case errors.Is(err, storage.ErrPollNotFound):
			return entity.Vote{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("vote cast", slog.Int64("pollID", pollID), slog.Int64("optionID", optionID), slog.Int64("userID", userID))

	return vote, nil
}

// GetResults aggregates vote counts per option with a fresh grouped count
// query. Options with zero votes are included.
func (p *Polls) GetResults(ctx context.Context, pollID int64) (entity.PollResults, error) {
	const op = "polls.GetResults"

	poll, err := p.pollStorage.GetPollByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}

	results, err := p.resultStorage.GetPollResults(ctx, pollID)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}

	return entity.PollResults{
		PollID:   poll.ID,
		Question: poll.Question,
		Results:  results,
	}, nil
}
