package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/akazakov/polls-api/internal/storage"
)

type voteKey struct {
	pollID int64
	userID int64
}

// Storage keeps everything behind one mutex and honors the same
// contract as the postgres implementation: identical sentinel errors,
// vote uniqueness per (poll, user), options bound to their poll.
type Storage struct {
	mu        sync.Mutex
	polls     map[int64]entity.Poll
	pollOrder []int64
	votes     map[int64]entity.Vote
	voted     map[voteKey]bool
	users     map[int64]entity.User
	usernames map[string]int64
	pollSeq   int64
	optionSeq int64
	voteSeq   int64
	userSeq   int64
}

func New() *Storage {
	return &Storage{
		polls:     make(map[int64]entity.Poll),
		votes:     make(map[int64]entity.Vote),
		voted:     make(map[voteKey]bool),
		users:     make(map[int64]entity.User),
		usernames: make(map[string]int64),
	}
}

func (s *Storage) Stop() error {
	return nil
}

func (s *Storage) SavePoll(ctx context.Context, question string, creatorID int64, options []string) (entity.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pollSeq++
	poll := entity.Poll{
		ID:        s.pollSeq,
		Question:  question,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
		Options:   make([]entity.Option, 0, len(options)),
	}
	for _, text := range options {
		s.optionSeq++
		poll.Options = append(poll.Options, entity.Option{
			ID:     s.optionSeq,
			PollID: poll.ID,
			Text:   text,
		})
	}

	s.polls[poll.ID] = poll
	s.pollOrder = append(s.pollOrder, poll.ID)

	return poll, nil
}

func (s *Storage) GetPollByID(ctx context.Context, id int64) (entity.Poll, error) {
	const op = "storage.memory.GetPollByID"

	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[id]
	if !ok {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
	}
	return poll, nil
}

func (s *Storage) GetPolls(ctx context.Context, skip, limit int) ([]entity.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls := make([]entity.Poll, 0, limit)
	if skip >= len(s.pollOrder) {
		return polls, nil
	}

	end := skip + limit
	if end > len(s.pollOrder) {
		end = len(s.pollOrder)
	}
	for _, id := range s.pollOrder[skip:end] {
		polls = append(polls, s.polls[id])
	}
	return polls, nil
}

func (s *Storage) DeletePoll(ctx context.Context, id int64) error {
	const op = "storage.memory.DeletePoll"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.polls[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
	}

	for voteID, vote := range s.votes {
		if vote.PollID == id {
			delete(s.votes, voteID)
			delete(s.voted, voteKey{pollID: id, userID: vote.UserID})
		}
	}
	delete(s.polls, id)
	for i, pollID := range s.pollOrder {
		if pollID == id {
			s.pollOrder = append(s.pollOrder[:i], s.pollOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) SaveVote(ctx context.Context, pollID, optionID, userID int64) (entity.Vote, error) {
	const op = "storage.memory.SaveVote"

	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
	}

	belongs := false
	for _, option := range poll.Options {
		if option.ID == optionID {
			belongs = true
			break
		}
	}
	if !belongs {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, storage.ErrOptionNotFound)
	}

	key := voteKey{pollID: pollID, userID: userID}
	if s.voted[key] {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, storage.ErrVoteExists)
	}

	s.voteSeq++
	vote := entity.Vote{
		ID:        s.voteSeq,
		PollID:    pollID,
		OptionID:  optionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	s.votes[vote.ID] = vote
	s.voted[key] = true

	return vote, nil
}

func (s *Storage) GetPollResults(ctx context.Context, pollID int64) ([]entity.OptionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return nil, nil
	}

	counts := make(map[int64]int64, len(poll.Options))
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			counts[vote.OptionID]++
		}
	}

	results := make([]entity.OptionResult, 0, len(poll.Options))
	for _, option := range poll.Options {
		results = append(results, entity.OptionResult{
			OptionID:  option.ID,
			Text:      option.Text,
			VoteCount: counts[option.ID],
		})
	}
	return results, nil
}

func (s *Storage) SaveUser(ctx context.Context, username string, passHash []byte) (int64, error) {
	const op = "storage.memory.SaveUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernames[username]; ok {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}

	s.userSeq++
	user := entity.User{
		ID:        s.userSeq,
		Username:  username,
		PassHash:  passHash,
		CreatedAt: time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.usernames[username] = user.ID

	return user.ID, nil
}

func (s *Storage) User(ctx context.Context, username string) (entity.User, error) {
	const op = "storage.memory.User"

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usernames[username]
	if !ok {
		return entity.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return s.users[id], nil
}
