package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/akazakov/polls-api/internal/storage"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

func (s *Storage) SavePoll(ctx context.Context, question string, creatorID int64, options []string) (entity.Poll, error) {
	const op = "storage.postgres.SavePoll"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	pollQuery := `INSERT INTO polls (question, creator_id) VALUES ($1, $2) RETURNING id, created_at`

	var poll entity.Poll
	err = tx.QueryRowContext(ctx, pollQuery, question, creatorID).Scan(&poll.ID, &poll.CreatedAt)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}
	poll.Question = question
	poll.CreatorID = creatorID

	optionQuery := `INSERT INTO options (poll_id, text) VALUES ($1, $2) RETURNING id`

	poll.Options = make([]entity.Option, 0, len(options))
	for _, text := range options {
		option := entity.Option{PollID: poll.ID, Text: text}
		if err := tx.QueryRowContext(ctx, optionQuery, poll.ID, text).Scan(&option.ID); err != nil {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
		}
		poll.Options = append(poll.Options, option)
	}

	if err := tx.Commit(); err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

func (s *Storage) GetPollByID(ctx context.Context, id int64) (entity.Poll, error) {
	const op = "storage.postgres.GetPollByID"

	query := `SELECT id, question, creator_id, created_at FROM polls WHERE id = $1`

	var poll entity.Poll
	err := s.db.QueryRowContext(ctx, query, id).Scan(&poll.ID, &poll.Question, &poll.CreatorID, &poll.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
		}
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	optionsQuery := `SELECT id, poll_id, text FROM options WHERE poll_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, optionsQuery, id)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var option entity.Option
		if err := rows.Scan(&option.ID, &option.PollID, &option.Text); err != nil {
			return entity.Poll{}, fmt.Errorf("%s: scan: %w", op, err)
		}
		poll.Options = append(poll.Options, option)
	}

	if err := rows.Err(); err != nil {
		return entity.Poll{}, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return poll, nil
}

func (s *Storage) GetPolls(ctx context.Context, skip, limit int) ([]entity.Poll, error) {
	const op = "storage.postgres.GetPolls"

	query := `SELECT id, question, creator_id, created_at FROM polls ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var polls []entity.Poll
	for rows.Next() {
		var poll entity.Poll
		if err := rows.Scan(&poll.ID, &poll.Question, &poll.CreatorID, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		polls = append(polls, poll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	if len(polls) == 0 {
		return polls, nil
	}

	ids := make([]int64, 0, len(polls))
	index := make(map[int64]int, len(polls))
	for i, poll := range polls {
		ids = append(ids, poll.ID)
		index[poll.ID] = i
	}

	optionsQuery := `SELECT id, poll_id, text FROM options WHERE poll_id = ANY($1) ORDER BY poll_id, id`

	optionRows, err := s.db.QueryContext(ctx, optionsQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var option entity.Option
		if err := optionRows.Scan(&option.ID, &option.PollID, &option.Text); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		i := index[option.PollID]
		polls[i].Options = append(polls[i].Options, option)
	}

	if err := optionRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return polls, nil
}

func (s *Storage) DeletePoll(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeletePoll"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	// Dependents go first: votes reference options, options reference the poll.
	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveVote(ctx context.Context, pollID, optionID, userID int64) (entity.Vote, error) {
	const op = "storage.postgres.SaveVote"

	query := `INSERT INTO votes (poll_id, option_id, user_id) VALUES ($1, $2, $3) RETURNING id, created_at`

	vote := entity.Vote{PollID: pollID, OptionID: optionID, UserID: userID}
	err := s.db.QueryRowContext(ctx, query, pollID, optionID, userID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return entity.Vote{}, fmt.Errorf("%s: %w", op, storage.ErrVoteExists)
			}
			if pqErr.Code == "23503" {
				// The composite FK fails when the option does not belong to the poll.
				switch pqErr.Constraint {
				case "votes_option_id_poll_id_fkey":
					return entity.Vote{}, fmt.Errorf("%s: %w", op, storage.ErrOptionNotFound)
				case "votes_poll_id_fkey":
					return entity.Vote{}, fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
				}
			}
		}
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	return vote, nil
}

func (s *Storage) GetPollResults(ctx context.Context, pollID int64) ([]entity.OptionResult, error) {
	const op = "storage.postgres.GetPollResults"

	query := `
		SELECT o.id, o.text, COUNT(v.id)
		FROM options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.text
		ORDER BY o.id`

	rows, err := s.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []entity.OptionResult
	for rows.Next() {
		var result entity.OptionResult
		if err := rows.Scan(&result.OptionID, &result.Text, &result.VoteCount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return results, nil
}
