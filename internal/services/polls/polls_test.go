package polls

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/akazakov/polls-api/internal/services/mocks"
	"github.com/akazakov/polls-api/internal/storage"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxPageSize = 10

func newTestPolls(ps PollStorage, vs VoteStorage, rs ResultStorage) *Polls {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPolls(log, ps, vs, rs, testMaxPageSize)
}

func twoOptionPoll(pollID, creatorID int64) entity.Poll {
	return entity.Poll{
		ID:        pollID,
		Question:  "Tabs or spaces?",
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
		Options: []entity.Option{
			{ID: 10, PollID: pollID, Text: "Tabs"},
			{ID: 11, PollID: pollID, Text: "Spaces"},
		},
	}
}

func TestPolls_CreatePoll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saved := twoOptionPoll(1, 7)

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().SavePoll(gomock.Any(), "Tabs or spaces?", int64(7), []string{"Tabs", "Spaces"}).Return(saved, nil)

	pollsTest := newTestPolls(ps, nil, nil)

	poll, err := pollsTest.CreatePoll(context.Background(), "Tabs or spaces?", []string{"Tabs", "Spaces"}, 7)
	require.NoError(t, err)
	assert.Equal(t, saved, poll)
}

func TestPolls_CreatePoll_EmptyQuestion(t *testing.T) {
	pollsTest := newTestPolls(nil, nil, nil)

	_, err := pollsTest.CreatePoll(context.Background(), "", []string{"Tabs", "Spaces"}, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_CreatePoll_WhitespaceQuestion(t *testing.T) {
	pollsTest := newTestPolls(nil, nil, nil)

	_, err := pollsTest.CreatePoll(context.Background(), "   ", []string{"Tabs", "Spaces"}, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_CreatePoll_TooFewOptions(t *testing.T) {
	pollsTest := newTestPolls(nil, nil, nil)

	_, err := pollsTest.CreatePoll(context.Background(), "Tabs or spaces?", []string{"Tabs"}, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "at least two options")
}

func TestPolls_CreatePoll_BlankOptionText(t *testing.T) {
	pollsTest := newTestPolls(nil, nil, nil)

	_, err := pollsTest.CreatePoll(context.Background(), "Tabs or spaces?", []string{"Tabs", "  "}, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "option text is empty")
}

func TestPolls_CreatePoll_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().SavePoll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(entity.Poll{}, errors.New("insert failed"))

	pollsTest := newTestPolls(ps, nil, nil)

	_, err := pollsTest.CreatePoll(context.Background(), "Tabs or spaces?", []string{"Tabs", "Spaces"}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestPolls_GetPollByID_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := twoOptionPoll(1, 7)

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(stored, nil)

	pollsTest := newTestPolls(ps, nil, nil)

	poll, err := pollsTest.GetPollByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, stored, poll)
}

func TestPolls_GetPollByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(404)).Return(entity.Poll{}, storage.ErrPollNotFound)

	pollsTest := newTestPolls(ps, nil, nil)

	_, err := pollsTest.GetPollByID(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestPolls_GetPolls_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	page := []entity.Poll{twoOptionPoll(3, 7), twoOptionPoll(4, 8)}

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPolls(gomock.Any(), 2, 5).Return(page, nil)

	pollsTest := newTestPolls(ps, nil, nil)

	polls, err := pollsTest.GetPolls(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, page, polls)
}

func TestPolls_GetPolls_NegativeSkip(t *testing.T) {
	pollsTest := newTestPolls(nil, nil, nil)

	_, err := pollsTest.GetPolls(context.Background(), -1, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_GetPolls_ZeroLimit(t *testing.T) {
	pollsTest := newTestPolls(nil, nil, nil)

	_, err := pollsTest.GetPolls(context.Background(), 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_GetPolls_LimitCapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// A limit above the maximum is capped, not rejected.
	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPolls(gomock.Any(), 0, testMaxPageSize).Return([]entity.Poll{}, nil)

	pollsTest := newTestPolls(ps, nil, nil)

	_, err := pollsTest.GetPolls(context.Background(), 0, 1000)
	require.NoError(t, err)
}

func TestPolls_DeletePoll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)
	ps.EXPECT().DeletePoll(gomock.Any(), int64(1)).Return(nil)

	pollsTest := newTestPolls(ps, nil, nil)

	err := pollsTest.DeletePoll(context.Background(), 1, 7)
	require.NoError(t, err)
}

func TestPolls_DeletePoll_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	pollsTest := newTestPolls(ps, nil, nil)

	err := pollsTest.DeletePoll(context.Background(), 1, 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPolls_DeletePoll_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(404)).Return(entity.Poll{}, storage.ErrPollNotFound)

	pollsTest := newTestPolls(ps, nil, nil)

	err := pollsTest.DeletePoll(context.Background(), 404, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestPolls_CastVote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saved := entity.Vote{ID: 1, PollID: 1, OptionID: 10, UserID: 42, CreatedAt: time.Now().UTC()}

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	vs := mocks.NewMockVoteStorage(ctrl)
	vs.EXPECT().SaveVote(gomock.Any(), int64(1), int64(10), int64(42)).Return(saved, nil)

	pollsTest := newTestPolls(ps, vs, nil)

	vote, err := pollsTest.CastVote(context.Background(), 1, 10, 42)
	require.NoError(t, err)
	assert.Equal(t, saved, vote)
}

func TestPolls_CastVote_OptionNotInPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	pollsTest := newTestPolls(ps, nil, nil)

	_, err := pollsTest.CastVote(context.Background(), 1, 99, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_CastVote_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	vs := mocks.NewMockVoteStorage(ctrl)
	vs.EXPECT().SaveVote(gomock.Any(), int64(1), int64(10), int64(42)).Return(entity.Vote{}, storage.ErrVoteExists)

	pollsTest := newTestPolls(ps, vs, nil)

	_, err := pollsTest.CastVote(context.Background(), 1, 10, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
}

func TestPolls_CastVote_PollNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(404)).Return(entity.Poll{}, storage.ErrPollNotFound)

	pollsTest := newTestPolls(ps, nil, nil)

	_, err := pollsTest.CastVote(context.Background(), 404, 10, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestPolls_CastVote_OptionGoneAtInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The option passes the membership check but the insert still fails
	// when a concurrent delete wins the race.
	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	vs := mocks.NewMockVoteStorage(ctrl)
	vs.EXPECT().SaveVote(gomock.Any(), int64(1), int64(10), int64(42)).Return(entity.Vote{}, storage.ErrOptionNotFound)

	pollsTest := newTestPolls(ps, vs, nil)

	_, err := pollsTest.CastVote(context.Background(), 1, 10, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_GetResults_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	counts := []entity.OptionResult{
		{OptionID: 10, Text: "Tabs", VoteCount: 2},
		{OptionID: 11, Text: "Spaces", VoteCount: 0},
	}

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	rs := mocks.NewMockResultStorage(ctrl)
	rs.EXPECT().GetPollResults(gomock.Any(), int64(1)).Return(counts, nil)

	pollsTest := newTestPolls(ps, nil, rs)

	results, err := pollsTest.GetResults(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), results.PollID)
	assert.Equal(t, "Tabs or spaces?", results.Question)
	assert.Equal(t, counts, results.Results)
}

func TestPolls_GetResults_PollNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(404)).Return(entity.Poll{}, storage.ErrPollNotFound)

	pollsTest := newTestPolls(ps, nil, nil)

	_, err := pollsTest.GetResults(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestPolls_GetResults_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ps := mocks.NewMockPollStorage(ctrl)
	ps.EXPECT().GetPollByID(gomock.Any(), int64(1)).Return(twoOptionPoll(1, 7), nil)

	rs := mocks.NewMockResultStorage(ctrl)
	rs.EXPECT().GetPollResults(gomock.Any(), int64(1)).Return(nil, errors.New("query failed"))

	pollsTest := newTestPolls(ps, nil, rs)

	_, err := pollsTest.GetResults(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}
