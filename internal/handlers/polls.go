package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/akazakov/polls-api/internal/entity"
	"github.com/akazakov/polls-api/internal/middleware"
	"github.com/akazakov/polls-api/internal/services/polls"
	"github.com/gin-gonic/gin"
)

type PollsHandler struct {
	pollsService *polls.Polls
}

type CreatePollRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
}

type VoteRequest struct {
	OptionID int64 `json:"option_id" binding:"required"`
}

type OptionResponse struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type PollResponse struct {
	ID        int64            `json:"id"`
	Question  string           `json:"question"`
	OwnerID   int64            `json:"owner_id"`
	CreatedAt time.Time        `json:"created_at"`
	Options   []OptionResponse `json:"options"`
}

type VoteResponse struct {
	ID        int64     `json:"id"`
	PollID    int64     `json:"poll_id"`
	OptionID  int64     `json:"option_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type OptionResultResponse struct {
	OptionID  int64  `json:"option_id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

type PollResultsResponse struct {
	PollID   int64                  `json:"poll_id"`
	Question string                 `json:"question"`
	Results  []OptionResultResponse `json:"results"`
}

func NewPollsHandler(pollsService *polls.Polls) *PollsHandler {
	return &PollsHandler{pollsService: pollsService}
}

func toPollResponse(poll entity.Poll) PollResponse {
	options := make([]OptionResponse, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, OptionResponse{ID: option.ID, Text: option.Text})
	}
	return PollResponse{
		ID:        poll.ID,
		Question:  poll.Question,
		OwnerID:   poll.CreatorID,
		CreatedAt: poll.CreatedAt,
		Options:   options,
	}
}

// @Summary Create a new poll
// @Description Create a poll with at least two options
// @Tags polls
// @Accept json
// @Produce json
// @Param request body handlers.CreatePollRequest true "Poll"
// @Success 200 {object} handlers.PollResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /polls [post]
func (h *PollsHandler) CreatePoll(c *gin.Context) {
	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	poll, err := h.pollsService.CreatePoll(c.Request.Context(), req.Question, req.Options, userID)
	if err != nil {
		if errors.Is(err, polls.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, toPollResponse(poll))
}

// @Summary List polls
// @Description Polls in creation order with skip/limit pagination
// @Tags polls
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} handlers.PollResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Router /polls [get]
func (h *PollsHandler) GetPolls(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid skip"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}

	pollList, err := h.pollsService.GetPolls(c.Request.Context(), skip, limit)
	if err != nil {
		if errors.Is(err, polls.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	response := make([]PollResponse, 0, len(pollList))
	for _, poll := range pollList {
		response = append(response, toPollResponse(poll))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get a poll
// @Tags polls
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} handlers.PollResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /polls/{id} [get]
func (h *PollsHandler) GetPollByID(c *gin.Context) {
	pollID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	poll, err := h.pollsService.GetPollByID(c.Request.Context(), int64(pollID))
	if err != nil {
		if errors.Is(err, polls.ErrPollNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "poll not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, toPollResponse(poll))
}

// @Summary Delete a poll
// @Description Delete a poll with its options and votes. Creator only.
// @Tags polls
// @Param id path int true "Poll ID"
// @Success 204
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /polls/{id} [delete]
func (h *PollsHandler) DeletePoll(c *gin.Context) {
	pollID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.pollsService.DeletePoll(c.Request.Context(), int64(pollID), userID); err != nil {
		switch {
		case errors.Is(err, polls.ErrPollNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "poll not found"})
		case errors.Is(err, polls.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "poll can only be deleted by its creator"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Vote in a poll
// @Description Cast the single vote the user has in this poll
// @Tags votes
// @Accept json
// @Produce json
// @Param id path int true "Poll ID"
// @Param request body handlers.VoteRequest true "Vote"
// @Success 200 {object} handlers.VoteResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /polls/{id}/vote [post]
func (h *PollsHandler) CastVote(c *gin.Context) {
	pollID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	vote, err := h.pollsService.CastVote(c.Request.Context(), int64(pollID), req.OptionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, polls.ErrPollNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "poll not found"})
		case errors.Is(err, polls.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, polls.ErrAlreadyVoted):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "already voted in this poll"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, VoteResponse{
		ID:        vote.ID,
		PollID:    vote.PollID,
		OptionID:  vote.OptionID,
		UserID:    vote.UserID,
		CreatedAt: vote.CreatedAt,
	})
}

// @Summary Poll results
// @Description Aggregated vote counts per option, zero-vote options included
// @Tags polls
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} handlers.PollResultsResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /polls/{id}/results [get]
func (h *PollsHandler) GetResults(c *gin.Context) {
	pollID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	results, err := h.pollsService.GetResults(c.Request.Context(), int64(pollID))
	if err != nil {
		if errors.Is(err, polls.ErrPollNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "poll not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	response := PollResultsResponse{
		PollID:   results.PollID,
		Question: results.Question,
		Results:  make([]OptionResultResponse, 0, len(results.Results)),
	}
	for _, result := range results.Results {
		response.Results = append(response.Results, OptionResultResponse{
			OptionID:  result.OptionID,
			Text:      result.Text,
			VoteCount: result.VoteCount,
		})
	}

	c.JSON(http.StatusOK, response)
}
