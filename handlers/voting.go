// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/arpitjain099/crowdsignal-forms/auth"
	"github.com/arpitjain099/crowdsignal-forms/cliparse"
	"github.com/arpitjain099/crowdsignal-forms/middleware"
	"github.com/arpitjain099/crowdsignal-forms/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// SubmitVote handles POST /polls/{clientId}/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "clientId is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.AnswerIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answerIds is required")
		return
	}

	var (
		pollID               int64
		status               string
		closedAfter          sql.NullTime
		isMultipleChoice     bool
		oneResponse          bool
		confirmType          string
		customConfirmMessage string
		redirectAddress      string
	)
	err := h.db.QueryRow(`
		SELECT id, status, closed_after, is_multiple_choice,
		       has_one_response_per_computer, confirm_message_type,
		       custom_confirm_message, redirect_address
		FROM poll
		WHERE client_id = $1
	`, clientID).Scan(&pollID, &status, &closedAfter, &isMultipleChoice,
		&oneResponse, &confirmType, &customConfirmMessage, &redirectAddress)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	closed := status == models.PollStatusClosed ||
		(closedAfter.Valid && !closedAfter.Time.After(now))
	if closed {
		middleware.ErrorResponse(w, http.StatusForbidden, "Poll is closed")
		return
	}

	if !isMultipleChoice && len(req.AnswerIDs) > 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Poll accepts a single answer")
		return
	}

	// Resolve client answer ids, rejecting unknowns and duplicates.
	seen := make(map[string]bool, len(req.AnswerIDs))
	answerIDs := make([]int64, 0, len(req.AnswerIDs))
	for _, clientAnswerID := range req.AnswerIDs {
		if seen[clientAnswerID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Duplicate answer id")
			return
		}
		seen[clientAnswerID] = true

		var answerID int64
		err := h.db.QueryRow(`
			SELECT id FROM answer WHERE poll_id = $1 AND client_id = $2
		`, pollID, clientAnswerID).Scan(&answerID)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown answer id")
			return
		}
		if err != nil {
			slog.Error("failed to query answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		answerIDs = append(answerIDs, answerID)
	}

	voterHash := auth.HashVoter(middleware.GetClientIP(r), h.cfg.APIKeySalt)

	if oneResponse {
		var count int
		err := h.db.QueryRow(`
			SELECT COUNT(*) FROM vote WHERE poll_id = $1 AND voter_hash = $2
		`, pollID, voterHash).Scan(&count)
		if err != nil {
			slog.Error("failed to count votes", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count > 0 {
			middleware.ErrorResponse(w, http.StatusConflict, "Already voted from this device")
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, answerID := range answerIDs {
		_, err := tx.Exec(`
			INSERT INTO vote (poll_id, answer_id, voter_hash, created_at)
			VALUES ($1, $2, $3, $4)
		`, pollID, answerID, voterHash, now)
		if err != nil {
			slog.Error("failed to insert vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "answers", len(answerIDs))

	middleware.JSONResponse(w, http.StatusCreated, h.confirmation(clientID, confirmType, customConfirmMessage, redirectAddress))
}

// confirmation builds the post-vote response per the poll's configured
// confirmation message type.
func (h *VotingHandler) confirmation(clientID, confirmType, customMessage, redirectAddress string) models.SubmitVoteResponse {
	resp := models.SubmitVoteResponse{Confirmation: confirmType}

	switch confirmType {
	case models.ConfirmCustomText:
		resp.Message = customMessage
	case models.ConfirmRedirect:
		resp.RedirectAddress = redirectAddress
	case models.ConfirmResults:
		resp.Message = h.cfg.BaseURL + "/results/" + auth.GenerateResultsSlug(clientID, h.cfg.ResultsSlugSalt)
	default:
		resp.Confirmation = models.ConfirmThankYou
		resp.Message = "Thanks for voting!"
	}

	return resp
}
