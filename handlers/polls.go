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

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// viewResultsURL builds the hosted results page URL for a poll.
func (h *PollHandler) viewResultsURL(clientID string) string {
	return h.cfg.BaseURL + "/results/" + auth.GenerateResultsSlug(clientID, h.cfg.ResultsSlugSalt)
}

// parseClosedAfter reads the attribute's close schedule leniently;
// malformed values register as "no schedule" rather than failing.
func parseClosedAfter(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}

// RegisterPoll handles POST /polls.
// First registration of a client poll id creates the server record and
// returns its API key; re-registering with that key in X-Api-Key
// updates the record and appends newly identified answers.
func (h *PollHandler) RegisterPoll(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	attrs := req.Attributes
	if attrs.PollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId is required (reconcile the block first)")
		return
	}
	if attrs.PollStatus == "" {
		attrs.PollStatus = models.PollStatusOpen
	}
	if attrs.ClosedPollState == "" {
		attrs.ClosedPollState = models.ClosedShowResults
	}
	if attrs.ConfirmMessageType == "" {
		attrs.ConfirmMessageType = models.ConfirmResults
	}

	var pollID int64
	err := h.db.QueryRow("SELECT id FROM poll WHERE client_id = $1", attrs.PollID).Scan(&pollID)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if exists {
		// Updates must present the key handed out at registration.
		apiKey := r.Header.Get("X-Api-Key")
		if err := auth.ValidateAPIKey(attrs.PollID, apiKey, h.cfg.APIKeySalt); err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid api key")
			return
		}
	}

	closedAfter := parseClosedAfter(attrs.ClosedAfterDateTime)
	now := time.Now()

	if exists {
		_, err = h.db.Exec(`
			UPDATE poll
			SET title = $1, question = $2, note = $3, status = $4,
			    closed_state = $5, closed_after = $6, is_multiple_choice = $7,
			    has_one_response_per_computer = $8, confirm_message_type = $9,
			    custom_confirm_message = $10, redirect_address = $11, updated_at = $12
			WHERE id = $13
		`, attrs.Title, attrs.Question, attrs.Note, attrs.PollStatus,
			attrs.ClosedPollState, closedAfter, attrs.IsMultipleChoice,
			attrs.HasOneResponsePerComputer, attrs.ConfirmMessageType,
			attrs.CustomConfirmMessage, attrs.RedirectAddress, now, pollID)
		if err != nil {
			slog.Error("failed to update poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
			return
		}
	} else {
		err = h.db.QueryRow(`
			INSERT INTO poll (client_id, title, question, note, status,
			                  closed_state, closed_after, is_multiple_choice,
			                  has_one_response_per_computer, confirm_message_type,
			                  custom_confirm_message, redirect_address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`, attrs.PollID, attrs.Title, attrs.Question, attrs.Note, attrs.PollStatus,
			attrs.ClosedPollState, closedAfter, attrs.IsMultipleChoice,
			attrs.HasOneResponsePerComputer, attrs.ConfirmMessageType,
			attrs.CustomConfirmMessage, attrs.RedirectAddress, now, now).Scan(&pollID)
		if err != nil {
			slog.Error("failed to insert poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register poll")
			return
		}
		slog.Info("poll registered", "poll_id", pollID, "client_id", attrs.PollID)
	}

	if err := h.upsertAnswers(pollID, attrs.Answers); err != nil {
		slog.Error("failed to upsert answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save answers")
		return
	}

	snapshotAnswers, err := h.snapshotAnswers(pollID)
	if err != nil {
		slog.Error("failed to query answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterPollResponse{
		ID:             pollID,
		APIKey:         auth.GenerateAPIKey(attrs.PollID, h.cfg.APIKeySalt),
		ViewResultsURL: h.viewResultsURL(attrs.PollID),
		Answers:        snapshotAnswers,
	})
}

// upsertAnswers writes the identified answers (non-empty text, id
// assigned) for a poll. Existing rows keep their numeric id so votes
// stay attached across text edits.
func (h *PollHandler) upsertAnswers(pollID int64, answers []models.Answer) error {
	for i, a := range answers {
		if a.AnswerID == "" || a.Text == "" {
			continue
		}

		var answerID int64
		err := h.db.QueryRow(`
			SELECT id FROM answer WHERE poll_id = $1 AND client_id = $2
		`, pollID, a.AnswerID).Scan(&answerID)

		switch {
		case err == sql.ErrNoRows:
			_, err = h.db.Exec(`
				INSERT INTO answer (poll_id, client_id, text, position)
				VALUES ($1, $2, $3, $4)
			`, pollID, a.AnswerID, a.Text, i)
			if err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			_, err = h.db.Exec(`
				UPDATE answer SET text = $1, position = $2 WHERE id = $3
			`, a.Text, i, answerID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// snapshotAnswers returns the client_id → numeric id pairs for a poll,
// in display order.
func (h *PollHandler) snapshotAnswers(pollID int64) ([]models.SnapshotAnswer, error) {
	rows, err := h.db.Query(`
		SELECT id, client_id FROM answer WHERE poll_id = $1 ORDER BY position, id
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.SnapshotAnswer{}
	for rows.Next() {
		var a models.SnapshotAnswer
		if err := rows.Scan(&a.ID, &a.ClientID); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// GetPoll handles GET /polls/{clientId}.
// Returns the snapshot the block's data layer consumes: numeric id,
// results URL, and the client_id → server id correlation.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "clientId is required")
		return
	}

	var pollID int64
	err := h.db.QueryRow("SELECT id FROM poll WHERE client_id = $1", clientID).Scan(&pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	answers, err := h.snapshotAnswers(pollID)
	if err != nil {
		slog.Error("failed to query answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollSnapshot{
		ID:             pollID,
		ViewResultsURL: h.viewResultsURL(clientID),
		Answers:        answers,
	})
}
