// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/arpitjain099/crowdsignal-forms/auth"
	"github.com/arpitjain099/crowdsignal-forms/cliparse"
	"github.com/arpitjain099/crowdsignal-forms/middleware"
	"github.com/arpitjain099/crowdsignal-forms/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /polls/{clientId}/results.
// Tallies are readable while the poll is open; whether the block shows
// them is the editor's call (closedPollState), not the server's.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.db.Query(`
		SELECT a.id, a.client_id, a.text, COUNT(v.id)
		FROM answer a
		LEFT JOIN vote v ON v.answer_id = a.id
		WHERE a.poll_id = $1
		GROUP BY a.id, a.client_id, a.text, a.position
		ORDER BY a.position, a.id
	`, pollID)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	answers := []models.AnswerResult{}
	var total int64
	for rows.Next() {
		var a models.AnswerResult
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Text, &a.Votes); err != nil {
			slog.Error("failed to scan result", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		total += a.Votes
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResultsResponse{
		ID:             pollID,
		ViewResultsURL: h.cfg.BaseURL + "/results/" + auth.GenerateResultsSlug(clientID, h.cfg.ResultsSlugSalt),
		Answers:        answers,
		Total:          total,
	})
}
