// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/arpitjain099/crowdsignal-forms/cliparse"
	"github.com/arpitjain099/crowdsignal-forms/db"
	"github.com/arpitjain099/crowdsignal-forms/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. One connection only; in-memory sqlite databases are
// per-connection.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3320,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		APIKeySalt:      "test-api-salt",
		ResultsSlugSalt: "test-results-salt",
		BaseURL:         "https://app.example.com",
	}
}

// RegisterTestPoll inserts a poll row directly and returns its numeric
// id. status should be "open" or "closed".
func RegisterTestPoll(t *testing.T, conn *sql.DB, clientID, status string) int64 {
	t.Helper()

	now := time.Now()
	var pollID int64
	err := conn.QueryRow(`
		INSERT INTO poll (client_id, title, question, status, closed_state,
		                  is_multiple_choice, has_one_response_per_computer,
		                  confirm_message_type, created_at, updated_at)
		VALUES ($1, 'Test Poll', 'Favorite color?', $2, 'show-results',
		        $3, $4, 'thank-you', $5, $6)
		RETURNING id
	`, clientID, status, false, false, now, now).Scan(&pollID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestAnswer inserts an answer row for a poll and returns its
// numeric id along with the client id it was stored under.
func AddTestAnswer(t *testing.T, conn *sql.DB, pollID int64, text string, position int) (int64, string) {
	t.Helper()

	clientID := uuid.NewString()
	var answerID int64
	err := conn.QueryRow(`
		INSERT INTO answer (poll_id, client_id, text, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, pollID, clientID, text, position).Scan(&answerID)
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}

	return answerID, clientID
}

// AddTestVote inserts a vote row for an answer.
func AddTestVote(t *testing.T, conn *sql.DB, pollID, answerID int64, voterHash string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (poll_id, answer_id, voter_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, answerID, voterHash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// IdentifiedAttributes returns attributes with ids already assigned,
// ready to register.
func IdentifiedAttributes(answerTexts ...string) models.PollAttributes {
	attrs := models.DefaultAttributes()
	attrs.PollID = uuid.NewString()
	attrs.Question = "Favorite color?"
	attrs.Answers = nil
	for _, text := range answerTexts {
		attrs.Answers = append(attrs.Answers, models.Answer{
			AnswerID: uuid.NewString(),
			Text:     text,
		})
	}
	return attrs
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
