// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arpitjain099/crowdsignal-forms/auth"
	"github.com/arpitjain099/crowdsignal-forms/models"
	"github.com/arpitjain099/crowdsignal-forms/testutil"
)

func TestRegisterPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(conn, cfg)

	attrs := testutil.IdentifiedAttributes("Red", "Blue", "Green")
	// One answer never got text, so it never got an id either; the
	// registry must skip it.
	attrs.Answers = append(attrs.Answers, models.Answer{})

	req := testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs}, nil)
	w := httptest.NewRecorder()
	handler.RegisterPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RegisterPollResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.ID == 0 {
		t.Error("Expected non-zero numeric poll id")
	}
	if resp.APIKey != auth.GenerateAPIKey(attrs.PollID, cfg.APIKeySalt) {
		t.Error("Expected the derived api key for the client poll id")
	}
	if len(resp.Answers) != 3 {
		t.Fatalf("Expected 3 registered answers, got %d", len(resp.Answers))
	}
	for i, a := range resp.Answers {
		if a.ClientID != attrs.Answers[i].AnswerID {
			t.Errorf("Answer %d: expected client_id %q, got %q", i, attrs.Answers[i].AnswerID, a.ClientID)
		}
		if a.ID == 0 {
			t.Errorf("Answer %d: expected non-zero server id", i)
		}
	}

	wantURL := cfg.BaseURL + "/results/" + auth.GenerateResultsSlug(attrs.PollID, cfg.ResultsSlugSalt)
	if resp.ViewResultsURL != wantURL {
		t.Errorf("Expected results URL %q, got %q", wantURL, resp.ViewResultsURL)
	}
}

func TestRegisterPollRequiresPollID(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewPollHandler(conn, testutil.GetTestConfig())

	attrs := models.DefaultAttributes() // no pollId assigned yet

	req := testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs}, nil)
	w := httptest.NewRecorder()
	handler.RegisterPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRegisterPollUpdateRequiresAPIKey(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(conn, cfg)

	attrs := testutil.IdentifiedAttributes("Red", "Blue")

	// First registration needs no key.
	req := testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs}, nil)
	w := httptest.NewRecorder()
	handler.RegisterPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Re-registering without the key is rejected.
	attrs.Question = "Favorite shade?"
	req = testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs}, nil)
	w = httptest.NewRecorder()
	handler.RegisterPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// With the key the update goes through.
	apiKey := auth.GenerateAPIKey(attrs.PollID, cfg.APIKeySalt)
	req = testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs},
		map[string]string{"X-Api-Key": apiKey})
	w = httptest.NewRecorder()
	handler.RegisterPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var question string
	if err := conn.QueryRow("SELECT question FROM poll WHERE client_id = $1", attrs.PollID).Scan(&question); err != nil {
		t.Fatalf("Failed to read poll back: %v", err)
	}
	if question != "Favorite shade?" {
		t.Errorf("Expected updated question, got %q", question)
	}
}

func TestRegisterPollUpdateKeepsAnswerIDs(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(conn, cfg)

	attrs := testutil.IdentifiedAttributes("Red", "Blue")

	req := testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs}, nil)
	w := httptest.NewRecorder()
	handler.RegisterPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var first models.RegisterPollResponse
	testutil.AssertJSON(t, w, &first)

	// Edit one answer's text and add a third answer.
	attrs.Answers[0].Text = "Crimson"
	attrs.Answers = append(attrs.Answers, models.Answer{AnswerID: "new-answer", Text: "Green"})

	apiKey := auth.GenerateAPIKey(attrs.PollID, cfg.APIKeySalt)
	req = testutil.MakeRequest("POST", "/polls", models.RegisterPollRequest{Attributes: attrs},
		map[string]string{"X-Api-Key": apiKey})
	w = httptest.NewRecorder()
	handler.RegisterPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var second models.RegisterPollResponse
	testutil.AssertJSON(t, w, &second)

	if len(second.Answers) != 3 {
		t.Fatalf("Expected 3 answers after update, got %d", len(second.Answers))
	}
	// The edited answer keeps its numeric id, so votes stay attached.
	if second.Answers[0].ID != first.Answers[0].ID {
		t.Errorf("Expected answer id %d to survive a text edit, got %d",
			first.Answers[0].ID, second.Answers[0].ID)
	}

	var text string
	if err := conn.QueryRow("SELECT text FROM answer WHERE id = $1", second.Answers[0].ID).Scan(&text); err != nil {
		t.Fatalf("Failed to read answer back: %v", err)
	}
	if text != "Crimson" {
		t.Errorf("Expected updated answer text, got %q", text)
	}
}

func TestGetPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(conn, cfg)

	pollID := testutil.RegisterTestPoll(t, conn, "client-1", models.PollStatusOpen)
	answerID, answerClientID := testutil.AddTestAnswer(t, conn, pollID, "Red", 0)

	req := testutil.MakeRequest("GET", "/polls/client-1", nil, nil)
	req.SetPathValue("clientId", "client-1")
	w := httptest.NewRecorder()
	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var snapshot models.PollSnapshot
	testutil.AssertJSON(t, w, &snapshot)

	if snapshot.ID != pollID {
		t.Errorf("Expected poll id %d, got %d", pollID, snapshot.ID)
	}
	if len(snapshot.Answers) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(snapshot.Answers))
	}
	if snapshot.Answers[0].ClientID != answerClientID || snapshot.Answers[0].ID != answerID {
		t.Errorf("Expected answer mapping %q → %d, got %q → %d",
			answerClientID, answerID, snapshot.Answers[0].ClientID, snapshot.Answers[0].ID)
	}
	if snapshot.ViewResultsURL == "" {
		t.Error("Expected a results URL")
	}
}

func TestGetPollNotRegistered(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewPollHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/polls/never-registered", nil, nil)
	req.SetPathValue("clientId", "never-registered")
	w := httptest.NewRecorder()
	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
