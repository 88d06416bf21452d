// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package models

import "time"

// Poll status constants
const (
	PollStatusOpen   = "open"
	PollStatusClosed = "closed"
)

// Closed-poll behavior constants
const (
	ClosedShowResults = "show-results"
	ClosedHidden      = "hidden"
)

// Confirmation message constants
const (
	ConfirmResults    = "results"
	ConfirmThankYou   = "thank-you"
	ConfirmCustomText = "custom-text"
	ConfirmRedirect   = "redirect"
)

// Answer is one choice in a poll. AnswerID stays empty until the answer
// has text; ids are minted client-side before any server round-trip.
type Answer struct {
	AnswerID string `json:"answerId,omitempty"`
	Text     string `json:"text"`
}

// PollAttributes is the persisted attribute set of one poll block.
//
// Field names and types are a compatibility contract: server-side
// rendering and data export read these keys from document storage, so
// they must never change.
type PollAttributes struct {
	PollID                      string   `json:"pollId,omitempty"`
	IsMultipleChoice            bool     `json:"isMultipleChoice"`
	Title                       string   `json:"title"`
	Question                    string   `json:"question"`
	Note                        string   `json:"note"`
	Answers                     []Answer `json:"answers"`
	SubmitButtonLabel           string   `json:"submitButtonLabel"`
	SubmitButtonTextColor       string   `json:"submitButtonTextColor,omitempty"`
	SubmitButtonBackgroundColor string   `json:"submitButtonBackgroundColor,omitempty"`
	ConfirmMessageType          string   `json:"confirmMessageType"`
	CustomConfirmMessage        string   `json:"customConfirmMessage,omitempty"`
	RedirectAddress             string   `json:"redirectAddress,omitempty"`
	TextColor                   string   `json:"textColor,omitempty"`
	BackgroundColor             string   `json:"backgroundColor,omitempty"`
	BorderColor                 string   `json:"borderColor,omitempty"`
	BorderWidth                 int      `json:"borderWidth"`
	BorderRadius                int      `json:"borderRadius"`
	HasBoxShadow                bool     `json:"hasBoxShadow"`
	FontFamily                  string   `json:"fontFamily,omitempty"`
	HasOneResponsePerComputer   bool     `json:"hasOneResponsePerComputer"`
	RandomizeAnswers            bool     `json:"randomizeAnswers"`
	Align                       string   `json:"align,omitempty"`
	PollStatus                  string   `json:"pollStatus"`
	ClosedPollState             string   `json:"closedPollState"`
	ClosedAfterDateTime         string   `json:"closedAfterDateTime,omitempty"`
	HideBranding                bool     `json:"hideBranding"`
}

// DefaultAttributes returns the schema defaults a freshly inserted block
// starts from: three blank answers and an open, results-on-close poll.
func DefaultAttributes() PollAttributes {
	return PollAttributes{
		Answers:            []Answer{{}, {}, {}},
		SubmitButtonLabel:  "Submit",
		ConfirmMessageType: ConfirmResults,
		PollStatus:         PollStatusOpen,
		ClosedPollState:    ClosedShowResults,
	}
}

// SnapshotAnswer correlates a client-generated answer id with the
// server-assigned numeric id.
type SnapshotAnswer struct {
	ClientID string `json:"client_id"`
	ID       int64  `json:"id"`
}

// PollSnapshot is the read model the block's data layer fetches for a
// registered poll. It is read-only with respect to local attributes.
type PollSnapshot struct {
	ID             int64            `json:"id"`
	ViewResultsURL string           `json:"viewResultsUrl"`
	Answers        []SnapshotAnswer `json:"answers"`
}

// Request types

type ReconcileRequest struct {
	Attributes PollAttributes `json:"attributes"`
}

// EditorContextPayload mirrors the host editor state the block sees:
// selection, the post's publish status, and its raw serialized content.
type EditorContextPayload struct {
	IsSelected  bool   `json:"isSelected"`
	PostStatus  string `json:"postStatus"`
	PostContent string `json:"postContent"`
	Unlocked    bool   `json:"unlocked"`
}

type StateRequest struct {
	Attributes PollAttributes       `json:"attributes"`
	Context    EditorContextPayload `json:"context"`
}

type RegisterPollRequest struct {
	Attributes PollAttributes `json:"attributes"`
}

type SubmitVoteRequest struct {
	AnswerIDs []string `json:"answerIds"`
}

// Response types

type RegisterPollResponse struct {
	ID             int64            `json:"id"`
	APIKey         string           `json:"api_key"`
	ViewResultsURL string           `json:"viewResultsUrl"`
	Answers        []SnapshotAnswer `json:"answers"`
}

type SubmitVoteResponse struct {
	Confirmation    string `json:"confirmation"`
	Message         string `json:"message,omitempty"`
	RedirectAddress string `json:"redirectAddress,omitempty"`
}

// AnswerResult is one tallied answer, keyed by both the server id and
// the client id so the editor can line results up with local answers.
type AnswerResult struct {
	ID       int64  `json:"id"`
	ClientID string `json:"client_id"`
	Text     string `json:"text"`
	Votes    int64  `json:"votes"`
}

type PollResultsResponse struct {
	ID             int64          `json:"id"`
	ViewResultsURL string         `json:"viewResultsUrl"`
	Answers        []AnswerResult `json:"answers"`
	Total          int64          `json:"total"`
}

// Poll is the server-side poll record.
type Poll struct {
	ID                        int64      `json:"id"`
	ClientID                  string     `json:"client_id"`
	Title                     string     `json:"title"`
	Question                  string     `json:"question"`
	Note                      string     `json:"note,omitempty"`
	Status                    string     `json:"status"`
	ClosedState               string     `json:"closed_state"`
	ClosedAfter               *time.Time `json:"closed_after,omitempty"`
	IsMultipleChoice          bool       `json:"is_multiple_choice"`
	HasOneResponsePerComputer bool       `json:"has_one_response_per_computer"`
	ConfirmMessageType        string     `json:"confirm_message_type"`
	CustomConfirmMessage      string     `json:"-"`
	RedirectAddress           string     `json:"-"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
