// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package block

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arpitjain099/crowdsignal-forms/models"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestIsClosed(t *testing.T) {
	past := testNow.Add(-time.Hour).Format(time.RFC3339)
	future := testNow.Add(time.Hour).Format(time.RFC3339)

	tests := []struct {
		name        string
		status      string
		closedAfter string
		want        bool
	}{
		{"open with no schedule", models.PollStatusOpen, "", false},
		{"explicitly closed", models.PollStatusClosed, "", true},
		{"open but schedule passed", models.PollStatusOpen, past, true},
		{"open with future schedule", models.PollStatusOpen, future, false},
		{"closed with future schedule", models.PollStatusClosed, future, true},
		{"schedule exactly now", models.PollStatusOpen, testNow.Format(time.RFC3339), true},
		{"malformed schedule reads as open", models.PollStatusOpen, "not-a-timestamp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsClosed(tt.status, tt.closedAfter, testNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStateClosedBehavior(t *testing.T) {
	attrs := models.DefaultAttributes()
	attrs.PollID = "poll-1"
	attrs.PollStatus = models.PollStatusClosed

	attrs.ClosedPollState = models.ClosedShowResults
	st := DeriveState(attrs, EditorContext{}, nil, testNow)
	assert.True(t, st.IsClosed)
	assert.True(t, st.ShowResults)
	assert.False(t, st.IsHidden)
	assert.Equal(t, RenderResults, st.RenderState)
	assert.Equal(t, "This poll is closed", st.ClosedLabel)

	attrs.ClosedPollState = models.ClosedHidden
	st = DeriveState(attrs, EditorContext{}, nil, testNow)
	assert.True(t, st.IsClosed)
	assert.False(t, st.ShowResults)
	assert.True(t, st.IsHidden)
	assert.Equal(t, RenderHidden, st.RenderState)
}

func TestDeriveStateOpenPoll(t *testing.T) {
	attrs := models.DefaultAttributes()
	attrs.PollID = "poll-1"

	st := DeriveState(attrs, EditorContext{}, nil, testNow)

	assert.False(t, st.IsClosed)
	assert.False(t, st.ShowResults, "showResults is never true while open")
	assert.False(t, st.IsHidden)
	assert.True(t, st.IsPollEditable)
	assert.Equal(t, RenderEditable, st.RenderState)
	assert.Empty(t, st.ClosedLabel)
}

func TestDeriveStateScheduledCloseLabel(t *testing.T) {
	attrs := models.DefaultAttributes()
	attrs.PollID = "poll-1"
	attrs.ClosedAfterDateTime = testNow.Add(-48 * time.Hour).Format(time.RFC3339)

	st := DeriveState(attrs, EditorContext{}, nil, testNow)

	assert.True(t, st.IsClosed)
	assert.Equal(t, "This poll closed 2 days ago", st.ClosedLabel)
}

func TestWasAddedBeforeLastPublish(t *testing.T) {
	tests := []struct {
		name   string
		pollID string
		ctx    EditorContext
		want   bool
	}{
		{
			"published post containing the id",
			"abc-123",
			EditorContext{PostStatus: PostStatusPublished, PostContent: `<!-- wp:poll {"pollId":"abc-123"} -->`},
			true,
		},
		{
			"draft post containing the id",
			"abc-123",
			EditorContext{PostStatus: "draft", PostContent: `"pollId":"abc-123"`},
			false,
		},
		{
			"published post without the id",
			"abc-123",
			EditorContext{PostStatus: PostStatusPublished, PostContent: "<p>hello</p>"},
			false,
		},
		{
			"unassigned id never matches",
			"",
			EditorContext{PostStatus: PostStatusPublished, PostContent: "<p>hello</p>"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WasAddedBeforeLastPublish(tt.pollID, tt.ctx))
		})
	}
}

func TestDeriveStateEditLock(t *testing.T) {
	attrs := models.DefaultAttributes()
	attrs.PollID = "abc-123"
	ctx := EditorContext{
		IsSelected:  true,
		PostStatus:  PostStatusPublished,
		PostContent: `{"pollId":"abc-123"}`,
	}

	// Starts locked.
	session := &EditSession{}
	st := DeriveState(attrs, ctx, session, testNow)
	assert.True(t, st.WasBlockAddedBeforeLastPublish)
	assert.False(t, st.IsPollEditable)
	assert.True(t, st.ShowEditBar)
	assert.Equal(t, RenderLocked, st.RenderState)

	// "Edit anyway" unlocks for the session.
	session.Unlock()
	st = DeriveState(attrs, ctx, session, testNow)
	assert.True(t, st.IsPollEditable)
	assert.False(t, st.ShowEditBar)
	assert.Equal(t, RenderEditable, st.RenderState)

	// Re-selecting re-arms the lock.
	session.SelectionChanged()
	st = DeriveState(attrs, ctx, session, testNow)
	assert.False(t, st.IsPollEditable)
	assert.Equal(t, RenderLocked, st.RenderState)
}

func TestDeriveStateClosedTakesPrecedenceOverLock(t *testing.T) {
	attrs := models.DefaultAttributes()
	attrs.PollID = "abc-123"
	attrs.PollStatus = models.PollStatusClosed
	ctx := EditorContext{
		IsSelected:  true,
		PostStatus:  PostStatusPublished,
		PostContent: `{"pollId":"abc-123"}`,
	}

	st := DeriveState(attrs, ctx, &EditSession{}, testNow)

	// Closed rendering wins, but the lock banner still shows.
	assert.Equal(t, RenderResults, st.RenderState)
	assert.True(t, st.ShowEditBar)
}

func TestDeriveStateShowNote(t *testing.T) {
	attrs := models.DefaultAttributes()
	attrs.PollID = "poll-1"

	// No note, unselected: nothing to show.
	st := DeriveState(attrs, EditorContext{}, nil, testNow)
	assert.False(t, st.ShowNote)

	// Selected and editable: show the empty field.
	st = DeriveState(attrs, EditorContext{IsSelected: true}, nil, testNow)
	assert.True(t, st.ShowNote)

	// A non-empty note always shows.
	attrs.Note = "One vote each, please."
	st = DeriveState(attrs, EditorContext{}, nil, testNow)
	assert.True(t, st.ShowNote)
}

func TestEditSessionNilSafe(t *testing.T) {
	var session *EditSession
	assert.False(t, session.Unlocked())
}
