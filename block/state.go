// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package block

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/arpitjain099/crowdsignal-forms/models"
)

// RenderState names which sub-tree the editor renders for the block.
type RenderState string

const (
	RenderEditable RenderState = "editable"
	RenderLocked   RenderState = "locked"
	RenderResults  RenderState = "results"
	RenderHidden   RenderState = "hidden"
)

// PostStatusPublished is the host editor's stored status for a
// published document.
const PostStatusPublished = "publish"

// EditorContext is the host editor state the block derives display
// state from: selection, the document's publish status, and its raw
// serialized content.
type EditorContext struct {
	IsSelected  bool
	PostStatus  string
	PostContent string
}

// EditSession holds the one piece of session-local UI state: whether
// the user explicitly unlocked a block that was published before.
// Never persisted to attributes.
type EditSession struct {
	unlocked bool
}

// Unlock records the user's "edit anyway" action.
func (s *EditSession) Unlock() {
	s.unlocked = true
}

// SelectionChanged re-arms the edit lock; a fresh selection starts
// locked again.
func (s *EditSession) SelectionChanged() {
	s.unlocked = false
}

// Unlocked reports whether the user unlocked the block this session.
// Safe on a nil session.
func (s *EditSession) Unlocked() bool {
	return s != nil && s.unlocked
}

// DerivedState is the ephemeral presentation state, recomputed from
// attributes plus editor context on every pass. Never persisted.
type DerivedState struct {
	IsClosed                       bool        `json:"isClosed"`
	ShowResults                    bool        `json:"showResults"`
	IsHidden                       bool        `json:"isHidden"`
	WasBlockAddedBeforeLastPublish bool        `json:"wasBlockAddedBeforeLastPublish"`
	IsPollEditable                 bool        `json:"isPollEditable"`
	ShowEditBar                    bool        `json:"showEditBar"`
	ShowNote                       bool        `json:"showNote"`
	RenderState                    RenderState `json:"renderState"`
	ClosedLabel                    string      `json:"closedLabel,omitempty"`
}

// IsClosed reports whether the poll no longer accepts responses: either
// the status is explicitly closed, or a close schedule is set and has
// passed. A malformed schedule reads as "not closed".
func IsClosed(status, closedAfter string, now time.Time) bool {
	if status == models.PollStatusClosed {
		return true
	}
	if closedAfter == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, closedAfter)
	if err != nil {
		return false
	}
	return !t.After(now)
}

// WasAddedBeforeLastPublish reports whether the block was already part
// of the document the last time it was published. A poll that went out
// with a publish may have responses, so it must not be silently edited.
//
// This is a substring search for the poll id within the raw content,
// not a structural parse. A false positive is possible if the id string
// appears elsewhere in the document.
func WasAddedBeforeLastPublish(pollID string, ctx EditorContext) bool {
	return ctx.PostStatus == PostStatusPublished &&
		pollID != "" &&
		strings.Contains(ctx.PostContent, pollID)
}

// DeriveState computes the full presentation state for one render pass.
func DeriveState(attrs models.PollAttributes, ctx EditorContext, session *EditSession, now time.Time) DerivedState {
	var st DerivedState

	st.IsClosed = IsClosed(attrs.PollStatus, attrs.ClosedAfterDateTime, now)
	st.ShowResults = st.IsClosed && attrs.ClosedPollState == models.ClosedShowResults
	st.IsHidden = st.IsClosed && attrs.ClosedPollState == models.ClosedHidden

	st.WasBlockAddedBeforeLastPublish = WasAddedBeforeLastPublish(attrs.PollID, ctx)
	st.IsPollEditable = !st.WasBlockAddedBeforeLastPublish || session.Unlocked()
	st.ShowEditBar = ctx.IsSelected && !st.IsPollEditable
	st.ShowNote = attrs.Note != "" || (ctx.IsSelected && st.IsPollEditable)

	// Closed-poll rendering takes precedence over the editable fields;
	// the edit-lock banner (ShowEditBar) can still show above it.
	switch {
	case st.IsHidden:
		st.RenderState = RenderHidden
	case st.ShowResults:
		st.RenderState = RenderResults
	case !st.IsPollEditable:
		st.RenderState = RenderLocked
	default:
		st.RenderState = RenderEditable
	}

	if st.IsClosed {
		if attrs.PollStatus == models.PollStatusClosed {
			st.ClosedLabel = "This poll is closed"
		} else {
			st.ClosedLabel = closedLabel(attrs.ClosedAfterDateTime, now)
		}
	}

	return st
}

func closedLabel(closedAfter string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, closedAfter)
	if closedAfter == "" || err != nil {
		return "This poll is closed"
	}
	return "This poll closed " + humanize.RelTime(t, now, "ago", "from now")
}
