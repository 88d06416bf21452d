// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package block

import (
	"github.com/google/uuid"

	"github.com/arpitjain099/crowdsignal-forms/models"
)

// AttributePatch carries only the attribute fields a reconcile pass
// changed. An empty patch means the attributes were already fully
// identified.
type AttributePatch struct {
	PollID  string          `json:"pollId,omitempty"`
	Answers []models.Answer `json:"answers,omitempty"`
}

// Reconcile assigns the identifiers a poll block needs before it can be
// registered: a pollId when none is set, and an answerId for every
// answer that has text but no id yet. Answers that are empty or already
// identified are left untouched.
//
// Runs on every attribute-change event and is idempotent: once ids are
// populated it reports no change. Generation cannot fail; ids are
// 128-bit random UUIDs.
func Reconcile(attrs models.PollAttributes) (AttributePatch, bool) {
	var patch AttributePatch
	changed := false

	if attrs.PollID == "" {
		patch.PollID = uuid.NewString()
		changed = true
	}

	answersChanged := false
	answers := make([]models.Answer, len(attrs.Answers))
	copy(answers, attrs.Answers)
	for i := range answers {
		if answers[i].AnswerID == "" && answers[i].Text != "" {
			answers[i].AnswerID = uuid.NewString()
			answersChanged = true
		}
	}
	if answersChanged {
		patch.Answers = answers
		changed = true
	}

	return patch, changed
}

// ApplyPatch merges a reconcile patch into an attribute set, the way
// the host editor applies partial attribute updates.
func ApplyPatch(attrs models.PollAttributes, patch AttributePatch) models.PollAttributes {
	if patch.PollID != "" {
		attrs.PollID = patch.PollID
	}
	if patch.Answers != nil {
		attrs.Answers = patch.Answers
	}
	return attrs
}
