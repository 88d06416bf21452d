// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package block

import "github.com/arpitjain099/crowdsignal-forms/models"

// ResultAnswer pairs a local answer with the server-assigned numeric id
// used by the results view. ServerID is zero when the server has not
// recorded the answer yet.
type ResultAnswer struct {
	AnswerID string `json:"answerId"`
	ServerID int64  `json:"serverId"`
	Text     string `json:"text"`
}

// CorrelateAnswers maps the block's local answers onto the server-side
// snapshot. Empty-text answers are filtered out. A nil snapshot (fetch
// still pending, or poll never registered) yields an empty correlation.
func CorrelateAnswers(answers []models.Answer, snapshot *models.PollSnapshot) []ResultAnswer {
	out := []ResultAnswer{}
	if snapshot == nil {
		return out
	}

	byClientID := make(map[string]int64, len(snapshot.Answers))
	for _, a := range snapshot.Answers {
		byClientID[a.ClientID] = a.ID
	}

	for _, a := range answers {
		if a.Text == "" {
			continue
		}
		out = append(out, ResultAnswer{
			AnswerID: a.AnswerID,
			ServerID: byClientID[a.AnswerID],
			Text:     a.Text,
		})
	}
	return out
}

// ViewResultsURL returns the snapshot's results page URL, or "" while
// no remote poll data is available.
func ViewResultsURL(snapshot *models.PollSnapshot) string {
	if snapshot == nil {
		return ""
	}
	return snapshot.ViewResultsURL
}
