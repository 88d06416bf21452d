// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package block implements the poll block's non-UI core: identifier
reconciliation, presentation-state derivation, and results correlation.
Everything here is a pure function over plain values; the HTTP layer in
handlers is a thin adapter.

# Identifier Reconciliation

Reconcile runs once per attribute-change event. It assigns a pollId when
none exists and an answerId to every answer that has text but no id:

	patch, changed := block.Reconcile(attrs)
	if changed {
		attrs = block.ApplyPatch(attrs, patch)
	}

Idempotent by construction: a second pass over identified attributes
reports no change. Ids are 128-bit random UUIDs, so generation cannot
fail and collisions are not a practical concern.

# State Derivation

DeriveState computes the ephemeral flags the editor renders from:

	st := block.DeriveState(attrs, ctx, session, time.Now())

  - IsClosed: status is "closed", or a close schedule has passed.
    Malformed schedules read as "not closed".
  - ShowResults / IsHidden: closed behavior split by closedPollState.
  - WasBlockAddedBeforeLastPublish: published document whose raw content
    contains the poll id. Substring heuristic, see below.
  - IsPollEditable / ShowEditBar / ShowNote: edit-lock presentation.
  - RenderState: hidden > results > locked > editable.

# Edit Lock

A poll that was already in the document at its last publish may have
responses, so it starts locked against free-text edits. EditSession
holds the session-local unlock:

	session := &block.EditSession{}
	session.Unlock()           // user clicked "edit anyway"
	session.SelectionChanged() // re-selecting re-arms the lock

The published-before check is a raw substring search of the document
content for the poll id, not a structural parse; a false positive is
possible if the id string appears elsewhere. Kept as-is deliberately.

# Results Correlation

CorrelateAnswers lines local answers up with the server snapshot,
filtering empty answers and resolving client ids to numeric server ids.
With no snapshot it returns an empty correlation and ViewResultsURL
returns "", which is the "no remote poll data" reading.
*/
package block
