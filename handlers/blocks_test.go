// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arpitjain099/crowdsignal-forms/block"
	"github.com/arpitjain099/crowdsignal-forms/models"
	"github.com/arpitjain099/crowdsignal-forms/testutil"
)

func TestBlockReconcile(t *testing.T) {
	handler := NewBlockHandler(testutil.GetTestConfig())

	attrs := models.DefaultAttributes()
	attrs.Answers = []models.Answer{{Text: "Red"}, {}}

	req := testutil.MakeRequest("POST", "/blocks/poll/reconcile", models.ReconcileRequest{Attributes: attrs}, nil)
	w := httptest.NewRecorder()
	handler.Reconcile(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Patch   block.AttributePatch `json:"patch"`
		Changed bool                 `json:"changed"`
	}
	testutil.AssertJSON(t, w, &resp)

	if !resp.Changed {
		t.Fatal("Expected the pass to report a change")
	}
	if resp.Patch.PollID == "" {
		t.Error("Expected a pollId in the patch")
	}
	if len(resp.Patch.Answers) != 2 {
		t.Fatalf("Expected both answers in the patch, got %d", len(resp.Patch.Answers))
	}
	if resp.Patch.Answers[0].AnswerID == "" {
		t.Error("Expected an answerId for the filled answer")
	}
	if resp.Patch.Answers[1].AnswerID != "" {
		t.Error("Expected the blank answer to stay id-less")
	}
}

func TestBlockReconcileNoChange(t *testing.T) {
	handler := NewBlockHandler(testutil.GetTestConfig())

	attrs := testutil.IdentifiedAttributes("Red", "Blue")

	req := testutil.MakeRequest("POST", "/blocks/poll/reconcile", models.ReconcileRequest{Attributes: attrs}, nil)
	w := httptest.NewRecorder()
	handler.Reconcile(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Changed bool `json:"changed"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Changed {
		t.Error("Expected an identified block to reconcile to no change")
	}
}

func TestBlockState(t *testing.T) {
	handler := NewBlockHandler(testutil.GetTestConfig())

	attrs := testutil.IdentifiedAttributes("Red", "Blue")
	body := models.StateRequest{
		Attributes: attrs,
		Context: models.EditorContextPayload{
			IsSelected:  true,
			PostStatus:  "publish",
			PostContent: `{"pollId":"` + attrs.PollID + `"}`,
		},
	}

	req := testutil.MakeRequest("POST", "/blocks/poll/state", body, nil)
	w := httptest.NewRecorder()
	handler.State(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var st block.DerivedState
	testutil.AssertJSON(t, w, &st)

	if !st.WasBlockAddedBeforeLastPublish {
		t.Error("Expected the published-before check to trip")
	}
	if st.IsPollEditable {
		t.Error("Expected the block to start locked")
	}
	if st.RenderState != block.RenderLocked {
		t.Errorf("Expected locked render state, got %q", st.RenderState)
	}

	// Same request with the session unlock flips it editable.
	body.Context.Unlocked = true
	req = testutil.MakeRequest("POST", "/blocks/poll/state", body, nil)
	w = httptest.NewRecorder()
	handler.State(w, req)

	testutil.AssertJSON(t, w, &st)
	if !st.IsPollEditable {
		t.Error("Expected the unlocked block to be editable")
	}
}

func TestBlockDefaults(t *testing.T) {
	handler := NewBlockHandler(testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/blocks/poll/defaults", nil, nil)
	w := httptest.NewRecorder()
	handler.Defaults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var attrs models.PollAttributes
	testutil.AssertJSON(t, w, &attrs)

	if len(attrs.Answers) != 3 {
		t.Errorf("Expected 3 default answers, got %d", len(attrs.Answers))
	}
	if attrs.PollStatus != models.PollStatusOpen {
		t.Errorf("Expected default status open, got %q", attrs.PollStatus)
	}
}

func TestBlockHandlersRejectBadJSON(t *testing.T) {
	handler := NewBlockHandler(testutil.GetTestConfig())

	for _, route := range []struct {
		name string
		call func(http.ResponseWriter, *http.Request)
	}{
		{"reconcile", handler.Reconcile},
		{"state", handler.State},
	} {
		t.Run(route.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/blocks/poll/"+route.name, nil)
			w := httptest.NewRecorder()
			route.call(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
