// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/arpitjain099/crowdsignal-forms/block"
	"github.com/arpitjain099/crowdsignal-forms/cliparse"
	"github.com/arpitjain099/crowdsignal-forms/middleware"
	"github.com/arpitjain099/crowdsignal-forms/models"
)

// BlockHandler exposes the pure block logic over HTTP for hosts that
// keep attribute state server-side. Stateless; no database needed.
type BlockHandler struct {
	cfg cliparse.Config
}

func NewBlockHandler(cfg cliparse.Config) *BlockHandler {
	return &BlockHandler{cfg: cfg}
}

type reconcileResponse struct {
	Patch   block.AttributePatch `json:"patch"`
	Changed bool                 `json:"changed"`
}

// Reconcile handles POST /blocks/poll/reconcile
func (h *BlockHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req models.ReconcileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	patch, changed := block.Reconcile(req.Attributes)

	middleware.JSONResponse(w, http.StatusOK, reconcileResponse{
		Patch:   patch,
		Changed: changed,
	})
}

// State handles POST /blocks/poll/state
func (h *BlockHandler) State(w http.ResponseWriter, r *http.Request) {
	var req models.StateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx := block.EditorContext{
		IsSelected:  req.Context.IsSelected,
		PostStatus:  req.Context.PostStatus,
		PostContent: req.Context.PostContent,
	}
	session := &block.EditSession{}
	if req.Context.Unlocked {
		session.Unlock()
	}

	st := block.DeriveState(req.Attributes, ctx, session, time.Now())

	middleware.JSONResponse(w, http.StatusOK, st)
}

// Defaults handles GET /blocks/poll/defaults
func (h *BlockHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.DefaultAttributes())
}
