// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/AdamDeHovitz/readers-choice/club"
	"github.com/AdamDeHovitz/readers-choice/middleware"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/validation"
)

type VotingHandler struct {
	svc      *club.Service
	validate *validation.Validator
}

func NewVotingHandler(svc *club.Service, validate *validation.Validator) *VotingHandler {
	return &VotingHandler{svc: svc, validate: validate}
}

// Nominate handles POST /meetings/{id}/nominations
//
// The body names either an existing book_id or a catalog search result under
// "book", which is resolved to a book in the same transaction.
func (h *VotingHandler) Nominate(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.NominateRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	meetingID := r.PathValue("id")
	resp := models.NominateResponse{BookID: req.BookID}
	if req.Book != nil {
		option, err := h.svc.NominateBook(r.Context(), meetingID, *req.Book, userID)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
		resp.BookOptionID, resp.BookID = option.ID, option.BookID
	} else {
		resp.BookOptionID, err = h.svc.Nominate(r.Context(), meetingID, req.BookID, userID)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
	}

	slog.Info("book nominated", "meeting_id", meetingID, "book_id", resp.BookID, "by", userID)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ToggleVote handles POST /options/{id}/vote
func (h *VotingHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	optionID := r.PathValue("id")
	action, err := h.svc.ToggleVote(r.Context(), optionID, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Debug("vote toggled", "option_id", optionID, "user_id", userID, "action", action)
	middleware.JSONResponse(w, http.StatusOK, models.ToggleResponse{Action: action})
}

// Finalize handles POST /meetings/{id}/finalize
func (h *VotingHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.FinalizeRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.svc.Finalize(r.Context(), r.PathValue("id"), req.SelectedBookID, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("meeting finalized", "meeting_id", m.ID, "book_id", req.SelectedBookID, "by", userID)
	middleware.JSONResponse(w, http.StatusOK, m)
}
