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

type ClubHandler struct {
	svc      *club.Service
	validate *validation.Validator
}

func NewClubHandler(svc *club.Service, validate *validation.Validator) *ClubHandler {
	return &ClubHandler{svc: svc, validate: validate}
}

// CreateClub handles POST /clubs
func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.CreateClubRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateClub(r.Context(), req, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("club created", "club_id", c.ID, "created_by", userID)
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// GetClub handles GET /clubs/{id}
func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	details, err := h.svc.ClubDetails(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, details)
}

// AddMember handles POST /clubs/{id}/members
func (h *ClubHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.AddMemberRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	clubID := r.PathValue("id")
	member, err := h.svc.AddMember(r.Context(), clubID, userID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("member added", "club_id", clubID, "user_id", member.UserID, "is_admin", member.IsAdmin)
	middleware.JSONResponse(w, http.StatusCreated, member)
}

// ClubState handles GET /clubs/{id}/state
func (h *ClubHandler) ClubState(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	state, err := h.svc.ClubState(r.Context(), r.PathValue("id"), userID, h.svc.Now())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, state)
}
