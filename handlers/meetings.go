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

type MeetingHandler struct {
	svc      *club.Service
	validate *validation.Validator
}

func NewMeetingHandler(svc *club.Service, validate *validation.Validator) *MeetingHandler {
	return &MeetingHandler{svc: svc, validate: validate}
}

// ListMeetings handles GET /clubs/{id}/meetings
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	meetings, err := h.svc.ListMeetings(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, meetings)
}

// CreateMeeting handles POST /clubs/{id}/meetings
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.MeetingInput
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.svc.CreateMeeting(r.Context(), r.PathValue("id"), req, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("meeting created", "meeting_id", m.ID, "club_id", m.ClubID, "meeting_date", m.MeetingDate)
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// LogPastMeeting handles POST /clubs/{id}/meetings/past
func (h *MeetingHandler) LogPastMeeting(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.LogPastMeetingRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.svc.LogPastMeeting(r.Context(), r.PathValue("id"), req, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("past meeting logged", "meeting_id", m.ID, "club_id", m.ClubID, "book_id", req.BookID)
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// GetMeeting handles GET /meetings/{id}
func (h *MeetingHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	details, err := h.svc.MeetingDetails(r.Context(), r.PathValue("id"), userID, h.svc.Now())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, details)
}

// GetPhase handles GET /meetings/{id}/phase
func (h *MeetingHandler) GetPhase(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	meetingID := r.PathValue("id")
	phase, err := h.svc.MeetingPhase(r.Context(), meetingID, userID, h.svc.Now())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PhaseResponse{
		MeetingID: meetingID,
		Phase:     string(phase),
	})
}

// UpdateMeeting handles PATCH /meetings/{id}
func (h *MeetingHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.UpdateMeetingRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	m, err := h.svc.UpdateMeeting(r.Context(), r.PathValue("id"), req, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("meeting updated", "meeting_id", m.ID, "by", userID)
	middleware.JSONResponse(w, http.StatusOK, m)
}

// DeleteMeeting handles DELETE /meetings/{id}
func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	meetingID := r.PathValue("id")
	if err := h.svc.DeleteMeeting(r.Context(), meetingID, userID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("meeting deleted", "meeting_id", meetingID, "by", userID)
	w.WriteHeader(http.StatusNoContent)
}
