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

type RankingHandler struct {
	svc      *club.Service
	validate *validation.Validator
}

func NewRankingHandler(svc *club.Service, validate *validation.Validator) *RankingHandler {
	return &RankingHandler{svc: svc, validate: validate}
}

// RankingYears handles GET /clubs/{id}/rankings/years
func (h *RankingHandler) RankingYears(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	years, err := h.svc.RankingYears(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, years)
}

// YearBooks handles GET /clubs/{id}/rankings/{year}
func (h *RankingHandler) YearBooks(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	year, err := pathYear(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	books, err := h.svc.YearBooks(r.Context(), r.PathValue("id"), year, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, books)
}

// SaveYearRankings handles PUT /clubs/{id}/rankings/{year}
//
// The body replaces the caller's whole ranking for the year.
func (h *RankingHandler) SaveYearRankings(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	year, err := pathYear(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.SaveRankingsRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	clubID := r.PathValue("id")
	if err := h.svc.SaveYearRankings(r.Context(), userID, clubID, year, req.Ranked, req.Unread); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("rankings saved", "club_id", clubID, "year", year, "user_id", userID,
		"ranked", len(req.Ranked), "unread", len(req.Unread))
	w.WriteHeader(http.StatusNoContent)
}

// GlobalRankingYears handles GET /clubs/{id}/global-rankings
func (h *RankingHandler) GlobalRankingYears(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	years, err := h.svc.YearsWithRankings(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, years)
}

// GlobalRankings handles GET /clubs/{id}/global-rankings/{year}
func (h *RankingHandler) GlobalRankings(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	year, err := pathYear(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	clubID := r.PathValue("id")
	if err := h.svc.RequireMember(r.Context(), clubID, userID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	rankings, err := h.svc.GlobalRankings(r.Context(), clubID, year)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, nonNil(rankings))
}
