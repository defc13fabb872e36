// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/AdamDeHovitz/readers-choice/club"
	"github.com/AdamDeHovitz/readers-choice/fuzzy"
	"github.com/AdamDeHovitz/readers-choice/middleware"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/validation"
)

type ThemeHandler struct {
	svc      *club.Service
	validate *validation.Validator
}

func NewThemeHandler(svc *club.Service, validate *validation.Validator) *ThemeHandler {
	return &ThemeHandler{svc: svc, validate: validate}
}

// ListThemes handles GET /clubs/{id}/themes
func (h *ThemeHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	themes, err := h.svc.ListThemes(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, themes)
}

// Suggestions handles GET /clubs/{id}/themes/suggestions
func (h *ThemeHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	themes, err := h.svc.ThemeSuggestions(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, themes)
}

// SuggestTheme handles POST /clubs/{id}/themes
func (h *ThemeHandler) SuggestTheme(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.SuggestThemeRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	theme, err := h.svc.SuggestTheme(r.Context(), r.PathValue("id"), req.Name, userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("theme suggested", "theme_id", theme.ID, "club_id", theme.ClubID, "by", userID)
	middleware.JSONResponse(w, http.StatusCreated, theme)
}

// ToggleUpvote handles POST /themes/{id}/upvote
func (h *ThemeHandler) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	userID, err := caller(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	action, err := h.svc.ToggleThemeUpvote(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ToggleResponse{Action: action})
}

// Match handles POST /themes/match
//
// With "other" set it reports whether the two names match. With "existing"
// set it returns the first existing name that matches, or null.
func (h *ThemeHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req models.FuzzyMatchRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var resp models.FuzzyMatchResponse
	if req.Other != "" {
		ok := fuzzy.IsMatch(req.Name, req.Other)
		resp.IsMatch = &ok
	}
	if match, ok := fuzzy.FindMatch(req.Name, req.Existing); ok {
		resp.Match = &match
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
