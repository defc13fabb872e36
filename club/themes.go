// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package club

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/fuzzy"
	"github.com/AdamDeHovitz/readers-choice/models"
)

// SuggestTheme adds a theme to the club unless a fuzzy match already exists.
func (s *Service) SuggestTheme(ctx context.Context, clubID, name, userID string) (models.Theme, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return models.Theme{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Theme{}, apperr.Validation("theme name is required")
	}

	existing, err := s.repo.ThemeSummaries(ctx, clubID, userID)
	if err != nil {
		return models.Theme{}, err
	}
	if i := fuzzy.FindMatchIndex(name, len(existing), func(i int) string { return existing[i].Theme.Name }); i >= 0 {
		match := existing[i].Theme
		return models.Theme{}, apperr.ErrDuplicateTheme.
			WithMessage(fmt.Sprintf("a similar theme already exists: %q", match.Name)).
			WithDetails(map[string]string{"existing_id": match.ID, "existing_name": match.Name})
	}

	return s.repo.CreateTheme(ctx, clubID, name, userID)
}

// ToggleThemeUpvote flips the caller's upvote on a theme.
func (s *Service) ToggleThemeUpvote(ctx context.Context, themeID, userID string) (string, error) {
	theme, err := s.repo.GetTheme(ctx, themeID)
	if err != nil {
		return "", err
	}
	if err := s.RequireMember(ctx, theme.ClubID, userID); err != nil {
		return "", err
	}
	return s.repo.ToggleThemeUpvote(ctx, themeID, userID)
}

// ListThemes returns the club's themes in submission order.
func (s *Service) ListThemes(ctx context.Context, clubID, userID string) ([]models.ThemeSummary, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return nil, err
	}
	themes, err := s.repo.ThemeSummaries(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if themes == nil {
		themes = []models.ThemeSummary{}
	}
	return themes, nil
}

// ThemeSuggestions orders themes for picking the next one: never-used
// themes first, then by upvotes.
func (s *Service) ThemeSuggestions(ctx context.Context, clubID, userID string) ([]models.ThemeSummary, error) {
	themes, err := s.ListThemes(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(themes, func(i, j int) bool {
		a, b := themes[i], themes[j]
		if (a.TimesUsed == 0) != (b.TimesUsed == 0) {
			return a.TimesUsed == 0
		}
		return a.UpvoteCount > b.UpvoteCount
	})
	return themes, nil
}
