// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package fuzzy detects likely-duplicate theme names.
//
// Dedup is advisory: the theme table has no uniqueness constraint, but
// creating a theme is rejected when FindMatch finds an existing one.
package fuzzy
