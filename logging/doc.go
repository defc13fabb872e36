// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging configures the process-wide log/slog logger.
//
// The format defaults to text on a terminal and JSON elsewhere. Debug level
// adds source locations.
package logging
