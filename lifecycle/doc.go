// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle derives a meeting's phase from wall-clock time.

# Phases

	nominating → voting → finalized

plus inactive for a club without an upcoming meeting.

Derive is a pure function of now, the two optional deadlines and the
finalized flag. Nothing advances a meeting in the background: the phase is
recomputed on every read, so a meeting whose voting deadline has lapsed
reports voting until an admin finalizes it.

# Permitted Operations

	nominating  nominate ✓  vote ✗  finalize ✓
	voting      nominate ✗  vote ✓  finalize ✓
	finalized   nominate ✗  vote ✗  finalize ✗ (ErrAlreadyFinalized)
*/
package lifecycle
