// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"time"

	"github.com/AdamDeHovitz/readers-choice/apperr"
)

// Phase is the derived state of a meeting. It is never stored.
type Phase string

const (
	PhaseNominating Phase = "nominating"
	PhaseVoting     Phase = "voting"
	PhaseFinalized  Phase = "finalized"
	// PhaseInactive describes a club with no upcoming meeting; there is no
	// meeting object to operate on.
	PhaseInactive Phase = "inactive"
)

// Derive computes a meeting's phase at now.
//
// A finalized meeting is terminal. Otherwise the meeting is nominating until
// the nomination deadline passes (or forever if it has none) and voting after
// that. A lapsed voting deadline does not advance the meeting: it stays in
// voting until an admin finalizes it.
func Derive(now time.Time, nominationDeadline, votingDeadline *time.Time, isFinalized bool) Phase {
	if isFinalized {
		return PhaseFinalized
	}
	if nominationDeadline == nil || !now.After(*nominationDeadline) {
		return PhaseNominating
	}
	return PhaseVoting
}

// CanNominate reports whether new book options may be added.
func (p Phase) CanNominate() bool {
	return p == PhaseNominating
}

// CanVote reports whether votes may be toggled.
func (p Phase) CanVote() bool {
	return p == PhaseVoting
}

// CanFinalize reports whether an admin may finalize. Admins may skip voting.
func (p Phase) CanFinalize() bool {
	return p == PhaseNominating || p == PhaseVoting
}

// CheckNominate returns nil when p permits nominations.
func CheckNominate(p Phase) error {
	if !p.CanNominate() {
		return apperr.ErrNominationsClosed
	}
	return nil
}

// CheckVote returns nil when p permits voting.
func CheckVote(p Phase) error {
	if !p.CanVote() {
		return apperr.ErrVotingClosed
	}
	return nil
}

// CheckFinalize returns nil when p permits finalization.
func CheckFinalize(p Phase) error {
	if p == PhaseFinalized {
		return apperr.ErrAlreadyFinalized
	}
	if !p.CanFinalize() {
		return apperr.Conflictf("cannot finalize a meeting in phase %s", p)
	}
	return nil
}

// ValidateSchedule checks deadline ordering: nomination deadline, then voting
// deadline, then the meeting itself. Each pair is only compared when both
// ends are set.
func ValidateSchedule(meetingDate time.Time, nominationDeadline, votingDeadline *time.Time) error {
	if meetingDate.IsZero() {
		return apperr.Validation("meeting date is required")
	}
	if nominationDeadline != nil && votingDeadline != nil && votingDeadline.Before(*nominationDeadline) {
		return apperr.Validation("voting deadline must not be before the nomination deadline")
	}
	if nominationDeadline != nil && meetingDate.Before(*nominationDeadline) {
		return apperr.Validation("nomination deadline must not be after the meeting date")
	}
	if votingDeadline != nil && meetingDate.Before(*votingDeadline) {
		return apperr.Validation("voting deadline must not be after the meeting date")
	}
	return nil
}

// NextDeadline returns the deadline that ends the current phase, if any.
func NextDeadline(p Phase, nominationDeadline, votingDeadline *time.Time) *time.Time {
	switch p {
	case PhaseNominating:
		return nominationDeadline
	case PhaseVoting:
		return votingDeadline
	default:
		return nil
	}
}
