// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package club

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/lifecycle"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/store"
	"github.com/AdamDeHovitz/readers-choice/testutil"
)

type env struct {
	svc    *Service
	st     *store.Store
	now    time.Time
	club   models.Club
	bookA  string
	bookB  string
	bookC  string
	admin  string
	member string
}

func setup(t *testing.T) env {
	t.Helper()

	st := testutil.SetupTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	e := env{
		svc:    NewService(st, WithClock(func() time.Time { return now })),
		st:     st,
		now:    now,
		admin:  "admin-user",
		member: "member-user",
	}
	e.club = testutil.CreateTestClub(t, st, e.admin)
	testutil.AddTestMember(t, st, e.club.ID, e.member, false)
	e.bookA = testutil.CreateTestBook(t, st, "ext-a", "Dune")
	e.bookB = testutil.CreateTestBook(t, st, "ext-b", "Emma")
	e.bookC = testutil.CreateTestBook(t, st, "ext-c", "Ulysses")
	return e
}

// nominatingMeeting has its nomination deadline tomorrow.
func (e env) nominatingMeeting(t *testing.T) models.Meeting {
	t.Helper()
	return testutil.CreateTestMeeting(t, e.st, e.club.ID,
		testutil.TimePtr(e.now.Add(24*time.Hour)), testutil.TimePtr(e.now.Add(48*time.Hour)))
}

// votingMeeting's nomination deadline passed a second ago.
func (e env) votingMeeting(t *testing.T) models.Meeting {
	t.Helper()
	return testutil.CreateTestMeeting(t, e.st, e.club.ID,
		testutil.TimePtr(e.now.Add(-time.Second)), testutil.TimePtr(e.now.Add(48*time.Hour)))
}

func TestMeetingPhase_Boundary(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	m := e.votingMeeting(t)
	phase, err := e.svc.MeetingPhase(ctx, m.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseVoting, phase)

	// Voting deadline in the past changes nothing.
	lapsed := testutil.CreateTestMeeting(t, e.st, e.club.ID,
		testutil.TimePtr(e.now.Add(-2*time.Hour)), testutil.TimePtr(e.now.Add(-time.Hour)))
	phase, err = e.svc.MeetingPhase(ctx, lapsed.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseVoting, phase)

	open := testutil.CreateTestMeeting(t, e.st, e.club.ID, nil, nil)
	phase, err = e.svc.MeetingPhase(ctx, open.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseNominating, phase)

	_, err = e.svc.MeetingPhase(ctx, "missing", e.member, e.now)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = e.svc.MeetingPhase(ctx, m.ID, "outsider", e.now)
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))
}

func TestNominate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m := e.nominatingMeeting(t)

	optionID, err := e.svc.Nominate(ctx, m.ID, e.bookA, e.member)
	require.NoError(t, err)
	assert.NotEmpty(t, optionID)

	tests := []struct {
		name    string
		meeting string
		book    string
		user    string
		wantErr error
	}{
		{name: "duplicate", meeting: m.ID, book: e.bookA, user: e.admin, wantErr: apperr.ErrDuplicateNomination},
		{name: "not a member", meeting: m.ID, book: e.bookB, user: "outsider", wantErr: apperr.ErrNotAMember},
		{name: "missing book id", meeting: m.ID, book: "", user: e.member, wantErr: apperr.ErrValidation},
		{name: "unknown book", meeting: m.ID, book: "nope", user: e.member, wantErr: apperr.ErrNotFound},
		{name: "unknown meeting", meeting: "nope", book: e.bookB, user: e.member, wantErr: apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Nominate(ctx, tt.meeting, tt.book, tt.user)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNominate_ClosedPhases(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	voting := e.votingMeeting(t)
	_, err := e.svc.Nominate(ctx, voting.ID, e.bookA, e.member)
	assert.True(t, errors.Is(err, apperr.ErrNominationsClosed))

	finalized := e.nominatingMeeting(t)
	_, err = e.svc.Finalize(ctx, finalized.ID, e.bookA, e.admin)
	require.NoError(t, err)
	_, err = e.svc.Nominate(ctx, finalized.ID, e.bookB, e.member)
	assert.True(t, errors.Is(err, apperr.ErrNominationsClosed))
}

func TestNominateBook_ResolvesCatalogResult(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m := e.nominatingMeeting(t)

	result := models.BookSearchResult{
		ExternalID:     "ol-123",
		ExternalSource: models.SourceOpenLibrary,
		Title:          "Middlemarch",
		Author:         "George Eliot",
	}
	option, err := e.svc.NominateBook(ctx, m.ID, result, e.member)
	require.NoError(t, err)

	again, err := e.st.ResolveOrCreateBook(ctx, result)
	require.NoError(t, err)
	assert.Equal(t, option.BookID, again)

	_, err = e.svc.NominateBook(ctx, m.ID, result, e.admin)
	assert.True(t, errors.Is(err, apperr.ErrDuplicateNomination))
}

func TestToggleVote(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	nominating := e.nominatingMeeting(t)
	early := testutil.AddTestOption(t, e.st, nominating.ID, e.bookA, e.member)
	_, err := e.svc.ToggleVote(ctx, early.ID, e.member)
	assert.True(t, errors.Is(err, apperr.ErrVotingClosed))

	voting := e.votingMeeting(t)
	option := testutil.AddTestOption(t, e.st, voting.ID, e.bookA, e.member)

	action, err := e.svc.ToggleVote(ctx, option.ID, e.member)
	require.NoError(t, err)
	assert.Equal(t, models.VoteAdded, action)

	action, err = e.svc.ToggleVote(ctx, option.ID, e.member)
	require.NoError(t, err)
	assert.Equal(t, models.VoteRemoved, action)

	_, err = e.svc.ToggleVote(ctx, option.ID, "outsider")
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))

	_, err = e.svc.ToggleVote(ctx, "missing", e.member)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = e.svc.Finalize(ctx, voting.ID, e.bookA, e.admin)
	require.NoError(t, err)
	_, err = e.svc.ToggleVote(ctx, option.ID, e.member)
	assert.True(t, errors.Is(err, apperr.ErrVotingClosed))
}

// finalizingRepo commits a finalize right before the vote reaches the store.
type finalizingRepo struct {
	*store.Store
	meetingID string
	bookID    string
	admin     string
}

func (r finalizingRepo) ToggleVote(ctx context.Context, optionID, userID string, check func(models.Meeting) error) (string, error) {
	if _, err := r.Store.FinalizeMeeting(ctx, r.meetingID, r.bookID, r.admin, nil); err != nil {
		return "", err
	}
	return r.Store.ToggleVote(ctx, optionID, userID, check)
}

func TestToggleVote_FinalizedBeforeWrite(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	voting := e.votingMeeting(t)
	option := testutil.AddTestOption(t, e.st, voting.ID, e.bookA, e.member)

	repo := finalizingRepo{Store: e.st, meetingID: voting.ID, bookID: e.bookA, admin: e.admin}
	svc := NewService(repo, WithClock(func() time.Time { return e.now }))

	_, err := svc.ToggleVote(ctx, option.ID, e.member)
	assert.True(t, errors.Is(err, apperr.ErrVotingClosed))

	phase, err := e.svc.MeetingPhase(ctx, voting.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseFinalized, phase)

	details, err := e.svc.MeetingDetails(ctx, voting.ID, e.member, e.now)
	require.NoError(t, err)
	require.Len(t, details.Options, 1)
	assert.Zero(t, details.Options[0].VoteCount)
}

func TestToggleVote_ConcurrentMembers(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	voting := e.votingMeeting(t)
	option := testutil.AddTestOption(t, e.st, voting.ID, e.bookA, e.member)

	const members = 15
	for i := 0; i < members; i++ {
		testutil.AddTestMember(t, e.st, e.club.ID, fmt.Sprintf("voter-%d", i), false)
	}

	var (
		wg     sync.WaitGroup
		added  int32
		failed int32
	)
	for i := 0; i < members; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			action, err := e.svc.ToggleVote(ctx, option.ID, fmt.Sprintf("voter-%d", i))
			if err != nil {
				atomic.AddInt32(&failed, 1)
				return
			}
			if action == models.VoteAdded {
				atomic.AddInt32(&added, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Zero(t, failed)
	assert.Equal(t, int32(members), added)

	details, err := e.svc.MeetingDetails(ctx, voting.ID, e.member, e.now)
	require.NoError(t, err)
	require.Len(t, details.Options, 1)
	assert.Equal(t, members, details.Options[0].VoteCount)
}

func TestFinalize(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m := e.votingMeeting(t)
	testutil.AddTestOption(t, e.st, m.ID, e.bookA, e.member)
	testutil.AddTestOption(t, e.st, m.ID, e.bookB, e.member)

	_, err := e.svc.Finalize(ctx, m.ID, e.bookA, e.member)
	assert.True(t, errors.Is(err, apperr.ErrNotAdmin))

	_, err = e.svc.Finalize(ctx, m.ID, "", e.admin)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = e.svc.Finalize(ctx, m.ID, e.bookC, e.admin)
	assert.True(t, errors.Is(err, apperr.ErrValidation), "book not among nominations")

	finalized, err := e.svc.Finalize(ctx, m.ID, e.bookA, e.admin)
	require.NoError(t, err)
	assert.True(t, finalized.IsFinalized)

	_, err = e.svc.Finalize(ctx, m.ID, e.bookB, e.admin)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyFinalized))

	got, err := e.st.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, e.bookA, *got.SelectedBookID)

	phase, err := e.svc.MeetingPhase(ctx, m.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseFinalized, phase)
}

func TestFinalize_FromNominatingWithoutOptions(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m := e.nominatingMeeting(t)

	_, err := e.svc.Finalize(ctx, m.ID, e.bookC, e.admin)
	require.NoError(t, err)
}

func TestValidateRankings(t *testing.T) {
	tests := []struct {
		name    string
		ranked  []models.RankedBook
		unread  []string
		wantErr error
	}{
		{name: "empty", wantErr: nil},
		{name: "permutation", ranked: []models.RankedBook{{BookID: "a", Rank: 2}, {BookID: "b", Rank: 1}}, unread: []string{"c"}},
		{name: "gap", ranked: []models.RankedBook{{BookID: "a", Rank: 1}, {BookID: "b", Rank: 3}}, wantErr: apperr.ErrInvalidRanking},
		{name: "repeated rank", ranked: []models.RankedBook{{BookID: "a", Rank: 1}, {BookID: "b", Rank: 1}}, wantErr: apperr.ErrInvalidRanking},
		{name: "zero rank", ranked: []models.RankedBook{{BookID: "a", Rank: 0}}, wantErr: apperr.ErrInvalidRanking},
		{name: "duplicate book", ranked: []models.RankedBook{{BookID: "a", Rank: 1}, {BookID: "a", Rank: 2}}, wantErr: apperr.ErrValidation},
		{name: "ranked and unread", ranked: []models.RankedBook{{BookID: "a", Rank: 1}}, unread: []string{"a"}, wantErr: apperr.ErrValidation},
		{name: "blank unread", unread: []string{" "}, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRankings(tt.ranked, tt.unread)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestSaveYearRankings_PermutationInvariant(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	snapshots := [][]models.RankedBook{
		{{BookID: e.bookA, Rank: 1}, {BookID: e.bookB, Rank: 2}, {BookID: e.bookC, Rank: 3}},
		{{BookID: e.bookC, Rank: 1}},
		{{BookID: e.bookB, Rank: 2}, {BookID: e.bookA, Rank: 1}},
	}

	for _, ranked := range snapshots {
		require.NoError(t, e.svc.SaveYearRankings(ctx, e.member, e.club.ID, 2025, ranked, nil))

		mine, err := e.st.UserRankings(ctx, e.member, e.club.ID, 2025)
		require.NoError(t, err)

		var ranks []int
		for _, r := range mine {
			if r != nil {
				ranks = append(ranks, *r)
			}
		}
		want := make([]int, len(ranked))
		for i := range want {
			want[i] = i + 1
		}
		assert.ElementsMatch(t, want, ranks)
	}

	err := e.svc.SaveYearRankings(ctx, e.member, e.club.ID, 2025,
		[]models.RankedBook{{BookID: e.bookA, Rank: 2}}, nil)
	assert.True(t, errors.Is(err, apperr.ErrInvalidRanking))

	err = e.svc.SaveYearRankings(ctx, "outsider", e.club.ID, 2025, nil, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))
}

func TestGlobalRankings(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	require.NoError(t, e.svc.SaveYearRankings(ctx, e.admin, e.club.ID, 2025,
		[]models.RankedBook{{BookID: e.bookA, Rank: 1}, {BookID: e.bookB, Rank: 2}}, []string{e.bookC}))
	require.NoError(t, e.svc.SaveYearRankings(ctx, e.member, e.club.ID, 2025,
		[]models.RankedBook{{BookID: e.bookA, Rank: 2}, {BookID: e.bookB, Rank: 1}}, nil))

	rankings, err := e.svc.GlobalRankings(ctx, e.club.ID, 2025)
	require.NoError(t, err)
	require.Len(t, rankings, 2, "unread-only book must be absent")

	points := map[string]int{}
	for _, r := range rankings {
		points[r.BookID] = r.TotalPoints
		assert.InDelta(t, 1.5, r.AverageRank, 1e-9)
		assert.Equal(t, 2, r.NumberOfRankings)
	}
	assert.Equal(t, 3, points[e.bookA])
	assert.Equal(t, 3, points[e.bookB])

	empty, err := e.svc.GlobalRankings(ctx, e.club.ID, 1999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSortTallies(t *testing.T) {
	tallies := []models.OptionTally{
		{Option: models.BookOption{ID: "first", Seq: 1}, VoteCount: 1},
		{Option: models.BookOption{ID: "second", Seq: 2}, VoteCount: 3},
		{Option: models.BookOption{ID: "third", Seq: 3}, VoteCount: 1},
		{Option: models.BookOption{ID: "fourth", Seq: 4}, VoteCount: 3},
	}
	SortTallies(tallies)

	var order []string
	for _, tl := range tallies {
		order = append(order, tl.Option.ID)
	}
	assert.Equal(t, []string{"second", "fourth", "first", "third"}, order)
}

func TestMeetingDetails(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m := e.votingMeeting(t)
	first := testutil.AddTestOption(t, e.st, m.ID, e.bookA, e.member)
	second := testutil.AddTestOption(t, e.st, m.ID, e.bookB, e.member)

	_, err := e.svc.ToggleVote(ctx, second.ID, e.admin)
	require.NoError(t, err)

	details, err := e.svc.MeetingDetails(ctx, m.ID, e.admin, e.now)
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.PhaseVoting), details.Phase)
	assert.True(t, details.CurrentUserIsAdmin)
	require.Len(t, details.Options, 2)
	assert.Equal(t, second.ID, details.Options[0].Option.ID)
	assert.True(t, details.Options[0].UserHasVoted)
	assert.Equal(t, first.ID, details.Options[1].Option.ID)
	require.NotNil(t, details.PhaseEnds)
	assert.Contains(t, details.PhaseEndsIn, "from now")
	assert.Nil(t, details.SelectedBook)

	_, err = e.svc.MeetingDetails(ctx, m.ID, "outsider", e.now)
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))
}

func TestClubState(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	state, err := e.svc.ClubState(ctx, e.club.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.PhaseInactive), state.State)
	assert.Nil(t, state.Meeting)

	testutil.CreateFinalizedMeeting(t, e.st, e.club.ID, e.bookB, e.now.Add(-30*24*time.Hour))
	m := e.nominatingMeeting(t)

	state, err = e.svc.ClubState(ctx, e.club.ID, e.member, e.now)
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.PhaseNominating), state.State)
	require.NotNil(t, state.Meeting)
	assert.Equal(t, m.ID, state.Meeting.ID)
	require.NotNil(t, state.PreviousPick)
	assert.Equal(t, e.bookB, state.PreviousPick.ID)
}

func TestCreateMeeting(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	theme := "  Mystery "

	input := models.MeetingInput{
		MeetingDate:        e.now.Add(72 * time.Hour),
		NominationDeadline: testutil.TimePtr(e.now.Add(24 * time.Hour)),
		VotingDeadline:     testutil.TimePtr(e.now.Add(48 * time.Hour)),
		ThemeName:          &theme,
	}

	m, err := e.svc.CreateMeeting(ctx, e.club.ID, input, e.admin)
	require.NoError(t, err)
	require.NotNil(t, m.Theme)
	assert.Equal(t, "Mystery", m.Theme.Name)

	again, err := e.svc.CreateMeeting(ctx, e.club.ID, input, e.admin)
	require.NoError(t, err)
	assert.Equal(t, m.Theme.ID, again.Theme.ID, "same theme name reuses the theme")

	_, err = e.svc.CreateMeeting(ctx, e.club.ID, input, e.member)
	assert.True(t, errors.Is(err, apperr.ErrNotAdmin))

	bad := input
	bad.VotingDeadline = testutil.TimePtr(e.now.Add(12 * time.Hour))
	_, err = e.svc.CreateMeeting(ctx, e.club.ID, bad, e.admin)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestUpdateAndDeleteMeeting(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	m := e.nominatingMeeting(t)

	req := models.UpdateMeetingRequest{MeetingInput: models.MeetingInput{MeetingDate: e.now.Add(96 * time.Hour)}}
	updated, err := e.svc.UpdateMeeting(ctx, m.ID, req, e.admin)
	require.NoError(t, err)
	assert.Nil(t, updated.NominationDeadline)

	req.SelectedBookID = &e.bookA
	_, err = e.svc.UpdateMeeting(ctx, m.ID, req, e.admin)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	got, err := e.st.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFinalized)

	require.Error(t, e.svc.DeleteMeeting(ctx, m.ID, e.member))
	require.NoError(t, e.svc.DeleteMeeting(ctx, m.ID, e.admin))
	_, err = e.st.GetMeeting(ctx, m.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestLogPastMeeting_AndYearBooks(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	march := time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)
	last := time.Date(2023, 11, 1, 19, 0, 0, 0, time.UTC)

	for _, p := range []struct {
		date time.Time
		book string
	}{{march, e.bookA}, {june, e.bookB}, {last, e.bookC}} {
		m, err := e.svc.LogPastMeeting(ctx, e.club.ID, models.LogPastMeetingRequest{MeetingDate: p.date, BookID: p.book}, e.admin)
		require.NoError(t, err)
		assert.True(t, m.IsFinalized)
	}

	_, err := e.svc.LogPastMeeting(ctx, e.club.ID, models.LogPastMeetingRequest{MeetingDate: march, BookID: "nope"}, e.admin)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	years, err := e.svc.RankingYears(ctx, e.club.ID, e.member)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023}, years)

	require.NoError(t, e.svc.SaveYearRankings(ctx, e.member, e.club.ID, 2024,
		[]models.RankedBook{{BookID: e.bookB, Rank: 1}}, []string{e.bookA}))

	books, err := e.svc.YearBooks(ctx, e.club.ID, 2024, e.member)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, e.bookB, books[0].Book.ID)
	require.NotNil(t, books[0].Rank)
	assert.Equal(t, 1, *books[0].Rank)
	assert.Nil(t, books[1].Rank)

	ranked, err := e.svc.YearsWithRankings(ctx, e.club.ID, e.member)
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, ranked)
}

func TestThemes(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	mystery, err := e.svc.SuggestTheme(ctx, e.club.ID, "Mystery", e.member)
	require.NoError(t, err)

	_, err = e.svc.SuggestTheme(ctx, e.club.ID, "  mysteries ", e.admin)
	assert.True(t, errors.Is(err, apperr.ErrDuplicateTheme))
	assert.Contains(t, err.Error(), "Mystery")

	_, err = e.svc.SuggestTheme(ctx, e.club.ID, "   ", e.admin)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	scifi, err := e.svc.SuggestTheme(ctx, e.club.ID, "Science Fiction", e.admin)
	require.NoError(t, err)

	action, err := e.svc.ToggleThemeUpvote(ctx, scifi.ID, e.member)
	require.NoError(t, err)
	assert.Equal(t, models.VoteAdded, action)

	// Mystery gets used by a meeting, so it drops behind unused themes.
	name := "Mystery"
	_, err = e.svc.CreateMeeting(ctx, e.club.ID, models.MeetingInput{MeetingDate: e.now.Add(time.Hour), ThemeName: &name}, e.admin)
	require.NoError(t, err)

	suggestions, err := e.svc.ThemeSuggestions(ctx, e.club.ID, e.member)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, scifi.ID, suggestions[0].Theme.ID)
	assert.True(t, suggestions[0].UserHasUpvoted)
	assert.Equal(t, mystery.ID, suggestions[1].Theme.ID)
	assert.Equal(t, 1, suggestions[1].TimesUsed)

	_, err = e.svc.ToggleThemeUpvote(ctx, scifi.ID, "outsider")
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))
}

func TestCreateClubAndAddMember(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	c, err := e.svc.CreateClub(ctx, models.CreateClubRequest{Name: "  Night Readers "}, "founder")
	require.NoError(t, err)
	assert.Equal(t, "Night Readers", c.Name)

	_, err = e.svc.AddMember(ctx, c.ID, e.member, models.AddMemberRequest{UserID: "new"})
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))

	_, err = e.svc.AddMember(ctx, c.ID, "founder", models.AddMemberRequest{UserID: "new"})
	require.NoError(t, err)
	require.NoError(t, e.svc.RequireMember(ctx, c.ID, "new"))
	assert.True(t, errors.Is(e.svc.RequireAdmin(ctx, c.ID, "new"), apperr.ErrNotAdmin))

	_, err = e.svc.CreateClub(ctx, models.CreateClubRequest{Name: " "}, "founder")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestClubDetails(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	details, err := e.svc.ClubDetails(ctx, e.club.ID, e.member)
	require.NoError(t, err)
	assert.Equal(t, e.club.ID, details.ID)
	assert.False(t, details.CurrentUserIsAdmin)
	require.Len(t, details.Members, 2)
	assert.Equal(t, e.admin, details.Members[0].UserID)
	assert.True(t, details.Members[0].IsAdmin)
	assert.Equal(t, e.member, details.Members[1].UserID)

	details, err = e.svc.ClubDetails(ctx, e.club.ID, e.admin)
	require.NoError(t, err)
	assert.True(t, details.CurrentUserIsAdmin)

	_, err = e.svc.ClubDetails(ctx, e.club.ID, "outsider")
	assert.True(t, errors.Is(err, apperr.ErrNotAMember))

	_, err = e.svc.ClubDetails(ctx, "missing", e.member)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
