// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AdamDeHovitz/readers-choice/club"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/store"
	"github.com/AdamDeHovitz/readers-choice/testutil"
	"github.com/AdamDeHovitz/readers-choice/validation"
)

const (
	adminID    = "admin-user"
	memberID   = "member-user"
	outsiderID = "outsider-user"
)

type testEnv struct {
	st       *store.Store
	svc      *club.Service
	validate *validation.Validator
	club     models.Club
	dune     string
	emma     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	st := testutil.SetupTestStore(t)
	c := testutil.CreateTestClub(t, st, adminID)
	testutil.AddTestMember(t, st, c.ID, memberID, false)

	return testEnv{
		st:       st,
		svc:      club.NewService(st),
		validate: validation.New(),
		club:     c,
		dune:     testutil.CreateTestBook(t, st, "vol-dune", "Dune"),
		emma:     testutil.CreateTestBook(t, st, "vol-emma", "Emma"),
	}
}

// votingMeeting returns a meeting whose nomination deadline has passed.
func (e testEnv) votingMeeting(t *testing.T) models.Meeting {
	t.Helper()
	now := time.Now()
	return testutil.CreateTestMeeting(t, e.st, e.club.ID,
		testutil.TimePtr(now.Add(-time.Hour)), testutil.TimePtr(now.Add(24*time.Hour)))
}

// call runs handler with the given path values and signed-in user.
func call(handler http.HandlerFunc, method, path string, body any, userID string, pathValues map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if userID != "" {
		req = testutil.WithUser(req, userID)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestCaller_NoSession(t *testing.T) {
	e := newTestEnv(t)
	h := NewClubHandler(e.svc, e.validate)

	w := call(h.CreateClub, "POST", "/clubs", models.CreateClubRequest{Name: "x"}, "", nil)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestPathYear(t *testing.T) {
	testCases := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"2024", 2024, false},
		{"1900", 1900, false},
		{"1899", 0, true},
		{"20245", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.SetPathValue("year", tc.value)
			got, err := pathYear(req)
			if (err != nil) != tc.wantErr {
				t.Fatalf("pathYear(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("pathYear(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestCreateClub(t *testing.T) {
	e := newTestEnv(t)
	h := NewClubHandler(e.svc, e.validate)

	t.Run("creator becomes admin", func(t *testing.T) {
		w := call(h.CreateClub, "POST", "/clubs",
			models.CreateClubRequest{Name: "  Night Owls  ", Description: "late readers"}, "founder", nil)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var c models.Club
		testutil.AssertJSON(t, w, &c)
		if c.Name != "Night Owls" {
			t.Errorf("Expected trimmed name, got %q", c.Name)
		}
		if err := e.svc.RequireAdmin(t.Context(), c.ID, "founder"); err != nil {
			t.Errorf("Expected creator to be admin: %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		w := call(h.CreateClub, "POST", "/clubs", models.CreateClubRequest{}, "founder", nil)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestAddMember(t *testing.T) {
	e := newTestEnv(t)
	h := NewClubHandler(e.svc, e.validate)
	path := map[string]string{"id": e.club.ID}

	testCases := []struct {
		name           string
		caller         string
		body           models.AddMemberRequest
		expectedStatus int
	}{
		{"admin adds member", adminID, models.AddMemberRequest{UserID: "new-user"}, http.StatusCreated},
		{"duplicate member", adminID, models.AddMemberRequest{UserID: memberID}, http.StatusConflict},
		{"member cannot add", memberID, models.AddMemberRequest{UserID: "other"}, http.StatusForbidden},
		{"outsider cannot add", outsiderID, models.AddMemberRequest{UserID: "other"}, http.StatusForbidden},
		{"missing user id", adminID, models.AddMemberRequest{}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(h.AddMember, "POST", "/clubs/"+e.club.ID+"/members", tc.body, tc.caller, path)
			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestClubState(t *testing.T) {
	e := newTestEnv(t)
	h := NewClubHandler(e.svc, e.validate)
	path := map[string]string{"id": e.club.ID}

	w := call(h.ClubState, "GET", "/clubs/"+e.club.ID+"/state", nil, memberID, path)
	testutil.AssertStatus(t, w, http.StatusOK)
	var state models.ClubState
	testutil.AssertJSON(t, w, &state)
	if state.State != "inactive" {
		t.Errorf("Expected inactive club, got %q", state.State)
	}

	testutil.CreateFinalizedMeeting(t, e.st, e.club.ID, e.emma, time.Now().Add(-30*24*time.Hour))
	testutil.CreateTestMeeting(t, e.st, e.club.ID, testutil.TimePtr(time.Now().Add(time.Hour)), nil)

	w = call(h.ClubState, "GET", "/clubs/"+e.club.ID+"/state", nil, memberID, path)
	testutil.AssertStatus(t, w, http.StatusOK)
	state = models.ClubState{}
	testutil.AssertJSON(t, w, &state)
	if state.State != "nominating" {
		t.Errorf("Expected nominating club, got %q", state.State)
	}
	if state.PreviousPick == nil || state.PreviousPick.ID != e.emma {
		t.Errorf("Expected previous pick %s, got %+v", e.emma, state.PreviousPick)
	}

	w = call(h.ClubState, "GET", "/clubs/"+e.club.ID+"/state", nil, outsiderID, path)
	testutil.AssertStatus(t, w, http.StatusForbidden)
	testutil.AssertErrorReason(t, w, "not_a_member")
}

func TestGetClub(t *testing.T) {
	e := newTestEnv(t)
	h := NewClubHandler(e.svc, e.validate)

	tests := []struct {
		name           string
		clubID         string
		caller         string
		expectedStatus int
		wantAdmin      bool
	}{
		{"admin", e.club.ID, adminID, http.StatusOK, true},
		{"member", e.club.ID, memberID, http.StatusOK, false},
		{"outsider", e.club.ID, outsiderID, http.StatusForbidden, false},
		{"unknown club", "missing", memberID, http.StatusNotFound, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(h.GetClub, "GET", "/clubs/"+tc.clubID, nil, tc.caller, map[string]string{"id": tc.clubID})
			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var details models.ClubDetails
			testutil.AssertJSON(t, w, &details)
			if details.ID != e.club.ID || details.Name != e.club.Name {
				t.Errorf("Expected club %s, got %+v", e.club.ID, details.Club)
			}
			if len(details.Members) != 2 {
				t.Fatalf("Expected 2 members, got %d", len(details.Members))
			}
			if details.Members[0].UserID != adminID || !details.Members[0].IsAdmin {
				t.Errorf("Expected founding admin first, got %+v", details.Members[0])
			}
			if details.CurrentUserIsAdmin != tc.wantAdmin {
				t.Errorf("CurrentUserIsAdmin = %v, want %v", details.CurrentUserIsAdmin, tc.wantAdmin)
			}
		})
	}
}
