// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AdamDeHovitz/readers-choice/auth"
	"github.com/AdamDeHovitz/readers-choice/cliparse"
	"github.com/AdamDeHovitz/readers-choice/db"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/store"
)

// TestSessionSecret signs the session tokens produced by SessionToken.
const TestSessionSecret = "test-session-secret"

// SetupTestDB opens a fresh database with the full schema. It uses a SQLite
// file in a temp dir unless TEST_DATABASE_URL points at a Postgres server, in
// which case every table is dropped and recreated first.
func SetupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dialect, url := db.DialectSQLite, filepath.Join(t.TempDir(), "test.db")
	if pg := os.Getenv("TEST_DATABASE_URL"); pg != "" {
		dialect, url = db.DialectPostgres, pg
	}

	conn, err := db.Open(dialect, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dialect == db.DialectPostgres {
		if err := db.DropAll(conn); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, dialect
}

// SetupTestStore returns a store over a fresh test database.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	conn, dialect := SetupTestDB(t)
	return store.New(conn, dialect)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   db.DialectSQLite,
		SessionSecret:  TestSessionSecret,
		LogLevel:       "error",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

// SessionToken issues a one-hour session token for userID.
func SessionToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.IssueSessionToken(TestSessionSecret, "", userID, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}
	return token
}

// AuthHeader returns request headers carrying a session for userID.
func AuthHeader(t *testing.T, userID string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + SessionToken(t, userID)}
}

// WithUser returns req with a verified session for userID in its context,
// as RequireSession would leave it.
func WithUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: userID}))
}

// CreateTestClub creates a club with adminID as its admin member.
func CreateTestClub(t *testing.T, st *store.Store, adminID string) models.Club {
	t.Helper()
	c, err := st.CreateClub(context.Background(), "Test Club", "A test club", adminID)
	if err != nil {
		t.Fatalf("Failed to create test club: %v", err)
	}
	return c
}

// AddTestMember adds userID to a club.
func AddTestMember(t *testing.T, st *store.Store, clubID, userID string, isAdmin bool) {
	t.Helper()
	if _, err := st.AddMember(context.Background(), clubID, userID, isAdmin); err != nil {
		t.Fatalf("Failed to add test member: %v", err)
	}
}

// CreateTestBook resolves a Google Books result and returns the book ID.
func CreateTestBook(t *testing.T, st *store.Store, externalID, title string) string {
	t.Helper()
	id, err := st.ResolveOrCreateBook(context.Background(), models.BookSearchResult{
		ExternalID:     externalID,
		ExternalSource: "google_books",
		Title:          title,
		Author:         "Test Author",
	})
	if err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}
	return id
}

// CreateTestMeeting creates an unfinalized meeting a week out with the given
// deadlines. The schedule is not validated, so tests can place deadlines in
// the past to reach any phase.
func CreateTestMeeting(t *testing.T, st *store.Store, clubID string, nominationDeadline, votingDeadline *time.Time) models.Meeting {
	t.Helper()
	m, err := st.CreateMeeting(context.Background(), models.Meeting{
		ClubID:             clubID,
		MeetingDate:        time.Now().Add(7 * 24 * time.Hour),
		NominationDeadline: nominationDeadline,
		VotingDeadline:     votingDeadline,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create test meeting: %v", err)
	}
	return m
}

// CreateFinalizedMeeting records a meeting that already picked bookID.
func CreateFinalizedMeeting(t *testing.T, st *store.Store, clubID, bookID string, date time.Time) models.Meeting {
	t.Helper()
	finalizedAt := date
	m, err := st.CreateMeeting(context.Background(), models.Meeting{
		ClubID:         clubID,
		MeetingDate:    date,
		IsFinalized:    true,
		SelectedBookID: &bookID,
		FinalizedAt:    &finalizedAt,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create finalized meeting: %v", err)
	}
	return m
}

// AddTestOption nominates bookID for a meeting without any phase check.
func AddTestOption(t *testing.T, st *store.Store, meetingID, bookID, userID string) models.BookOption {
	t.Helper()
	opt, err := st.Nominate(context.Background(), store.Nomination{
		MeetingID: meetingID,
		BookID:    bookID,
		UserID:    userID,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
	return opt
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorReason decodes an error response and checks its reason.
func AssertErrorReason(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Reason != reason {
		t.Errorf("Expected error reason '%s', got '%s' (%s)", reason, resp.Reason, resp.Message)
	}
}
