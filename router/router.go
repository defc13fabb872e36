// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/AdamDeHovitz/readers-choice/auth"
	"github.com/AdamDeHovitz/readers-choice/cliparse"
	"github.com/AdamDeHovitz/readers-choice/club"
	"github.com/AdamDeHovitz/readers-choice/handlers"
	"github.com/AdamDeHovitz/readers-choice/middleware"
	"github.com/AdamDeHovitz/readers-choice/store"
	"github.com/AdamDeHovitz/readers-choice/validation"
)

// NewRouter wires every endpoint over st. The returned stop function shuts
// down the rate limiter's background sweeper.
func NewRouter(st *store.Store, cfg cliparse.Config) (http.Handler, func()) {
	mux := http.NewServeMux()

	svc := club.NewService(st)
	validate := validation.New()

	// Initialize handlers
	clubHandler := handlers.NewClubHandler(svc, validate)
	meetingHandler := handlers.NewMeetingHandler(svc, validate)
	votingHandler := handlers.NewVotingHandler(svc, validate)
	rankingHandler := handlers.NewRankingHandler(svc, validate)
	themeHandler := handlers.NewThemeHandler(svc, validate)

	limiter := middleware.NewKeyedRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limit := middleware.RateLimit(limiter)
	authed := middleware.RequireSession(auth.NewSessionVerifier(cfg.SessionSecret, cfg.SessionIssuer))

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(authed(h)))
	}
	handleLimited := func(pattern string, h http.HandlerFunc) {
		handle(pattern, limit(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.DB().PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Clubs
	handle("POST /clubs", clubHandler.CreateClub)
	handle("GET /clubs/{id}", clubHandler.GetClub)
	handle("POST /clubs/{id}/members", clubHandler.AddMember)
	handle("GET /clubs/{id}/state", clubHandler.ClubState)

	// Meetings
	handle("GET /clubs/{id}/meetings", meetingHandler.ListMeetings)
	handle("POST /clubs/{id}/meetings", meetingHandler.CreateMeeting)
	handle("POST /clubs/{id}/meetings/past", meetingHandler.LogPastMeeting)
	handle("GET /meetings/{id}", meetingHandler.GetMeeting)
	handle("GET /meetings/{id}/phase", meetingHandler.GetPhase)
	handle("PATCH /meetings/{id}", meetingHandler.UpdateMeeting)
	handle("DELETE /meetings/{id}", meetingHandler.DeleteMeeting)

	// Nominations, votes and finalization
	handle("POST /meetings/{id}/nominations", votingHandler.Nominate)
	handle("POST /meetings/{id}/finalize", votingHandler.Finalize)
	handleLimited("POST /options/{id}/vote", votingHandler.ToggleVote)

	// Rankings
	handle("GET /clubs/{id}/rankings/years", rankingHandler.RankingYears)
	handle("GET /clubs/{id}/rankings/{year}", rankingHandler.YearBooks)
	handleLimited("PUT /clubs/{id}/rankings/{year}", rankingHandler.SaveYearRankings)
	handle("GET /clubs/{id}/global-rankings", rankingHandler.GlobalRankingYears)
	handle("GET /clubs/{id}/global-rankings/{year}", rankingHandler.GlobalRankings)

	// Themes
	handle("GET /clubs/{id}/themes", themeHandler.ListThemes)
	handle("GET /clubs/{id}/themes/suggestions", themeHandler.Suggestions)
	handle("POST /clubs/{id}/themes", themeHandler.SuggestTheme)
	handle("POST /themes/{id}/upvote", themeHandler.ToggleUpvote)
	handle("POST /themes/match", themeHandler.Match)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("readers-choice API v1"))
	})

	return middleware.CORS(cfg.CORSOrigins)(mux), limiter.Stop
}
