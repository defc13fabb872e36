// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Readers' Choice API.

# Route Registration

NewRouter builds the club service over a store and returns the complete
handler, CORS included:

	handler, stop := router.NewRouter(st, cfg)
	defer stop()

# Middleware Order

Every API route is wrapped as

	WithLogging(RequireSession(handler))

and the two write-heavy routes, POST /options/{id}/vote and
PUT /clubs/{id}/rankings/{year}, additionally pass through the per-user
rate limiter after the session is known.

# Public Endpoints

	GET /health   - 200 "OK" when the database answers a ping, 503 otherwise
	GET /         - API banner

See package handlers for the authenticated endpoints.
*/
package router
