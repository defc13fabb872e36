// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies the session tokens issued by the account service.

# Sessions

Sessions are HS256 JWTs signed with a secret shared with the account
service. The user id is the subject claim and an expiry is required:

	v := auth.NewSessionVerifier(cfg.SessionSecret, cfg.SessionIssuer)
	token, err := auth.BearerToken(r)
	session, err := v.Verify(token)

Tokens signed with any other algorithm are rejected. When an issuer is
configured the iss claim must match it.

IssueSessionToken signs a session locally for development and tests.

# Request Context

The middleware stores the verified session on the request context:

	ctx = auth.WithSession(ctx, session)
	userID := auth.UserID(ctx)
*/
package auth
