package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docrag/internal/app"
	"docrag/internal/transport/http/response"
)

const (
	ContextTokenKey    = "token"
	ContextUsernameKey = "username"

	detailNotAuthenticated = "Not authenticated"
	detailInvalidScheme    = "Invalid authentication scheme."
	detailInvalidToken     = "Invalid token or expired token."
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (bool, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

// RequireSession admits requests whose bearer token is a live session. With
// verifySignature the token must also carry a valid, unexpired signature.
func RequireSession(auth Authenticator, verifySignature bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := splitAuthorization(c.GetHeader("Authorization"))
		if !ok || !strings.EqualFold(scheme, "bearer") {
			response.Abort(c, http.StatusForbidden, detailNotAuthenticated)
			return
		}
		if scheme != "Bearer" {
			response.Abort(c, http.StatusForbidden, detailInvalidScheme)
			return
		}

		ctx := c.Request.Context()
		if verifySignature {
			username, err := auth.VerifyToken(ctx, token)
			if err != nil {
				if !errors.Is(err, app.ErrTokenInvalid) && !errors.Is(err, app.ErrTokenExpired) {
					slog.ErrorContext(ctx, "verify token failed", "error", err)
				}
				response.Abort(c, http.StatusForbidden, detailInvalidToken)
				return
			}
			c.Set(ContextUsernameKey, username)
		}

		live, err := auth.Authenticate(ctx, token)
		if err != nil {
			slog.ErrorContext(ctx, "session lookup failed", "error", err)
			response.Abort(c, http.StatusForbidden, detailInvalidToken)
			return
		}
		if !live {
			response.Abort(c, http.StatusForbidden, detailInvalidToken)
			return
		}

		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

func splitAuthorization(header string) (scheme, credentials string, ok bool) {
	header = strings.TrimSpace(header)
	scheme, credentials, found := strings.Cut(header, " ")
	credentials = strings.TrimSpace(credentials)
	if !found || scheme == "" || credentials == "" {
		return "", "", false
	}
	return scheme, credentials, true
}
