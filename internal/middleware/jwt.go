package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/token"
)

// UserLoader fetches the persisted user referenced by a token subject.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the authenticated user into the request context under the
// keys "user" (model.User), "user_id" (uint64) and "claims"
// (*token.Claims). Beyond signature and expiry the middleware enforces the
// server-side lifecycle rules: the token must be an access token, must not
// be revoked, the user must still exist and be active, and the token's
// version claim must equal the user's current token version (a mismatch
// means a global logout happened after issuance).
func JWTAuth(codec *token.Codec, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := codec.Decode(raw, true)
			if err != nil || claims.Type != token.TypeAccess {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, claims.UserID)
			if err != nil || !u.IsActive || u.TokenVersion != claims.Version {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user", u)
			c.Set("user_id", u.ID)
			c.Set("claims", claims)
			return next(c)
		}
	}
}

// RequireAdmin aborts with 403 unless the authenticated user carries the
// admin flag. It assumes JWTAuth ran earlier in the chain.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := c.Get("user").(model.User)
			if !ok || !u.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
