package handler // handler defines the HTTP endpoint surface

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/service"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/utils"
)

// requestTimeout bounds every database round trip made by a handler.
const requestTimeout = 5 * time.Second

// fail is the single translation point from service errors to HTTP status
// codes. Unexpected errors are logged with their cause and reported to the
// caller as an opaque internal error.
func fail(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "validation failed",
			"field": ve.Field, "message": ve.Message,
		})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInactiveUser),
		errors.Is(err, service.ErrInvalidRefreshToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// currentUser returns the authenticated user stored by the JWTAuth
// middleware.
func currentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get("user").(model.User)
	return u, ok
}

// userResp is the client-facing user projection. The password hash is
// never serialized.
type userResp struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName,
		IsActive: u.IsActive, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt,
	}
}

// yearField decodes a level reference from a JSON body. Both the numeric
// tier (1..4, as number or string) and the legacy "yearN" alias are
// accepted.
type yearField struct {
	Level uint8
	Set   bool
}

func (y *yearField) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if lvl, ok := utils.ParseLevel(strconv.Itoa(n)); ok {
			y.Level, y.Set = lvl, true
			return nil
		}
		return errors.New("year out of range")
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("year must be a number or string")
	}
	lvl, ok := utils.ParseLevel(s)
	if !ok {
		return errors.New("invalid year")
	}
	y.Level, y.Set = lvl, true
	return nil
}

// queryLevel parses the optional ?year= query parameter. The error return
// is non-nil only for a present-but-invalid value.
func queryLevel(c echo.Context) (*uint8, error) {
	raw := strings.TrimSpace(c.QueryParam("year"))
	if raw == "" {
		return nil, nil
	}
	lvl, ok := utils.ParseLevel(raw)
	if !ok {
		return nil, &echo.HTTPError{Code: http.StatusUnprocessableEntity}
	}
	return &lvl, nil
}

func badYear(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"error": "validation failed", "field": "year", "message": "invalid level",
	})
}

// queryInt parses a non-negative integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
