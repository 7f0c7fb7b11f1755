package token // package token issues and validates the bearer tokens of the API

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"       // uuid generates unique token ids (jti)
)

// Token kinds carried in the `type` claim. Access tokens authenticate
// requests; refresh tokens may only be exchanged for a new pair.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken is returned by Decode for any token that must not be
// accepted: malformed, wrong signature, expired, wrong type field or
// revoked. Callers never learn which case occurred.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded, validated content of a token.
type Claims struct {
	UserID    uint64    // parsed from `sub`
	Type      string    // `type`: access or refresh
	ID        string    // `jti`, unique per token
	Version   int       // `tv`, the user's token version at issuance
	Username  string    // optional convenience copy
	ExpiresAt time.Time // `exp`
}

// Codec signs and verifies the two token kinds with a shared symmetric
// secret. The signing algorithm is configurable (HS256 by default); the
// secret is required and validated by config at bootstrap.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    interface{ IsRevoked(string) bool }
}

// NewCodec builds a codec. algorithm must name an HMAC method (HS256, HS384
// or HS512); anything else is rejected so a misconfigured service cannot
// silently issue unverifiable tokens.
func NewCodec(secret, algorithm string, accessTTLMin, refreshTTLDays int, revoked interface{ IsRevoked(string) bool }) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	m := jwt.GetSigningMethod(algorithm)
	if _, ok := m.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("token: unsupported signing algorithm " + algorithm)
	}
	return &Codec{
		secret:     []byte(secret),
		method:     m,
		accessTTL:  time.Duration(accessTTLMin) * time.Minute,
		refreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
		revoked:    revoked,
	}, nil
}

// AccessTTL returns the configured access token lifetime. Login and refresh
// responses report it to clients as `expires_in` seconds.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// IssueAccess signs a short-lived access token for the user at the given
// token version. The username claim is a convenience copy for clients.
func (c *Codec) IssueAccess(userID uint64, username string, version int) (string, time.Time, error) {
	return c.issue(TypeAccess, userID, username, version, c.accessTTL)
}

// IssueRefresh signs a long-lived refresh token. Refresh tokens omit the
// username claim; they exist only to be exchanged.
func (c *Codec) IssueRefresh(userID uint64, version int) (string, time.Time, error) {
	return c.issue(TypeRefresh, userID, "", version, c.refreshTTL)
}

func (c *Codec) issue(kind string, userID uint64, username string, version int, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(userID, 10),
		"type": kind,
		"jti":  uuid.NewString(),
		"tv":   version,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	if username != "" {
		claims["username"] = username
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Decode parses and validates a token. When checkRevoked is true the
// blacklist is consulted first, so a revoked-but-otherwise-valid token is
// rejected. All failures collapse into ErrInvalidToken.
func (c *Codec) Decode(raw string, checkRevoked bool) (*Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	out := &Claims{}
	sub, _ := mc["sub"].(string)
	out.UserID, err = strconv.ParseUint(sub, 10, 64)
	if err != nil || out.UserID == 0 {
		return nil, ErrInvalidToken
	}
	out.Type, _ = mc["type"].(string)
	if out.Type != TypeAccess && out.Type != TypeRefresh {
		return nil, ErrInvalidToken
	}
	out.ID, _ = mc["jti"].(string)
	if out.ID == "" {
		return nil, ErrInvalidToken
	}
	if tv, ok := mc["tv"].(float64); ok {
		out.Version = int(tv)
	}
	out.Username, _ = mc["username"].(string)
	if exp, ok := mc["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}

	if checkRevoked && c.revoked != nil && c.revoked.IsRevoked(out.ID) {
		return nil, ErrInvalidToken
	}
	return out, nil
}
