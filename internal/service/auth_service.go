package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/repository"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/token"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/utils"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, username, email, fullName, passwordHash string) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (model.User, error)
	IncrementTokenVersion(ctx context.Context, id uint64) error
}

// AuthService implements registration, login, refresh rotation and the two
// logout flavours. All database mutations commit before any token is
// emitted; blacklist writes are best-effort and at-least-once.
type AuthService struct {
	Users     UserStore
	Codec     *token.Codec
	Blacklist *token.Blacklist
}

func NewAuthService(users UserStore, codec *token.Codec, blacklist *token.Blacklist) *AuthService {
	return &AuthService{Users: users, Codec: codec, Blacklist: blacklist}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// TokenPair is the login/refresh result: both tokens, the access TTL in
// seconds and the user projection.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         model.User
}

// Register validates the form and creates an active, non-admin user with
// token version zero. Collisions on username or email surface as
// field-qualified validation errors.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if len(in.Username) < 3 {
		return model.User{}, invalid("username", "must be at least 3 characters")
	}
	if !strings.Contains(in.Email, "@") || strings.ContainsAny(in.Email, " \t") {
		return model.User{}, invalid("email", "must be a valid email address")
	}
	if err := checkPasswordPolicy(in.Password); err != nil {
		return model.User{}, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.Users.Create(ctx, in.Username, in.Email, in.FullName, hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return model.User{}, invalid("username", "already registered")
		case errors.Is(err, repository.ErrEmailExists):
			return model.User{}, invalid("email", "already registered")
		}
		return model.User{}, err
	}
	return s.Users.GetByID(ctx, id)
}

// checkPasswordPolicy enforces the registration password rules: at least 8
// characters with one uppercase letter, one lowercase letter and one digit.
func checkPasswordPolicy(password string) error {
	if len(password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return invalid("password", "must contain an uppercase letter")
	}
	if !lower {
		return invalid("password", "must contain a lowercase letter")
	}
	if !digit {
		return invalid("password", "must contain a digit")
	}
	return nil
}

// Login authenticates by username or email. Unknown identifier and wrong
// password produce the same error; an inactive account is only reported
// after the password matched.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	u, err := s.Users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	return s.issuePair(u)
}

// Refresh validates the presented refresh token and rotates it: the old
// token is revoked before the new pair is issued, and of two concurrent
// rotations on the same token only the first wins.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	claims, err := s.Codec.Decode(rawRefresh, true)
	if err != nil || claims.Type != token.TypeRefresh {
		return nil, ErrInvalidRefreshToken
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if !u.IsActive || u.TokenVersion != claims.Version {
		return nil, ErrInvalidRefreshToken
	}
	// Compare-and-revoke: the loser of a rotation race sees false here.
	if !s.Blacklist.Revoke(claims.ID, claims.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}
	return s.issuePair(u)
}

func (s *AuthService) issuePair(u model.User) (*TokenPair, error) {
	access, _, err := s.Codec.IssueAccess(u.ID, u.Username, u.TokenVersion)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.Codec.IssueRefresh(u.ID, u.TokenVersion)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.Codec.AccessTTL().Seconds()),
		User:         u,
	}, nil
}

// Logout revokes the current access token and, when provided, the refresh
// token. Unknown or already-revoked tokens are ignored so the operation is
// idempotent.
func (s *AuthService) Logout(access *token.Claims, rawRefresh string) {
	if access != nil {
		s.Blacklist.Revoke(access.ID, access.ExpiresAt)
	}
	if rawRefresh == "" {
		return
	}
	if claims, err := s.Codec.Decode(rawRefresh, false); err == nil && claims.Type == token.TypeRefresh {
		s.Blacklist.Revoke(claims.ID, claims.ExpiresAt)
	}
}

// LogoutAll increments the user's token version, invalidating every
// outstanding token on its next use. Tokens already presented within the
// current request are unaffected.
func (s *AuthService) LogoutAll(ctx context.Context, userID uint64) error {
	if err := s.Users.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
