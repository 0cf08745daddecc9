// Package service implements the application workflows: auth, product
// catalog and order placement.  Services hold their collaborators as
// explicit dependencies, validate input, and fail fast with typed
// apperr errors; they never format HTTP responses.
package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/utils"
)

// loginFailedMsg is shared by the unknown-user and wrong-password paths
// so the two are indistinguishable to the caller (no username
// enumeration).
const loginFailedMsg = "Invalid credentials"

// TokenPair is an access/refresh token pair together with the public
// part of the user it was issued for.
type TokenPair struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         model.UserBrief `json:"user"`
}

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateProfileInput carries the optional fields of a profile update.
type UpdateProfileInput struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// AuthService implements registration, login, token refresh and profile
// management.
type AuthService struct {
	users repository.UserStore
	cfg   config.Config
}

func NewAuthService(users repository.UserStore, cfg config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register validates the input, rejects duplicate usernames or emails
// with a single combined lookup, and persists the user with a hashed
// password.  On success it returns the created user and an issued token
// pair.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, *TokenPair, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validateUsername(in.Username); err != nil {
		return nil, nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, nil, err
	}
	role := model.RoleUser
	if in.Role != "" {
		r, ok := model.ParseRole(in.Role)
		if !ok {
			return nil, nil, apperr.New(apperr.Validation, "Invalid role")
		}
		role = r
	}

	if _, err := s.users.FindByUsernameOrEmail(ctx, in.Username, in.Email); err == nil {
		return nil, nil, apperr.New(apperr.Conflict, "User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}

	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "password hashing failed", err)
	}

	u := &model.User{Username: in.Username, Email: in.Email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against a concurrent registration.
			return nil, nil, apperr.New(apperr.Conflict, "User already exists")
		}
		return nil, nil, apperr.Wrap(apperr.Internal, "create user failed", err)
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login verifies the credentials and returns a fresh token pair.  An
// unknown username and a wrong password produce the identical error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Username and password are required")
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.Unauthorized, loginFailedMsg)
		}
		return nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, apperr.New(apperr.Unauthorized, loginFailedMsg)
	}
	return s.issueTokens(u)
}

// Refresh verifies a refresh token against its distinct secret, checks
// the embedded user still exists, and returns a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(strings.TrimSpace(refreshToken), s.cfg.RefreshSecret)
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid refresh token")
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "Invalid refresh token")
		}
		return nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}
	return s.issueTokens(u)
}

// Profile returns the user's public record.
func (s *AuthService) Profile(ctx context.Context, userID uint64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}
	return u, nil
}

// UpdateProfile applies an email and/or password change.  The password
// is re-hashed, the email re-validated; a duplicate email is a conflict.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint64, in UpdateProfileInput) (*model.User, error) {
	upd := repository.ProfileUpdate{}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		upd.Email = &email
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(*in.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "password hashing failed", err)
		}
		upd.PasswordHash = &hash
	}

	u, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.New(apperr.NotFound, "User not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.New(apperr.Conflict, "Email already in use")
		}
		return nil, apperr.Wrap(apperr.Internal, "update profile failed", err)
	}
	return u, nil
}

func (s *AuthService) issueTokens(u *model.User) (*TokenPair, error) {
	access, _, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, u.Username, string(u.Role), s.cfg.AccessTTLMin)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "issue access token failed", err)
	}
	refresh, _, err := utils.NewRefreshToken(s.cfg.RefreshSecret, u.ID, u.Username, s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "issue refresh token failed", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: u.Brief()}, nil
}
