package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/apperr"
	"storefront/internal/config"
	"storefront/internal/mocks"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
}

func validRegister() RegisterInput {
	return RegisterInput{
		Username: "alice_01",
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes password and issues tokens", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice_01", "alice@example.com").
			Return(nil, repository.ErrNotFound)
		users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(nil).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*model.User)
				u.ID = 1
			})

		svc := NewAuthService(users, testConfig())
		u, tokens, err := svc.Register(ctx, validRegister())

		assert.NoError(t, err)
		assert.Equal(t, model.RoleUser, u.Role)
		assert.NotEqual(t, "Str0ng!pass", u.PasswordHash)
		assert.True(t, utils.VerifyPassword(u.PasswordHash, "Str0ng!pass"))
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		users.AssertExpectations(t)
	})

	t.Run("conflict when username or email exists", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("FindByUsernameOrEmail", mock.Anything, "alice_01", "alice@example.com").
			Return(&model.User{ID: 9, Username: "alice_01"}, nil)

		svc := NewAuthService(users, testConfig())
		_, _, err := svc.Register(ctx, validRegister())

		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation failures never reach the store", func(t *testing.T) {
		cases := []struct {
			name  string
			patch func(*RegisterInput)
		}{
			{"short username", func(in *RegisterInput) { in.Username = "ab" }},
			{"bad username chars", func(in *RegisterInput) { in.Username = "bad name!" }},
			{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
			{"weak password", func(in *RegisterInput) { in.Password = "password" }},
			{"unknown role", func(in *RegisterInput) { in.Role = "owner" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				users := new(mocks.MockUserStore)
				svc := NewAuthService(users, testConfig())

				in := validRegister()
				tc.patch(&in)
				_, _, err := svc.Register(ctx, in)

				assert.Equal(t, apperr.Validation, apperr.KindOf(err))
				users.AssertNotCalled(t, "FindByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := utils.HashPassword("Str0ng!pass", bcrypt.MinCost)
	stored := &model.User{ID: 1, Username: "alice_01", Email: "alice@example.com", PasswordHash: hash, Role: model.RoleUser}

	t.Run("success", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("FindByUsername", mock.Anything, "alice_01").Return(stored, nil)

		svc := NewAuthService(users, testConfig())
		tokens, err := svc.Login(ctx, "alice_01", "Str0ng!pass")

		assert.NoError(t, err)
		assert.Equal(t, uint64(1), tokens.User.ID)

		claims, err := utils.ParseToken(tokens.AccessToken, "access-secret")
		assert.NoError(t, err)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("FindByUsername", mock.Anything, "nobody").Return(nil, repository.ErrNotFound)
		users.On("FindByUsername", mock.Anything, "alice_01").Return(stored, nil)

		svc := NewAuthService(users, testConfig())
		_, errUnknown := svc.Login(ctx, "nobody", "Str0ng!pass")
		_, errWrongPass := svc.Login(ctx, "alice_01", "wrong-password")

		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(errUnknown))
		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(errWrongPass))
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	stored := &model.User{ID: 1, Username: "alice_01", Role: model.RoleUser}

	t.Run("success issues a fresh pair", func(t *testing.T) {
		refresh, _, err := utils.NewRefreshToken(cfg.RefreshSecret, 1, "alice_01", 7)
		assert.NoError(t, err)

		users := new(mocks.MockUserStore)
		users.On("FindByID", mock.Anything, uint64(1)).Return(stored, nil)

		svc := NewAuthService(users, cfg)
		tokens, err := svc.Refresh(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		access, _, err := utils.NewAccessToken(cfg.JWTSecret, 1, "alice_01", "user", 15)
		assert.NoError(t, err)

		users := new(mocks.MockUserStore)
		svc := NewAuthService(users, cfg)
		_, err = svc.Refresh(ctx, access)

		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	})

	t.Run("unauthorized when embedded user no longer exists", func(t *testing.T) {
		refresh, _, err := utils.NewRefreshToken(cfg.RefreshSecret, 99, "ghost", 7)
		assert.NoError(t, err)

		users := new(mocks.MockUserStore)
		users.On("FindByID", mock.Anything, uint64(99)).Return(nil, repository.ErrNotFound)

		svc := NewAuthService(users, cfg)
		_, err = svc.Refresh(ctx, refresh)

		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	})
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("rehashes password before persisting", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("UpdateProfile", mock.Anything, uint64(1), mock.MatchedBy(func(upd repository.ProfileUpdate) bool {
			return upd.PasswordHash != nil && *upd.PasswordHash != "N3w!passw0rd" &&
				utils.VerifyPassword(*upd.PasswordHash, "N3w!passw0rd")
		})).Return(&model.User{ID: 1}, nil)

		svc := NewAuthService(users, testConfig())
		pw := "N3w!passw0rd"
		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{Password: &pw})

		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("UpdateProfile", mock.Anything, uint64(1), mock.Anything).
			Return(nil, repository.ErrDuplicate)

		svc := NewAuthService(users, testConfig())
		email := "taken@example.com"
		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{Email: &email})

		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	})
}
