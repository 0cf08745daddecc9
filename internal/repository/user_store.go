package repository

import (
	"context"

	"storefront/internal/model"
)

// ProfileUpdate carries the optional fields of a profile mutation.  Nil
// fields are left untouched.  Password must already be hashed.
type ProfileUpdate struct {
	Email        *string
	PasswordHash *string
}

// UserStore persists users.  Create populates the ID and timestamps on
// the passed record.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByUsernameOrEmail performs the single combined uniqueness
	// lookup used at registration.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) (*model.User, error)
}
