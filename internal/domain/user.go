package domain

import (
	"context"
	"time"
)

// User is an account that can own events, join events, and rate them.
// Users subscribe to categories to hear about new events.
// swagger:model User
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"-"`
	Salt           string    `json:"-"`
	EmailConfirmed bool      `json:"email_confirmed"`
	Blocked        bool      `json:"blocked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserRepository defines storage operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetEmailConfirmed(ctx context.Context, id string, confirmed bool) error
	SetCategories(ctx context.Context, userID string, categoryIDs []string) error
	ListByCategoryIDs(ctx context.Context, categoryIDs []string) ([]*User, error)
}

// UserService covers registration and the email verification flow. Register
// publishes a RegisterVerification notification after the user row is written;
// token minting and delivery happen in the handler, not here.
type UserService interface {
	Register(ctx context.Context, email, name, password string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	ConfirmEmail(ctx context.Context, userID, token string) error
	GetByID(ctx context.Context, id string) (*User, error)
	SetCategories(ctx context.Context, userID string, categoryIDs []string) error
}

// PasswordHasher hashes and verifies passwords (infrastructure port).
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (string, error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier resolves a presented token to a user ID. Consumed by the HTTP
// layer; services only ever see the resolved user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
