package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventsexpress/internal/domain"
)

type userService struct {
	userRepo  domain.UserRepository
	hasher    domain.PasswordHasher
	tokens    domain.TokenIssuer
	cache     domain.VerificationCache
	publisher domain.Publisher
	jwtExpiry time.Duration
}

// NewUserService creates the user registration/verification service.
func NewUserService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	cache domain.VerificationCache,
	publisher domain.Publisher,
	jwtExpiry time.Duration,
) domain.UserService {
	return &userService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		publisher: publisher,
		jwtExpiry: jwtExpiry,
	}
}

func (s *userService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewError(domain.ErrValidation, "email", "a valid email is required")
	}
	if len(password) < 8 {
		return nil, domain.NewError(domain.ErrValidation, "password", "password must be at least 8 characters")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.NewError(domain.ErrEmailTaken, "email", "email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publisher.Publish(ctx, domain.RegisterVerificationMessage{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.NewError(domain.ErrForbidden, "credentials", "invalid email or password")
		}
		return "", nil, fmt.Errorf("get user by email: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.NewError(domain.ErrForbidden, "credentials", "invalid email or password")
	}
	if !user.EmailConfirmed {
		return "", nil, domain.NewError(domain.ErrInvalidState, "email", "email is not confirmed yet")
	}
	if user.Blocked {
		return "", nil, domain.NewError(domain.ErrForbidden, "email", "account is blocked")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, s.jwtExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) ConfirmEmail(ctx context.Context, userID, token string) error {
	cached, err := s.cache.GetToken(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "token", "verification token not found or expired")
		}
		return fmt.Errorf("get verification token: %w", err)
	}
	if cached != token {
		return domain.NewError(domain.ErrValidation, "token", "verification token mismatch")
	}

	if err := s.userRepo.SetEmailConfirmed(ctx, userID, true); err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	if err := s.cache.DeleteToken(ctx, userID); err != nil {
		return fmt.Errorf("delete verification token: %w", err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "user_id", "user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) SetCategories(ctx context.Context, userID string, categoryIDs []string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.SetCategories(ctx, userID, categoryIDs); err != nil {
		return fmt.Errorf("set user categories: %w", err)
	}
	return nil
}
