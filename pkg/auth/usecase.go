package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dwatsonpk/storefront/pkg/health"
)

// Basic local@domain.tld shape; anything stricter belongs to a mail verifier.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthResult bundles the persisted user and the issued session token.
type AuthResult struct {
	User  User
	Token string
}

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, id uuid.UUID) (User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo      UserRepository
	tokens    TokenGenerator
	readiness health.ReadinessUseCase
}

// NewAuthService returns the default implementation of AuthUseCase.
// readiness is the store's public health contract; Login consults it before
// touching credentials so infrastructure failures are not reported as
// credential errors.
func NewAuthService(repo UserRepository, tokens TokenGenerator, readiness health.ReadinessUseCase) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, readiness: readiness}
}

// NormalizeEmail lower-cases and trims an email so lookups and storage agree
// on a single case-insensitive identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email has the accepted local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	// Validation order is part of the contract: first failure wins.
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return AuthResult{}, ErrValidation("please provide name, email, and password")
	}
	email := NormalizeEmail(in.Email)
	if !emailRe.MatchString(email) {
		return AuthResult{}, ErrValidation("please provide a valid email address")
	}
	if len(in.Password) < MinPasswordLen {
		return AuthResult{}, ErrValidation("password must be at least 6 characters long")
	}

	// Best-effort pre-check; the unique constraint in the store is the
	// authoritative guard against a concurrent duplicate.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(passwordHash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         RoleUser,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// ErrUserAlreadyExists (lost race) and ErrValidation pass through.
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if s.readiness != nil {
		if err := s.readiness.Ready(ctx); err != nil {
			return "", ErrStoreUnavailable
		}
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrValidation("please provide email and password")
	}

	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		return "", ErrInvalidCredentials
	}
	if !user.Active {
		return "", ErrAccountDeactivated
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Generate(ctx, user)
}

func (s *authService) CurrentUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// Safe to run on every start; a concurrent create by another replica is fine.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	email = NormalizeEmail(email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         RoleAdmin,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, admin); err != nil && !errors.Is(err, ErrUserAlreadyExists) {
		return err
	}
	return nil
}
