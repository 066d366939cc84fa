package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- fakes ---

type fakeUserRepo struct {
	byEmail   map[string]User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type staticTokens struct {
	err error
}

func (s staticTokens) Generate(ctx context.Context, user User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + user.ID.String(), nil
}

type readinessFunc func(ctx context.Context) error

func (f readinessFunc) Ready(ctx context.Context) error { return f(ctx) }

func newTestService(repo UserRepository) AuthUseCase {
	return NewAuthService(repo, staticTokens{}, nil)
}

func validInput() RegisterInput {
	return RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "secret1", Phone: "0300-1234567"}
}

// --- register ---

func TestRegisterValidationOrder(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
		want string
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "secret1"}, "please provide name, email, and password"},
		{"missing email", RegisterInput{Name: "A", Password: "secret1"}, "please provide name, email, and password"},
		{"missing password", RegisterInput{Name: "A", Email: "a@b.co"}, "please provide name, email, and password"},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret1"}, "please provide a valid email address"},
		{"email with spaces", RegisterInput{Name: "A", Email: "a b@c.co", Password: "secret1"}, "please provide a valid email address"},
		// A malformed email with a short password must report the email first.
		{"email before password", RegisterInput{Name: "A", Email: "nope", Password: "123"}, "please provide a valid email address"},
		{"short password", RegisterInput{Name: "A", Email: "a@b.co", Password: "12345"}, "password must be at least 6 characters long"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			var ve ErrValidation
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.want, ve.Error())
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	in := validInput()
	in.Email = "  DAVE@Example.COM "
	res, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "dave@example.com", res.User.Email)
	assert.Equal(t, RoleUser, res.User.Role)
	assert.True(t, res.User.Active)
	assert.NotEmpty(t, res.Token)

	// Stored hash must verify against the plaintext and never equal it.
	stored, err := repo.GetByEmail(context.Background(), "dave@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, in.Password, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(in.Password)))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validInput())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Differently-cased duplicate hits the same identity.
	in := validInput()
	in.Email = "Dave@EXAMPLE.com"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterLostRace(t *testing.T) {
	// Pre-check passes but the store reports a concurrent duplicate.
	repo := newFakeUserRepo()
	repo.createErr = ErrUserAlreadyExists
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

// --- login ---

func TestLoginSuccessCaseInsensitive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	token, err := svc.Login(ctx, " Dave@Example.COM ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "secret1")
		var ve ErrValidation
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "dave@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginDeactivatedBeforePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	u := repo.byEmail["dave@example.com"]
	u.Active = false
	repo.byEmail["dave@example.com"] = u

	// Even with the wrong password the caller learns the account is
	// deactivated, never that the password was wrong.
	_, err = svc.Login(ctx, "dave@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	_, err = svc.Login(ctx, "dave@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestLoginStoreUnavailable(t *testing.T) {
	repo := newFakeUserRepo()
	down := readinessFunc(func(ctx context.Context) error { return errors.New("db down") })
	svc := NewAuthService(repo, staticTokens{}, down)

	_, err := svc.Login(context.Background(), "dave@example.com", "secret1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// --- admin bootstrap ---

func TestEnsureAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin@Shop.pk", "changeme"))

	admin, err := repo.GetByEmail(ctx, "admin@shop.pk")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.Active)

	// Second run is a no-op, the existing account is untouched.
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@shop.pk", "different"))
	again, err := repo.GetByEmail(ctx, "admin@shop.pk")
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, again.PasswordHash)
}

func TestEnsureAdminBlankConfigSkips(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	assert.Empty(t, repo.byEmail)
}

func TestEnsureAdminToleratesCreateRace(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = ErrUserAlreadyExists
	svc := newTestService(repo)

	assert.NoError(t, svc.EnsureAdmin(context.Background(), "admin@shop.pk", "changeme"))
}
