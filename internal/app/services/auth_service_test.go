package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
	"github.com/anmol/campushire/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := s.nextID
	s.nextID++
	copied := *user
	copied.ID = id
	s.users[id] = &copied
	return id, nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	return nil
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (s *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	s.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (s *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	stored, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if stored.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiry, nil
}

func (s *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	stored, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, stored := range s.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newTestAuthService(userStore *fakeUserStore, tokenStore *fakeTokenStore) AuthService {
	return NewAuthService(userStore, tokenStore, newTestJWTService(), zerolog.Nop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a teacher and returns tokens", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:     "jane@example.com",
			Password:  "secret123",
			FirstName: "Jane",
			LastName:  "Doe",
			RoleType:  models.RoleTeacher,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
		assert.Equal(t, "TEACHER", resp.User.RoleType)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("normalizes email casing", func(t *testing.T) {
		userStore := newFakeUserStore()
		svc := newTestAuthService(userStore, newFakeTokenStore())

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:     "Jane@Example.COM",
			Password:  "secret123",
			FirstName: "Jane",
			LastName:  "Doe",
			RoleType:  models.RoleStudent,
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

		req := &dto.RegisterRequest{
			Email:     "jane@example.com",
			Password:  "secret123",
			FirstName: "Jane",
			LastName:  "Doe",
			RoleType:  models.RoleStudent,
		}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

		for _, password := range []string{"", "short1", "onlyletters", "12345678"} {
			_, err := svc.Register(ctx, &dto.RegisterRequest{
				Email:     "jane@example.com",
				Password:  password,
				FirstName: "Jane",
				LastName:  "Doe",
				RoleType:  models.RoleStudent,
			})
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "password %q should be rejected", password)
		}
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:     "not-an-email",
			Password:  "secret123",
			FirstName: "Jane",
			LastName:  "Doe",
			RoleType:  models.RoleStudent,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	userStore := newFakeUserStore()
	svc := newTestAuthService(userStore, newFakeTokenStore())

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
		RoleType:  models.RoleTeacher,
	})
	require.NoError(t, err)

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPassErr := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrongpass1"})
		_, noUserErr := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

		assert.ErrorIs(t, wrongPassErr, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, noUserErr, apperrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPassErr.Error(), noUserErr.Error())
	})

	t.Run("rejects disabled accounts", func(t *testing.T) {
		for _, user := range userStore.users {
			user.IsActive = false
		}
		defer func() {
			for _, user := range userStore.users {
				user.IsActive = true
			}
		}()

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	tokenStore := newFakeTokenStore()
	svc := newTestAuthService(newFakeUserStore(), tokenStore)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
		RoleType:  models.RoleTeacher,
	})
	require.NoError(t, err)

	t.Run("issues a new pair and revokes the used token", func(t *testing.T) {
		refreshed, err := svc.RefreshToken(ctx, resp.Token.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, resp.Token.RefreshToken, refreshed.RefreshToken)

		// Second use of the same token must fail
		_, err = svc.RefreshToken(ctx, resp.Token.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "no-such-token")
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})

	t.Run("rejects blank tokens", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, strings.Repeat(" ", 3))
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}
