package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
	"ecodonate-backend/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, security.NewTokenManager(testSecret, time.Hour, ""), security.NewNoopRevoker())

		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(nil, repository.ErrNotFound)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ann@example.org" && u.Role == domain.UserRoleDonor &&
				u.PasswordHash != "" && u.PasswordHash != "pw123456"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 5
		}).Return(nil)

		user, err := svc.Register(ctx, RegisterInput{Email: " Ann@Example.org ", Name: "Ann", Password: "pw123456", Role: "donor"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.True(t, security.CheckPassword("pw123456", user.PasswordHash))
		userRepo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, security.NewTokenManager(testSecret, time.Hour, ""), security.NewNoopRevoker())

		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(&domain.User{ID: 1, Email: "ann@example.org"}, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "ann@example.org", Name: "Ann", Password: "pw", Role: "donor"})
		assert.Equal(t, KindConflict, KindOf(err))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate detected by store", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, security.NewTokenManager(testSecret, time.Hour, ""), security.NewNoopRevoker())

		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(nil, repository.ErrNotFound)
		userRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

		_, err := svc.Register(ctx, RegisterInput{Email: "ann@example.org", Name: "Ann", Password: "pw", Role: "donor"})
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("Password at bcrypt limit", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, security.NewTokenManager(testSecret, time.Hour, ""), security.NewNoopRevoker())
		password := strings.Repeat("p", security.MaxPasswordBytes)

		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(nil, repository.ErrNotFound)
		userRepo.On("Create", ctx, mock.Anything).Return(nil)

		user, err := svc.Register(ctx, RegisterInput{Email: "ann@example.org", Name: "Ann", Password: password, Role: "donor"})
		require.NoError(t, err)
		assert.True(t, security.CheckPassword(password, user.PasswordHash))
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), security.NewTokenManager(testSecret, time.Hour, ""), security.NewNoopRevoker())

		cases := []RegisterInput{
			{Email: "", Name: "Ann", Password: "pw", Role: "donor"},
			{Email: "ann@example.org", Name: " ", Password: "pw", Role: "donor"},
			{Email: "ann@example.org", Name: "Ann", Password: "", Role: "donor"},
			{Email: "ann@example.org", Name: "Ann", Password: "pw", Role: "superuser"},
			{Email: "not-an-email", Name: "Ann", Password: "pw", Role: "donor"},
			{Email: "ann@example.org", Name: "Ann", Password: strings.Repeat("p", security.MaxPasswordBytes+1), Role: "donor"},
		}
		for _, in := range cases {
			_, err := svc.Register(ctx, in)
			assert.Equal(t, KindValidation, KindOf(err), "%+v", in)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &domain.User{ID: 42, Email: "ann@example.org", PasswordHash: hash, Role: domain.UserRoleOrgAdmin}

	tokens := security.NewTokenManager(testSecret, time.Hour, "")

	t.Run("Token subject is the user id", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, security.NewNoopRevoker())
		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(user, nil)

		res, err := svc.Login(ctx, "ann@example.org", "correct-horse")
		require.NoError(t, err)
		assert.True(t, res.ExpiresAt.After(time.Now()))

		parsed, _, err := jwt.NewParser().ParseUnverified(res.AccessToken, &jwt.RegisteredClaims{})
		require.NoError(t, err)
		sub, err := parsed.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "42", sub)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, security.NewNoopRevoker())
		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(user, nil)

		_, err := svc.Login(ctx, "ann@example.org", "wrong")
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("Unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, security.NewNoopRevoker())
		userRepo.On("GetByEmail", ctx, "nobody@example.org").Return(nil, repository.ErrNotFound)

		_, err := svc.Login(ctx, "nobody@example.org", "x")
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("Store failure", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, security.NewNoopRevoker())
		userRepo.On("GetByEmail", ctx, "ann@example.org").Return(nil, errors.New("connection reset"))

		_, err := svc.Login(ctx, "ann@example.org", "correct-horse")
		assert.Equal(t, KindInternal, KindOf(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	revoker := new(MockRevoker)
	svc := NewAuthService(new(MockUserRepo), new(MockTokenManager), revoker)

	exp := time.Now().Add(30 * time.Minute)
	claims := &security.UserClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1", ExpiresAt: jwt.NewNumericDate(exp)}}
	revoker.On("Revoke", ctx, "jti-1", claims.ExpiresAt.Time).Return(nil)

	require.NoError(t, svc.Logout(ctx, claims))
	revoker.AssertExpectations(t)

	assert.Equal(t, KindUnauthorized, KindOf(svc.Logout(ctx, nil)))
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, new(MockTokenManager), security.NewNoopRevoker())

	userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Name: "Cy"}, nil)
	userRepo.On("GetByID", ctx, int64(4)).Return(nil, repository.ErrNotFound)

	u, err := svc.Me(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cy", u.Name)

	_, err = svc.Me(ctx, 4)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}
