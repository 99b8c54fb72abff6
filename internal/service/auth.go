package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/repository"
	"ecodonate-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	revoker  security.Revoker
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, revoker security.Revoker) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	role := domain.UserRole(strings.TrimSpace(in.Role))

	if email == "" || name == "" || in.Password == "" || role == "" {
		return nil, ErrValidation("email, name, password and role are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrValidation("email address is not valid")
	}
	if !role.Valid() {
		return nil, ErrValidation("role must be one of donor, org_admin, admin")
	}
	if len(in.Password) > security.MaxPasswordBytes {
		return nil, ErrValidation(fmt.Sprintf("password must be at most %d bytes", security.MaxPasswordBytes))
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrConflict("email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInternal(err)
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, ErrInternal(err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict("email already registered")
		}
		return nil, ErrInternal(err)
	}

	logger.FromContext(ctx).Info("User registered", "userID", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized("invalid email or password")
		}
		return nil, ErrInternal(err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrUnauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, ErrInternal(err)
	}

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, claims *security.UserClaims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrUnauthorized("missing token")
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return ErrInternal(err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized("user no longer exists")
		}
		return nil, ErrInternal(err)
	}
	return user, nil
}
