package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"formhub/internal/auth"
	"formhub/internal/captcha"
	apperrors "formhub/internal/errors"
	"formhub/internal/model"
	"formhub/internal/repository"
)

const bcryptCost = 10

// DefaultRoleSlug is attached to every newly registered user.
const DefaultRoleSlug = "user"

// AuthService handles registration, login and self-service credential operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password, captchaToken string) (*model.User, error)
	Login(ctx context.Context, email, password, captchaToken string) (token string, user *model.User, err error)
	Logout(ctx context.Context, userID uint) error
	UpdateCredentials(ctx context.Context, userID uint, email *string, oldPassword string, newPassword *string) error
}

type authService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
	verifier     captcha.Verifier
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	jwtService *auth.JWTService,
	sessionStore auth.SessionStoreInterface,
	verifier captcha.Verifier,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		verifier:     verifier,
	}
}

// Register verifies the captcha, then creates the user with a hashed
// password and the default role attached. The insert is atomic: email
// uniqueness is enforced by the store's unique index, so a concurrent
// duplicate registration loses at the insert, not at a pre-check.
func (s *authService) Register(ctx context.Context, name, email, password, captchaToken string) (*model.User, error) {
	if err := s.verifier.Verify(ctx, captchaToken); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	role, err := s.roleRepo.FindBySlug(ctx, DefaultRoleSlug)
	if err == nil {
		if err := s.userRepo.AttachRole(ctx, user, role); err != nil {
			return nil, fmt.Errorf("attach default role: %w", err)
		}
	}

	return user, nil
}

// Login verifies the captcha, checks the credentials and issues a bearer token.
func (s *authService) Login(ctx context.Context, email, password, captchaToken string) (string, *model.User, error) {
	if err := s.verifier.Verify(ctx, captchaToken); err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	tokenID, token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.sessionStore.StoreSession(ctx, tokenID, user.ID, s.jwtService.TTL()); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, user, nil
}

// Logout revokes every token issued to the user, effective immediately.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.sessionStore.RevokeAll(ctx, userID)
}

// UpdateCredentials changes the caller's own email and/or password.
// A password change requires the current password; both changes are
// idempotent when the new value equals the stored one.
func (s *authService) UpdateCredentials(ctx context.Context, userID uint, email *string, oldPassword string, newPassword *string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if newPassword != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
			return apperrors.ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if email != nil {
		taken, err := s.userRepo.EmailTaken(ctx, *email, user.ID)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return apperrors.ErrEmailTaken
		}
		user.Email = *email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		// the unique index stays authoritative under concurrent updates
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}
