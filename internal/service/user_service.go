package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"formhub/internal/auth"
	apperrors "formhub/internal/errors"
	"formhub/internal/model"
	"formhub/internal/repository"
)

// UserService exposes the admin-facing user and role management operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	UpdateDetails(ctx context.Context, id uint, name, email, newPassword *string) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	ListRoles(ctx context.Context) ([]model.Role, error)
	AssignRole(ctx context.Context, userID, roleID uint) error
	RemoveRole(ctx context.Context, userID, roleID uint) error
}

type userService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	sessionStore auth.SessionStoreInterface
}

// NewUserService creates a new user management service.
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, sessionStore auth.SessionStoreInterface) UserService {
	return &userService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		sessionStore: sessionStore,
	}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateDetails applies a partial update: absent fields keep their stored
// values. An email change must not collide with another user's address.
func (s *userService) UpdateDetails(ctx context.Context, id uint, name, email, newPassword *string) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}

	if email != nil {
		taken, err := s.userRepo.EmailTaken(ctx, *email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = *email
	}

	if newPassword != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// Delete removes the user and revokes all of its tokens.
func (s *userService) Delete(ctx context.Context, id uint) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return s.sessionStore.RevokeAll(ctx, user.ID)
}

func (s *userService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roleRepo.List(ctx)
}

// AssignRole attaches a role to the user. Attaching a role the user already
// holds is rejected explicitly, keeping the role set duplicate-free.
func (s *userService) AssignRole(ctx context.Context, userID, roleID uint) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRoleNotFound
		}
		return fmt.Errorf("find role: %w", err)
	}

	if user.HasRole(role.Slug) {
		return apperrors.ErrAlreadyHasRole
	}

	if err := s.userRepo.AttachRole(ctx, user, role); err != nil {
		return fmt.Errorf("attach role: %w", err)
	}
	return nil
}

// RemoveRole detaches a role the user holds; detaching an absent role is
// rejected explicitly rather than silently ignored.
func (s *userService) RemoveRole(ctx context.Context, userID, roleID uint) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRoleNotFound
		}
		return fmt.Errorf("find role: %w", err)
	}

	if !user.HasRole(role.Slug) {
		return apperrors.ErrLacksRole
	}

	if err := s.userRepo.DetachRole(ctx, user, role); err != nil {
		return fmt.Errorf("detach role: %w", err)
	}
	return nil
}
