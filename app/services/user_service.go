package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
}

// UpdateUserInput leaves the password unchanged when it is empty.
type UpdateUserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

type UserService struct {
	userRepo repositories.UserRepositoryImpl
}

func NewUserService(userRepo repositories.UserRepositoryImpl) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List(ctx context.Context, filter other.UserFilter) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, helpers.NewNotFoundError("Pengguna tidak ditemukan.")
	}
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, excludeID string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID != excludeID {
		return helpers.NewConflictError("Email sudah terdaftar.")
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleAdmin
	}

	hash, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.NewConflictError("Email sudah terdaftar.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, id); err != nil {
		return nil, err
	}

	var hash string
	if input.Password != "" {
		if hash, err = helpers.HashPassword(input.Password); err != nil {
			return nil, err
		}
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Email = input.Email
	user.Role = input.Role
	if err := s.userRepo.Update(ctx, user, hash); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, helpers.NewConflictError("Email sudah terdaftar.")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete refuses to remove the account of the user making the request.
func (s *UserService) Delete(ctx context.Context, id, currentUserID string) error {
	if id == currentUserID {
		return helpers.NewValidationError("Anda tidak dapat menghapus akun Anda sendiri.")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
