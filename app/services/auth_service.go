package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	limiter  LoginLimiter
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, limiter LoginLimiter) *AuthService {
	if limiter == nil {
		limiter = NoopLoginLimiter{}
	}
	return &AuthService{userRepo: userRepo, limiter: limiter}
}

// Login checks the credentials. The same 401 is returned for an unknown email
// and a wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	allowed, err := s.limiter.Allowed(ctx, input.Email)
	if err != nil {
		log.Printf("AuthService.Login: limiter unavailable, allowing attempt: %v", err)
		allowed = true
	}
	if !allowed {
		return nil, helpers.NewTooManyRequestsError("Terlalu banyak percobaan login. Coba lagi dalam 15 menit.")
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user == nil || !helpers.PasswordCompare(user.Password, []byte(input.Password)) {
		if err := s.limiter.RecordFailure(ctx, input.Email); err != nil {
			log.Printf("AuthService.Login: failed to record login failure: %v", err)
		}
		return nil, helpers.NewUnauthorizedError("Email atau password salah.")
	}

	if err := s.limiter.Reset(ctx, input.Email); err != nil {
		log.Printf("AuthService.Login: failed to reset login failures: %v", err)
	}
	return user, nil
}
