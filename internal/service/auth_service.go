package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/repository"
)

const bcryptCost = 10

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Register(ctx context.Context, req domain.SignUpRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperr.BadRequest("name, email and password are required", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}

	// Конфликт уникального email всплывает кодом 23505 и отдается как 409
	return s.userRepo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("No user found.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials.")
	}

	return user, nil
}
