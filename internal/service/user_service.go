package service

import (
	"context"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/repository"
	"soundvault/internal/session"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Get(ctx context.Context, sessionUser session.User) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, sessionUser.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found.")
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, req domain.UpdateUserRequest, sessionUser session.User) (*domain.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, apperr.BadRequest("name and email are required", nil)
	}

	user, err := s.userRepo.Update(ctx, sessionUser.ID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found.")
	}

	return user, nil
}
