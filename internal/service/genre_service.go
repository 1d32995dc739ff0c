package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/pagination"
	"soundvault/internal/repository"
	"soundvault/internal/session"
)

type GenreService struct {
	genreRepo *repository.GenreRepository
}

func NewGenreService(genreRepo *repository.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

func (s *GenreService) List(ctx context.Context, user session.User, p pagination.Params) (*domain.GenreList, error) {
	return s.genreRepo.List(ctx, user.ID, p)
}

func (s *GenreService) GetByID(ctx context.Context, id uuid.UUID, user session.User) (*domain.GenreWithAudios, error) {
	genre, err := s.genreRepo.GetByID(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, apperr.NotFound("")
	}

	return genre, nil
}

// Upsert создает жанр идемпотентно: имя приводится к нижнему регистру,
// повторное создание существующего имени не является ошибкой
func (s *GenreService) Upsert(ctx context.Context, name string, user session.User) (uuid.UUID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return uuid.Nil, apperr.BadRequest("genre name is required", nil)
	}

	return s.genreRepo.Upsert(ctx, name, user.ID)
}

// Delete - тихий no-op, если жанр не принадлежит пользователю
func (s *GenreService) Delete(ctx context.Context, id uuid.UUID, user session.User) error {
	_, err := s.genreRepo.Delete(ctx, id, user.ID)
	return err
}
