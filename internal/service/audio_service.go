package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/pagination"
	"soundvault/internal/repository"
	"soundvault/internal/service/s3"
	"soundvault/internal/session"
)

// AudioService оркестрирует метаданные аудиозаписей и их объекты в хранилище
type AudioService struct {
	audioRepo *repository.AudioRepository
	storage   s3.Storage
}

func NewAudioService(audioRepo *repository.AudioRepository, storage s3.Storage) *AudioService {
	return &AudioService{
		audioRepo: audioRepo,
		storage:   storage,
	}
}

func (s *AudioService) List(ctx context.Context, user session.User, p pagination.Params) (*domain.AudioList, error) {
	return s.audioRepo.List(ctx, user.ID, p)
}

func (s *AudioService) Get(ctx context.Context, id uuid.UUID, user session.User) (*domain.AudioWithGenres, error) {
	audio, err := s.audioRepo.GetByID(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	// Чужая запись неотличима от отсутствующей
	if audio == nil {
		return nil, apperr.NotFound("")
	}

	return audio, nil
}

// Create сохраняет метаданные после того, как клиент завершил PUT по
// подписанной ссылке. С хранилищем этот шаг не взаимодействует.
func (s *AudioService) Create(ctx context.Context, req domain.CreateAudioRequest, user session.User) error {
	if req.Name == "" {
		return apperr.BadRequest("audio name is required", nil)
	}
	if req.FileObject.ObjectKey == "" {
		return apperr.BadRequest("fileObject is required", nil)
	}

	return s.audioRepo.Create(ctx, uuid.New(), req, user.ID)
}

func (s *AudioService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateAudioRequest, user session.User) error {
	if req.Name == "" {
		return apperr.BadRequest("audio name is required", nil)
	}

	rows, err := s.audioRepo.Update(ctx, id, req, user.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("")
	}

	return nil
}

// Delete удаляет сначала строку в базе, и только при фактически удаленной
// строке - объект в хранилище. Ноль затронутых строк - тихий no-op: без
// подтвержденного владельца удалять объект нельзя.
func (s *AudioService) Delete(ctx context.Context, id uuid.UUID, user session.User) error {
	fileObject, err := s.audioRepo.Delete(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if fileObject == nil {
		return nil
	}

	if err := s.storage.DeleteObject(ctx, string(fileObject.Bucket), fileObject.ObjectKey); err != nil {
		// Строка уже удалена, источником правды остается база;
		// осиротевший объект - вопрос стоимости хранения
		log.Printf("Failed to delete object %s/%s: %v", fileObject.Bucket, fileObject.ObjectKey, err)
	}

	return nil
}

// TagGenre привязывает аудио к жанру. Принадлежность обеих записей одному
// пользователю здесь повторно не проверяется.
func (s *AudioService) TagGenre(ctx context.Context, req domain.AudioGenreRequest) error {
	return s.audioRepo.TagGenre(ctx, req.AudioID, req.GenreID)
}

func (s *AudioService) UntagGenre(ctx context.Context, req domain.AudioGenreRequest) error {
	return s.audioRepo.UntagGenre(ctx, req.AudioID, req.GenreID)
}
