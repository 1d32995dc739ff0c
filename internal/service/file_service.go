package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/service/s3"
)

// presignExpiry - время жизни подписанных ссылок
const presignExpiry = 15 * time.Minute

// FileService выдает подписанные ссылки на прямую передачу байтов между
// клиентом и хранилищем. Сервер полезную нагрузку не проксирует.
type FileService struct {
	storage s3.Storage
}

func NewFileService(storage s3.Storage) *FileService {
	return &FileService{storage: storage}
}

// ReserveObjectKey выводит ключ объекта вида "{userId}/{fileName}" и
// проверяет, что он не занят. Проверка и последующая выдача ссылки - два
// отдельных запроса, поэтому гонка двух одинаковых загрузок возможна и
// разрешается на стороне хранилища (последняя запись выигрывает).
func (s *FileService) ReserveObjectKey(ctx context.Context, bucket domain.Bucket, userID uuid.UUID, fileName string) (string, error) {
	objectKey := fmt.Sprintf("%s/%s", userID, fileName)

	exists, err := s.storage.ObjectExists(ctx, string(bucket), objectKey)
	if err != nil {
		// Ошибка пробы трактуется как отсутствие объекта, но логируется,
		// чтобы сбои хранилища были видны
		log.Printf("Object existence probe failed for %s/%s: %v", bucket, objectKey, err)
		return objectKey, nil
	}

	if exists {
		return "", apperr.Duplicated("An item with the same name already exists. Please rename filename.")
	}

	return objectKey, nil
}

// IssueUploadURL выдает подписанную PUT-ссылку под новый ключ.
// fileSize берется из заявки клиента и на этом этапе не проверяется.
func (s *FileService) IssueUploadURL(ctx context.Context, bucket domain.Bucket, fileName string, fileSize int64, userID uuid.UUID) (*domain.FileObject, string, error) {
	objectKey, err := s.ReserveObjectKey(ctx, bucket, userID, fileName)
	if err != nil {
		return nil, "", err
	}

	presignedURL, err := s.storage.PresignPutObject(ctx, string(bucket), objectKey, presignExpiry)
	if err != nil {
		log.Printf("Failed to presign upload for %s/%s: %v", bucket, objectKey, err)
		return nil, "", apperr.ServiceUnavailable("")
	}

	fileObject := &domain.FileObject{
		Bucket:    bucket,
		ObjectKey: objectKey,
		FileSize:  fileSize,
	}

	return fileObject, presignedURL, nil
}

// IssueDownloadURL выдает подписанную GET-ссылку без проверки наличия
// объекта: висячая ссылка даст 404 уже при скачивании
func (s *FileService) IssueDownloadURL(ctx context.Context, bucket domain.Bucket, objectKey string) (string, error) {
	presignedURL, err := s.storage.PresignGetObject(ctx, string(bucket), objectKey, presignExpiry)
	if err != nil {
		log.Printf("Failed to presign download for %s/%s: %v", bucket, objectKey, err)
		return "", apperr.ServiceUnavailable("")
	}

	return presignedURL, nil
}
