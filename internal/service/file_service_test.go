package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
)

// fakeStorage подменяет S3 клиента в тестах
type fakeStorage struct {
	objectExists     func(ctx context.Context, bucket, key string) (bool, error)
	presignPut       func(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	presignGet       func(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	deleteObject     func(ctx context.Context, bucket, key string) error
	existsCalls      int
	deleteCalls      int
	deletedBucket    string
	deletedObjectKey string
}

func (f *fakeStorage) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	f.existsCalls++
	if f.objectExists == nil {
		return false, nil
	}
	return f.objectExists(ctx, bucket, key)
}

func (f *fakeStorage) PresignPutObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if f.presignPut == nil {
		return "https://storage.test/" + bucket + "/" + key + "?signed=put", nil
	}
	return f.presignPut(ctx, bucket, key, expires)
}

func (f *fakeStorage) PresignGetObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if f.presignGet == nil {
		return "https://storage.test/" + bucket + "/" + key + "?signed=get", nil
	}
	return f.presignGet(ctx, bucket, key, expires)
}

func (f *fakeStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	f.deleteCalls++
	f.deletedBucket = bucket
	f.deletedObjectKey = key
	if f.deleteObject == nil {
		return nil
	}
	return f.deleteObject(ctx, bucket, key)
}

func TestIssueUploadURL(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewFileService(storage)
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	fileObject, presignedURL, err := svc.IssueUploadURL(context.Background(), domain.BucketAudio, "track.mp3", 1000, userID)
	require.NoError(t, err)

	assert.Equal(t, domain.BucketAudio, fileObject.Bucket)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111/track.mp3", fileObject.ObjectKey)
	assert.Equal(t, int64(1000), fileObject.FileSize)
	assert.NotEmpty(t, presignedURL)
	assert.Equal(t, 1, storage.existsCalls)
}

func TestIssueUploadURLDuplicate(t *testing.T) {
	storage := &fakeStorage{
		objectExists: func(ctx context.Context, bucket, key string) (bool, error) {
			return true, nil
		},
	}
	svc := NewFileService(storage)

	_, _, err := svc.IssueUploadURL(context.Background(), domain.BucketAudio, "track.mp3", 1000, uuid.New())

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindDuplicated, appErr.Kind)
}

// Ошибка пробы не блокирует выдачу ссылки: сбой трактуется как отсутствие
// объекта, конфликт разрешится на стороне хранилища
func TestIssueUploadURLProbeFailure(t *testing.T) {
	storage := &fakeStorage{
		objectExists: func(ctx context.Context, bucket, key string) (bool, error) {
			return false, errors.New("connection refused")
		},
	}
	svc := NewFileService(storage)

	fileObject, presignedURL, err := svc.IssueUploadURL(context.Background(), domain.BucketAudio, "track.mp3", 1000, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, fileObject)
	assert.NotEmpty(t, presignedURL)
}

func TestIssueUploadURLStorageDown(t *testing.T) {
	storage := &fakeStorage{
		presignPut: func(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	svc := NewFileService(storage)

	_, _, err := svc.IssueUploadURL(context.Background(), domain.BucketAudio, "track.mp3", 1000, uuid.New())

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindServiceUnavailable, appErr.Kind)
}

// Ссылка на скачивание выдается без проверки наличия объекта
func TestIssueDownloadURLSkipsExistenceCheck(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewFileService(storage)

	presignedURL, err := svc.IssueDownloadURL(context.Background(), domain.BucketAudio, "user/track.mp3")
	require.NoError(t, err)
	assert.NotEmpty(t, presignedURL)
	assert.Equal(t, 0, storage.existsCalls)
}

func TestIssueDownloadURLStorageDown(t *testing.T) {
	storage := &fakeStorage{
		presignGet: func(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	svc := NewFileService(storage)

	_, err := svc.IssueDownloadURL(context.Background(), domain.BucketAudio, "user/track.mp3")

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindServiceUnavailable, appErr.Kind)
}
