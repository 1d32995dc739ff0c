package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/repository"
	"soundvault/internal/session"
)

func newAudioService(t *testing.T) (*AudioService, *fakeStorage, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	storage := &fakeStorage{}

	return NewAudioService(repository.NewAudioRepository(db), storage), storage, mock
}

// Строка удалена - удаляется и объект в хранилище
func TestDeleteAudioRemovesBlob(t *testing.T) {
	svc, storage, mock := newAudioService(t)

	audioID := uuid.New()
	user := session.User{ID: uuid.New()}

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM audios WHERE id = $1 AND uploaded_by = $2 RETURNING file_object`)).
		WithArgs(audioID, user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"file_object"}).
			AddRow([]byte(`{"bucket":"audio","objectKey":"u1/track.mp3","fileSize":1000}`)))

	require.NoError(t, svc.Delete(context.Background(), audioID, user))

	assert.Equal(t, 1, storage.deleteCalls)
	assert.Equal(t, "audio", storage.deletedBucket)
	assert.Equal(t, "u1/track.mp3", storage.deletedObjectKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Чужое аудио: ноль затронутых строк, тихий no-op, объект не трогаем
func TestDeleteAudioForeignOwnerIsNoop(t *testing.T) {
	svc, storage, mock := newAudioService(t)

	audioID := uuid.New()
	user := session.User{ID: uuid.New()}

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM audios WHERE id = $1 AND uploaded_by = $2 RETURNING file_object`)).
		WithArgs(audioID, user.ID).
		WillReturnError(sql.ErrNoRows)

	require.NoError(t, svc.Delete(context.Background(), audioID, user))

	assert.Equal(t, 0, storage.deleteCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Сбой хранилища после удаления строки не превращается в ошибку API
func TestDeleteAudioBlobFailureIsLoggedOnly(t *testing.T) {
	svc, storage, mock := newAudioService(t)
	storage.deleteObject = func(ctx context.Context, bucket, key string) error {
		return errors.New("connection refused")
	}

	audioID := uuid.New()
	user := session.User{ID: uuid.New()}

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM audios WHERE id = $1 AND uploaded_by = $2 RETURNING file_object`)).
		WithArgs(audioID, user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"file_object"}).
			AddRow([]byte(`{"bucket":"audio","objectKey":"u1/track.mp3","fileSize":1000}`)))

	require.NoError(t, svc.Delete(context.Background(), audioID, user))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Отсутствие и чужое владение неразличимы - и то и другое NotFound
func TestGetAudioNotFound(t *testing.T) {
	svc, _, mock := newAudioService(t)

	audioID := uuid.New()
	user := session.User{ID: uuid.New()}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM audios WHERE id = $1 AND uploaded_by = $2`)).
		WithArgs(audioID, user.ID).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(context.Background(), audioID, user)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAudioValidation(t *testing.T) {
	svc, _, _ := newAudioService(t)

	err := svc.Create(context.Background(), domain.CreateAudioRequest{}, session.User{ID: uuid.New()})

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
}
