package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"soundvault/internal/domain"
	"soundvault/internal/pagination"
)

// audioSearchColumns - колонки полнотекстового поиска по аудио,
// порядок задает вес релевантности
var audioSearchColumns = []string{"name"}

type AudioRepository struct {
	db *sqlx.DB
}

func NewAudioRepository(db *sqlx.DB) *AudioRepository {
	return &AudioRepository{db: db}
}

// List возвращает страницу аудиозаписей пользователя, общее число совпадений
// и суммарный размер файлов по всей выборке (не по странице)
func (r *AudioRepository) List(ctx context.Context, userID uuid.UUID, p pagination.Params) (*domain.AudioList, error) {
	// Сортировка проверяется до запросов, чтобы неизвестное поле не стоило
	// лишних обращений к базе
	orderBy, err := p.OrderBy(nil)
	if err != nil {
		return nil, err
	}

	cond, searchArgs := pagination.TextSearchCondition(audioSearchColumns, p.TextSearch, 2)
	filter := "uploaded_by = $1 AND " + cond

	args := make([]interface{}, 0, 2)
	args = append(args, userID)
	args = append(args, searchArgs...)

	// Счетчик совпадений без учета limit/offset
	var total int64
	countQuery := "SELECT COUNT(*) FROM audios WHERE " + filter
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count audios: %w", err)
	}

	var totalFileSize sql.NullInt64
	sizeQuery := "SELECT SUM((file_object->>'fileSize')::bigint) FROM audios WHERE " + filter
	if err := r.db.GetContext(ctx, &totalFileSize, sizeQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to sum file sizes: %w", err)
	}

	audios := make([]domain.Audio, 0)
	dataQuery := "SELECT * FROM audios WHERE " + filter + " ORDER BY " + orderBy + p.LimitOffset()
	if err := r.db.SelectContext(ctx, &audios, dataQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to list audios: %w", err)
	}

	list := &domain.AudioList{Total: total, Data: audios}
	if totalFileSize.Valid {
		size := totalFileSize.Int64
		list.TotalFileSize = &size
	}

	return list, nil
}

// GetByID возвращает аудио пользователя вместе с жанрами, nil если строки нет
func (r *AudioRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.AudioWithGenres, error) {
	var audio domain.Audio
	query := `SELECT * FROM audios WHERE id = $1 AND uploaded_by = $2`

	err := r.db.GetContext(ctx, &audio, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	genres := make([]domain.GenreTag, 0)
	genreQuery := `
        SELECT g.id AS genre_id, g.name AS genre_name
        FROM genres g
        INNER JOIN audios_genres ag ON ag.genre_id = g.id
        WHERE ag.audio_id = $1
        ORDER BY g.name`

	if err := r.db.SelectContext(ctx, &genres, genreQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get audio genres: %w", err)
	}

	return &domain.AudioWithGenres{Audio: audio, Genres: genres}, nil
}

func (r *AudioRepository) Create(ctx context.Context, id uuid.UUID, req domain.CreateAudioRequest, userID uuid.UUID) error {
	query := `
        INSERT INTO audios (id, name, file_object, description, artist, release_date, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		id,
		req.Name,
		req.FileObject,
		req.Description,
		req.Artist,
		req.ReleaseDate,
		userID,
	)
	return err
}

func (r *AudioRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateAudioRequest, userID uuid.UUID) (int64, error) {
	query := `
        UPDATE audios
        SET name = $1,
            description = $2,
            artist = $3,
            release_date = $4,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $5 AND uploaded_by = $6`

	result, err := r.db.ExecContext(ctx, query, req.Name, req.Description, req.Artist, req.ReleaseDate, id, userID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Delete удаляет аудио с проверкой владельца и возвращает описатель объекта
// хранилища. nil без ошибки значит, что строка не принадлежала пользователю.
func (r *AudioRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*domain.FileObject, error) {
	var fileObject domain.FileObject
	query := `DELETE FROM audios WHERE id = $1 AND uploaded_by = $2 RETURNING file_object`

	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&fileObject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete audio: %w", err)
	}

	return &fileObject, nil
}

func (r *AudioRepository) TagGenre(ctx context.Context, audioID, genreID uuid.UUID) error {
	query := `INSERT INTO audios_genres (id, audio_id, genre_id) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), audioID, genreID)
	return err
}

func (r *AudioRepository) UntagGenre(ctx context.Context, audioID, genreID uuid.UUID) error {
	query := `DELETE FROM audios_genres WHERE audio_id = $1 AND genre_id = $2`

	_, err := r.db.ExecContext(ctx, query, audioID, genreID)
	return err
}
