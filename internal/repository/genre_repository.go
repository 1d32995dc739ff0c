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

var genreSearchColumns = []string{"name"}

type GenreRepository struct {
	db *sqlx.DB
}

func NewGenreRepository(db *sqlx.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) List(ctx context.Context, userID uuid.UUID, p pagination.Params) (*domain.GenreList, error) {
	orderBy, err := p.OrderBy(nil)
	if err != nil {
		return nil, err
	}

	cond, searchArgs := pagination.TextSearchCondition(genreSearchColumns, p.TextSearch, 2)
	filter := "user_id = $1 AND " + cond

	args := make([]interface{}, 0, 2)
	args = append(args, userID)
	args = append(args, searchArgs...)

	var total int64
	countQuery := "SELECT COUNT(*) FROM genres WHERE " + filter
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}

	genres := make([]domain.Genre, 0)
	dataQuery := "SELECT * FROM genres WHERE " + filter + " ORDER BY " + orderBy + p.LimitOffset()
	if err := r.db.SelectContext(ctx, &genres, dataQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	return &domain.GenreList{Total: total, Data: genres}, nil
}

// Upsert создает жанр, а при конфликте (name, user_id) обновляет существующий.
// Атомарность обеспечивается одним INSERT ... ON CONFLICT.
func (r *GenreRepository) Upsert(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	query := `
        INSERT INTO genres (id, name, user_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (name, user_id)
        DO UPDATE SET updated_at = CURRENT_TIMESTAMP
        RETURNING id`

	err := r.db.QueryRowContext(ctx, query, uuid.New(), name, userID).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert genre: %w", err)
	}

	return id, nil
}

// GetByID возвращает жанр пользователя со всеми его аудиозаписями и
// суммарным размером их файлов, nil если строки нет
func (r *GenreRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.GenreWithAudios, error) {
	var genre domain.Genre
	query := `SELECT * FROM genres WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &genre, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	audios := make([]domain.Audio, 0)
	audioQuery := `
        SELECT a.*
        FROM audios a
        INNER JOIN audios_genres ag ON ag.audio_id = a.id
        WHERE ag.genre_id = $1
        ORDER BY a.updated_at DESC`

	if err := r.db.SelectContext(ctx, &audios, audioQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get genre audios: %w", err)
	}

	var totalFileSize sql.NullInt64
	sizeQuery := `
        SELECT SUM((a.file_object->>'fileSize')::bigint)
        FROM audios a
        INNER JOIN audios_genres ag ON ag.audio_id = a.id
        WHERE ag.genre_id = $1`

	if err := r.db.GetContext(ctx, &totalFileSize, sizeQuery, id); err != nil {
		return nil, fmt.Errorf("failed to sum genre file sizes: %w", err)
	}

	result := &domain.GenreWithAudios{
		ID:     genre.ID,
		Name:   genre.Name,
		Audios: audios,
	}
	if totalFileSize.Valid {
		size := totalFileSize.Int64
		result.TotalFileSize = &size
	}

	return result, nil
}

func (r *GenreRepository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM genres WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete genre: %w", err)
	}

	return result.RowsAffected()
}
