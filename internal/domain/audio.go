package domain

import (
	"time"

	"github.com/google/uuid"
)

type Audio struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	FileObject  FileObject `json:"fileObject" db:"file_object"`
	Description *string    `json:"description,omitempty" db:"description"`
	Artist      *string    `json:"artist,omitempty" db:"artist"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty" db:"release_date"`
	UploadedBy  uuid.UUID  `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// GenreTag представляет жанр, привязанный к аудиозаписи
type GenreTag struct {
	GenreID   uuid.UUID `json:"genreId" db:"genre_id"`
	GenreName string    `json:"genreName" db:"genre_name"`
}

type AudioWithGenres struct {
	Audio
	Genres []GenreTag `json:"genres"`
}

// AudioList содержит страницу аудиозаписей и агрегаты по всей выборке
type AudioList struct {
	Total         int64   `json:"total"`
	Data          []Audio `json:"data"`
	TotalFileSize *int64  `json:"totalFileSize"`
}

type CreateAudioRequest struct {
	Name        string     `json:"name"`
	FileObject  FileObject `json:"fileObject"`
	Description *string    `json:"description"`
	Artist      *string    `json:"artist"`
	ReleaseDate *string    `json:"releaseDate"`
}

type UpdateAudioRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Artist      *string `json:"artist"`
	ReleaseDate *string `json:"releaseDate"`
}

type AudioGenreRequest struct {
	AudioID uuid.UUID `json:"audioId"`
	GenreID uuid.UUID `json:"genreId"`
}
