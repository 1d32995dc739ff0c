package domain

import (
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type GenreList struct {
	Total int64   `json:"total"`
	Data  []Genre `json:"data"`
}

// GenreWithAudios содержит жанр вместе со всеми его аудиозаписями
type GenreWithAudios struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Audios        []Audio   `json:"audios"`
	TotalFileSize *int64    `json:"totalFileSize"`
}
