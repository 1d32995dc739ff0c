package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName - имя куки с непрозрачным токеном сессии
const CookieName = "user_session"

const keyPrefix = "session:"

// User - полезная нагрузка сессии, авторитетна серверная копия в redis
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Store хранит сессии в redis со скользящим TTL
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create сохраняет новую сессию и возвращает токен
func (s *Store) Create(ctx context.Context, user User) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session payload: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get возвращает пользователя сессии, nil если сессии нет или она истекла
func (s *Store) Get(ctx context.Context, token string) (*User, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var user User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session payload: %w", err)
	}

	return &user, nil
}

// Update перезаписывает полезную нагрузку, сбрасывая TTL заново
func (s *Store) Update(ctx context.Context, token string, user User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session payload: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Touch продлевает сессию на полный TTL
func (s *Store) Touch(ctx context.Context, token string) error {
	return s.rdb.Expire(ctx, keyPrefix+token, s.ttl).Err()
}

// Delete удаляет сессию
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// TTL возвращает настроенное время жизни сессии
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// SetCookie выставляет сессионную куку
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearCookie сбрасывает сессионную куку
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
