package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	users      map[string]User
	ttl        time.Duration
	touchCalls int
	getErr     error
	touchErr   error
}

func (f *fakeSessionStore) Get(ctx context.Context, token string) (*User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[token]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeSessionStore) Touch(ctx context.Context, token string) error {
	f.touchCalls++
	return f.touchErr
}

func (f *fakeSessionStore) TTL() time.Duration {
	return f.ttl
}

func resolveUser(t *testing.T, store *fakeSessionStore, path string, cookie *http.Cookie) (User, bool, *httptest.ResponseRecorder) {
	t.Helper()

	var (
		user User
		ok   bool
	)
	handler := NewMiddleware(store).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok = UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return user, ok, rec
}

func TestMiddlewareResolvesUserAndTouches(t *testing.T) {
	sessionUser := User{ID: uuid.New(), Email: "bob@example.com", Name: "bob"}
	store := &fakeSessionStore{users: map[string]User{"token-1": sessionUser}}

	user, ok, _ := resolveUser(t, store, "/audios", &http.Cookie{Name: CookieName, Value: "token-1"})

	require.True(t, ok)
	assert.Equal(t, sessionUser, user)
	assert.Equal(t, 1, store.touchCalls)
}

// Продление сессии доходит до браузера: кука переотправляется со свежим MaxAge
func TestMiddlewareRefreshesCookieOnTouch(t *testing.T) {
	store := &fakeSessionStore{
		users: map[string]User{"token-1": {ID: uuid.New()}},
		ttl:   time.Hour,
	}

	_, _, rec := resolveUser(t, store, "/audios", &http.Cookie{Name: CookieName, Value: "token-1"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "token-1", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

// Если TTL в redis продлить не удалось, куку со свежим сроком не отправляем
func TestMiddlewareKeepsCookieOnTouchFailure(t *testing.T) {
	store := &fakeSessionStore{
		users:    map[string]User{"token-1": {ID: uuid.New()}},
		ttl:      time.Hour,
		touchErr: errors.New("connection refused"),
	}

	_, ok, rec := resolveUser(t, store, "/audios", &http.Cookie{Name: CookieName, Value: "token-1"})

	require.True(t, ok)
	assert.Empty(t, rec.Result().Cookies())
}

// На исключенных путях сессия резолвится, но TTL и кука не продлеваются
func TestMiddlewareSkipsTouchOnExcludedRoutes(t *testing.T) {
	sessionUser := User{ID: uuid.New()}
	store := &fakeSessionStore{users: map[string]User{"token-1": sessionUser}}

	_, ok, rec := resolveUser(t, store, "/file/upload-url", &http.Cookie{Name: CookieName, Value: "token-1"})

	require.True(t, ok)
	assert.Equal(t, 0, store.touchCalls)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddlewareWithoutCookie(t *testing.T) {
	store := &fakeSessionStore{}

	_, ok, _ := resolveUser(t, store, "/audios", nil)

	assert.False(t, ok)
	assert.Equal(t, 0, store.touchCalls)
}

func TestMiddlewareExpiredSession(t *testing.T) {
	store := &fakeSessionStore{}

	_, ok, _ := resolveUser(t, store, "/audios", &http.Cookie{Name: CookieName, Value: "stale"})

	assert.False(t, ok)
	assert.Equal(t, 0, store.touchCalls)
}

// Сбой redis не роняет запрос, он проходит анонимным
func TestMiddlewareStoreFailure(t *testing.T) {
	store := &fakeSessionStore{getErr: errors.New("connection refused")}

	_, ok, _ := resolveUser(t, store, "/audios", &http.Cookie{Name: CookieName, Value: "token-1"})

	assert.False(t, ok)
}

func TestExcludedRoutes(t *testing.T) {
	excluded := []string{
		"/api/health",
		"/docs",
		"/docs/static/index.html",
		"/file",
		"/file/upload-url",
		"/auth",
		"/auth/login",
	}
	for _, path := range excluded {
		assert.True(t, excludedRoutes.MatchString(path), path)
	}

	included := []string{
		"/audios",
		"/audio/123",
		"/genres",
		"/user",
		"/api/healthz",
	}
	for _, path := range included {
		assert.False(t, excludedRoutes.MatchString(path), path)
	}
}
