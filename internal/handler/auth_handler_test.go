package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundvault/internal/session"
)

type fakeSessionManager struct {
	deleteErr   error
	deleteCalls int
}

func (f *fakeSessionManager) Create(ctx context.Context, user session.User) (string, error) {
	return "token-1", nil
}

func (f *fakeSessionManager) Update(ctx context.Context, token string, user session.User) error {
	return nil
}

func (f *fakeSessionManager) Delete(ctx context.Context, token string) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeSessionManager) TTL() time.Duration {
	return time.Hour
}

func doLogout(t *testing.T, sessions *fakeSessionManager, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	h := NewAuthHandler(nil, sessions)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	h.Logout(rec, req)
	return rec
}

func TestLogoutClearsCookie(t *testing.T) {
	sessions := &fakeSessionManager{}

	rec := doLogout(t, sessions, &http.Cookie{Name: session.CookieName, Value: "token-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, sessions.deleteCalls)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

// Недоступное хранилище сессий не оставляет клиента залогиненным:
// кука сбрасывается, ответ остается успешным
func TestLogoutClearsCookieOnStoreFailure(t *testing.T) {
	sessions := &fakeSessionManager{deleteErr: errors.New("connection refused")}

	rec := doLogout(t, sessions, &http.Cookie{Name: session.CookieName, Value: "token-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User successfully logout.", body["message"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLogoutWithoutCookie(t *testing.T) {
	sessions := &fakeSessionManager{}

	rec := doLogout(t, sessions, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, sessions.deleteCalls)
}
