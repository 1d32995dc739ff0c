package session

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"time"
)

type contextKey int

const (
	userKey contextKey = iota
	tokenKey
)

// excludedRoutes - пути без продления скользящего TTL. Сессия на них
// по-прежнему резолвится, пропускается только refresh.
var excludedRoutes = regexp.MustCompile(
	`^/api/health$|^/docs(/.*)?$|^/file(/.*)?$|^/auth(/.*)?$`,
)

type sessionStore interface {
	Get(ctx context.Context, token string) (*User, error)
	Touch(ctx context.Context, token string) error
	TTL() time.Duration
}

// Middleware резолвит пользователя из сессионной куки
type Middleware struct {
	store sessionStore
}

func NewMiddleware(store sessionStore) *Middleware {
	return &Middleware{store: store}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.store.Get(r.Context(), cookie.Value)
		if err != nil {
			log.Printf("Failed to resolve session: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		if !excludedRoutes.MatchString(r.URL.Path) {
			if err := m.store.Touch(r.Context(), cookie.Value); err != nil {
				log.Printf("Failed to touch session: %v", err)
			} else {
				// Скользящее продление должно дойти и до браузера: кука
				// переотправляется со свежим MaxAge вместе с продлением TTL
				SetCookie(w, cookie.Value, m.store.TTL())
			}
		}

		ctx := context.WithValue(r.Context(), userKey, *user)
		ctx = context.WithValue(ctx, tokenKey, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext возвращает пользователя текущей сессии
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}

// TokenFromContext возвращает токен текущей сессии
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
