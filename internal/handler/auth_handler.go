package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"soundvault/internal/domain"
	"soundvault/internal/service"
	"soundvault/internal/session"
)

// sessionManager - операции хендлеров над серверным хранилищем сессий
type sessionManager interface {
	Create(ctx context.Context, user session.User) (string, error)
	Update(ctx context.Context, token string, user session.User) error
	Delete(ctx context.Context, token string) error
	TTL() time.Duration
}

type AuthHandler struct {
	authService *service.AuthService
	sessions    sessionManager
}

func NewAuthHandler(authService *service.AuthService, sessions sessionManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.authService.Register(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User successfully registered."})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), session.User{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	session.SetCookie(w, token, h.sessions.TTL())
	writeJSON(w, http.StatusOK, messageResponse{Message: "User successfully login."})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Кука сбрасывается в любом случае: недоступное хранилище не должно
	// оставлять клиента залогиненным, осиротевшая запись истечет по TTL
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}

	session.ClearCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "User successfully logout."})
}
