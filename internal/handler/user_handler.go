package handler

import (
	"net/http"

	"soundvault/internal/domain"
	"soundvault/internal/service"
	"soundvault/internal/session"
)

type UserHandler struct {
	userService *service.UserService
	sessions    sessionManager
}

func NewUserHandler(userService *service.UserService, sessions sessionManager) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
	}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.userService.Get(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, data)
}

// UpdateUser меняет профиль и перезаписывает полезную нагрузку сессии
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), req, user)
	if err != nil {
		writeError(w, err)
		return
	}

	if token, ok := session.TokenFromContext(r.Context()); ok {
		if err := h.sessions.Update(r.Context(), token, session.User{
			ID:    updated.ID,
			Email: updated.Email,
			Name:  updated.Name,
		}); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{ID: updated.ID.String(), Name: updated.Name, Email: updated.Email})
}
