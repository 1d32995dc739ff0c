package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"soundvault/internal/apperr"
	"soundvault/internal/session"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError - единая точка трансляции ошибок в HTTP статусы и тело
// {message, data?}. Неожиданные ошибки логируются и отдаются как 500 без
// внутренних подробностей.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body := map[string]interface{}{"message": appErr.Message}
		if appErr.Data != nil {
			body["data"] = appErr.Data
		}
		writeJSON(w, appErr.Kind.Status(), body)
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // нарушение уникальности
			writeJSON(w, http.StatusConflict, messageResponse{Message: pqErr.Detail})
			return
		case "22007": // неверный синтаксис timestamptz
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: pqErr.Message})
			return
		}
	}

	log.Printf("Unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Something went wrong."})
}

// currentUser достает пользователя текущей сессии
func currentUser(r *http.Request) (session.User, error) {
	user, ok := session.UserFromContext(r.Context())
	if !ok {
		return session.User{}, apperr.Unauthorized("")
	}
	return user, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("invalid request body", nil)
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest(fmt.Sprintf("invalid %s", name), nil)
	}
	return id, nil
}
