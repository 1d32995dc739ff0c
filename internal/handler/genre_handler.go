package handler

import (
	"net/http"

	"github.com/google/uuid"

	"soundvault/internal/pagination"
	"soundvault/internal/service"
)

type GenreHandler struct {
	genreService *service.GenreService
}

func NewGenreHandler(genreService *service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	params, err := pagination.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := h.genreService.List(r.Context(), user, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	genreID, err := parseUUIDParam(r, "genreId")
	if err != nil {
		writeError(w, err)
		return
	}

	genre, err := h.genreService.GetByID(r.Context(), genreID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, genre)
}

// UpsertGenre создает жанр либо молча обновляет существующий с тем же именем
func (h *GenreHandler) UpsertGenre(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.genreService.Upsert(r.Context(), req.Name, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		ID      uuid.UUID `json:"id"`
		Message string    `json:"message"`
	}{ID: id, Message: "Genre created successfully."})
}

func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	genreID, err := parseUUIDParam(r, "genreId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.genreService.Delete(r.Context(), genreID, user); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
