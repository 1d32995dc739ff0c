package handler

import (
	"net/http"

	"soundvault/internal/domain"
	"soundvault/internal/pagination"
	"soundvault/internal/service"
)

type AudioHandler struct {
	audioService *service.AudioService
}

func NewAudioHandler(audioService *service.AudioService) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// ListAudios возвращает страницу аудиозаписей пользователя с агрегатами
func (h *AudioHandler) ListAudios(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.audioService.List(r.Context(), user, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *AudioHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	audioID, err := parseUUIDParam(r, "audioId")
	if err != nil {
		writeError(w, err)
		return
	}

	audio, err := h.audioService.Get(r.Context(), audioID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, audio)
}

// CreateAudio сохраняет метаданные после завершенной клиентом загрузки
func (h *AudioHandler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.CreateAudioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.audioService.Create(r.Context(), req, user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Audio successfully uploaded."})
}

func (h *AudioHandler) UpdateAudio(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	audioID, err := parseUUIDParam(r, "audioId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.UpdateAudioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.audioService.Update(r.Context(), audioID, req, user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Audio successfully modified."})
}

func (h *AudioHandler) DeleteAudio(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	audioID, err := parseUUIDParam(r, "audioId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.audioService.Delete(r.Context(), audioID, user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Audio successfully deleted."})
}

func (h *AudioHandler) TagGenre(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		writeError(w, err)
		return
	}

	var req domain.AudioGenreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.audioService.TagGenre(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Audio added to genre successfully."})
}

func (h *AudioHandler) UntagGenre(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		writeError(w, err)
		return
	}

	var req domain.AudioGenreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.audioService.UntagGenre(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Audio deleted from genre successfully."})
}
