package handler

import (
	"net/http"

	"soundvault/internal/apperr"
	"soundvault/internal/domain"
	"soundvault/internal/service"
)

// FileHandler выдает подписанные ссылки; байты файлов через сервер не идут
type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type uploadURLRequest struct {
	Bucket   string `json:"bucket"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

type uploadURLResponse struct {
	FileObject   *domain.FileObject `json:"fileObject"`
	PresignedURL string             `json:"presignedUrl"`
}

func (h *FileHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req uploadURLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	bucket, err := domain.ParseBucket(req.Bucket)
	if err != nil {
		writeError(w, apperr.BadRequest(err.Error(), nil))
		return
	}
	if req.FileName == "" {
		writeError(w, apperr.BadRequest("fileName is required", nil))
		return
	}

	fileObject, presignedURL, err := h.fileService.IssueUploadURL(r.Context(), bucket, req.FileName, req.FileSize, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadURLResponse{
		FileObject:   fileObject,
		PresignedURL: presignedURL,
	})
}

func (h *FileHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		writeError(w, err)
		return
	}

	bucket, err := domain.ParseBucket(r.URL.Query().Get("bucket"))
	if err != nil {
		writeError(w, apperr.BadRequest(err.Error(), nil))
		return
	}

	objectKey := r.URL.Query().Get("objectKey")
	if objectKey == "" {
		writeError(w, apperr.BadRequest("objectKey is required", nil))
		return
	}

	presignedURL, err := h.fileService.IssueDownloadURL(r.Context(), bucket, objectKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		PresignedURL string `json:"presignedUrl"`
	}{PresignedURL: presignedURL})
}
