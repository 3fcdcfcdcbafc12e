package adaptor

import (
	"encoding/json"
	"net/http"

	"azhaboost/internal/dto/request"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxPhotoSize = 10 << 20

type CleaningHandler struct {
	service usecase.CleaningService
	log     *zap.Logger
}

func NewCleaningHandler(service usecase.CleaningService, log *zap.Logger) *CleaningHandler {
	return &CleaningHandler{
		service: service,
		log:     log.With(zap.String("handler", "cleaning")),
	}
}

// TriggerTask handles POST /api/cleaning/trigger-task
func (h *CleaningHandler) TriggerTask(w http.ResponseWriter, r *http.Request) {
	var req request.TriggerCleaningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.TriggerTask(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "trigger cleaning task", "Failed to create cleaning task")
		return
	}

	utils.ResponseCreated(w, "Cleaning task created", result)
}

// ListTasks handles GET /api/cleaning-tasks
func (h *CleaningHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListCleaningTasksRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
		},
		Status: query.Get("status"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list cleaning tasks", "Failed to list cleaning tasks")
		return
	}

	utils.ResponseSuccess(w, "Cleaning tasks retrieved", tasks)
}

// UploadPhoto handles POST /api/cleaning-tasks/{id}/photos (multipart field "photo")
func (h *CleaningHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.ResponseBadRequest(w, "photo file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.service.UploadPhoto(r.Context(), taskID, header.Filename,
		header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		handleServiceError(w, h.log, err, "upload cleaning photo", "Failed to upload photo")
		return
	}

	utils.ResponseCreated(w, "Photo uploaded", result)
}
