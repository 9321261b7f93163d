package handlers

import (
	"encoding/json"
	"net/http"

	"listTracker/internal/handlers/dto"
	"listTracker/internal/logger"
	"listTracker/internal/middleware"
	"listTracker/internal/models"
	"listTracker/internal/service"
)

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// PostTask handles POST /api/todolists/{listID}/tasks, Owner-only.
func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	task, err := h.service.CreateTask(r.Context(), actor, listID, service.TaskInput{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
		AssignedTo:  request.AssignedTo,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.HttpRequestInfo(r, "HTTP_OUT: task created")
	respondJSON(w, http.StatusCreated, dto.FromTask(task))
}

// GetListTasks handles GET /api/todolists/{listID}/tasks.
func (h *TaskHandler) GetListTasks(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	page, ok := pageRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "page and pageSize must be integers")
		return
	}

	actor := middleware.GetActor(r.Context())
	result, err := h.service.ListTasks(r.Context(), actor, listID, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromPaged(result, func(t *models.Task) dto.TaskResponse {
		return dto.FromTask(t)
	}))
}

// GetTask handles GET /api/tasks/{taskID}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	actor := middleware.GetActor(r.Context())
	task, err := h.service.GetTask(r.Context(), actor, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromTask(task))
}

// PutTask handles PUT /api/tasks/{taskID}, Owner-only full edit.
func (h *TaskHandler) PutTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	task, err := h.service.UpdateTask(r.Context(), actor, taskID, service.TaskUpdateInput{
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		DueDate:     request.DueDate,
		AssignedTo:  request.AssignedTo,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromTask(task))
}

// PutTaskStatus handles PUT /api/tasks/{taskID}/status. Unlike the full
// edit this is open to the task assignee even without a list role.
func (h *TaskHandler) PutTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	task, err := h.service.UpdateStatus(r.Context(), actor, taskID, request.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromTask(task))
}

// DeleteTask handles DELETE /api/tasks/{taskID}, Owner-only; tags and
// comments cascade.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	actor := middleware.GetActor(r.Context())
	if err := h.service.DeleteTask(r.Context(), actor, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// GetAssigned handles GET /api/tasks/assigned with optional status and
// sort query parameters.
func (h *TaskHandler) GetAssigned(w http.ResponseWriter, r *http.Request) {
	page, ok := pageRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "page and pageSize must be integers")
		return
	}

	actor := middleware.GetActor(r.Context())
	result, err := h.service.ListAssigned(
		r.Context(),
		actor,
		r.URL.Query().Get("status"),
		r.URL.Query().Get("sort"),
		page,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromPaged(result, func(t *models.Task) dto.TaskResponse {
		return dto.FromTask(t)
	}))
}

// GetSearch handles GET /api/tasks/search. All criteria are optional and
// combine with AND; results are limited to lists the actor can see.
func (h *TaskHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	page, ok := pageRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "page and pageSize must be integers")
		return
	}

	query := r.URL.Query()
	actor := middleware.GetActor(r.Context())
	result, err := h.service.Search(
		r.Context(),
		actor,
		query.Get("title"),
		query.Get("creationDate"),
		query.Get("dueDate"),
		query.Get("tag"),
		page,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromPaged(result, func(t *models.Task) dto.TaskResponse {
		return dto.FromTask(t)
	}))
}
