package handlers

import (
	"encoding/json"
	"net/http"

	"listTracker/internal/handlers/dto"
	"listTracker/internal/logger"
	"listTracker/internal/middleware"
	"listTracker/internal/models"
)

type ListHandler struct {
	service ListService
}

func NewListHandler(service ListService) *ListHandler {
	return &ListHandler{service: service}
}

// PostList handles POST /api/todolists.
func (h *ListHandler) PostList(w http.ResponseWriter, r *http.Request) {
	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTodoListRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	list, err := h.service.CreateList(r.Context(), actor, request.Title, request.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.HttpRequestInfo(r, "HTTP_OUT: list created")
	respondJSON(w, http.StatusCreated, dto.FromTodoList(list))
}

// GetLists handles GET /api/todolists, returning only lists the actor holds
// a role on.
func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	page, ok := pageRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "page and pageSize must be integers")
		return
	}

	actor := middleware.GetActor(r.Context())
	result, err := h.service.ListLists(r.Context(), actor, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromPaged(result, func(l *models.TodoList) dto.TodoListResponse {
		return dto.FromTodoList(l)
	}))
}

// GetList handles GET /api/todolists/{listID}.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	actor := middleware.GetActor(r.Context())
	list, err := h.service.GetList(r.Context(), actor, listID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromTodoList(list))
}

// PutList handles PUT /api/todolists/{listID}, Owner-only.
func (h *ListHandler) PutList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateTodoListRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	list, err := h.service.UpdateList(r.Context(), actor, listID, request.Title, request.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromTodoList(list))
}

// DeleteList handles DELETE /api/todolists/{listID}, Owner-only; tasks,
// comments and role rows cascade.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	actor := middleware.GetActor(r.Context())
	if err := h.service.DeleteList(r.Context(), actor, listID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
