package handlers

import (
	"encoding/json"
	"net/http"

	"listTracker/internal/handlers/dto"
	"listTracker/internal/middleware"
	"listTracker/internal/models"
)

type CommentHandler struct {
	service CommentService
}

func NewCommentHandler(service CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// PostComment handles POST /api/tasks/{taskID}/comments, Editor and above.
func (h *CommentHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	comment, err := h.service.CreateComment(r.Context(), actor, taskID, request.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.FromComment(comment))
}

// GetComments handles GET /api/tasks/{taskID}/comments.
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	page, ok := pageRequest(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "page and pageSize must be integers")
		return
	}

	actor := middleware.GetActor(r.Context())
	result, err := h.service.ListComments(r.Context(), actor, taskID, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromPaged(result, func(c *models.Comment) dto.CommentResponse {
		return dto.FromComment(c)
	}))
}

// PutComment handles PUT /api/comments/{commentID}, list Owner only.
func (h *CommentHandler) PutComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "commentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	comment, err := h.service.UpdateComment(r.Context(), actor, commentID, request.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromComment(comment))
}

// DeleteComment handles DELETE /api/comments/{commentID}, list Owner only.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "commentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	actor := middleware.GetActor(r.Context())
	if err := h.service.DeleteComment(r.Context(), actor, commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
