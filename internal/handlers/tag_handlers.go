package handlers

import (
	"encoding/json"
	"net/http"

	"listTracker/internal/handlers/dto"
	"listTracker/internal/middleware"
)

type TagHandler struct {
	service TagService
}

func NewTagHandler(service TagService) *TagHandler {
	return &TagHandler{service: service}
}

// PostTag handles POST /api/tasks/{taskID}/tags. An existing tag with the
// same label is reused; attaching it twice to one task is a conflict.
func (h *TagHandler) PostTag(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.AttachTagRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	tag, err := h.service.AttachTag(r.Context(), actor, taskID, request.Label)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.FromTag(tag))
}

// GetTags handles GET /api/tasks/{taskID}/tags.
func (h *TagHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	actor := middleware.GetActor(r.Context())
	tags, err := h.service.ListTags(r.Context(), actor, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]dto.TagResponse, len(tags))
	for i := range tags {
		out[i] = dto.FromTag(&tags[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteTag handles DELETE /api/tasks/{taskID}/tags/{tagID}. Only the
// association is removed, the tag itself stays.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	tagID, ok := pathID(r, "tagID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	actor := middleware.GetActor(r.Context())
	if err := h.service.DetachTag(r.Context(), actor, taskID, tagID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
