package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listTracker/internal/handlers/dto"
	"listTracker/internal/middleware"
)

type ShareHandler struct {
	service ShareService
}

func NewShareHandler(service ShareService) *ShareHandler {
	return &ShareHandler{service: service}
}

// PostShare handles POST /api/todolists/{listID}/users, Owner-only.
func (h *ShareHandler) PostShare(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.AddShareRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	assignment, err := h.service.AddShare(r.Context(), actor, listID, request.UserName, request.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.FromRoleAssignment(assignment))
}

// GetShares handles GET /api/todolists/{listID}/users; any role on the
// list may read the sharing state.
func (h *ShareHandler) GetShares(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	actor := middleware.GetActor(r.Context())
	shares, err := h.service.ListShares(r.Context(), actor, listID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]dto.TodoListUserResponse, len(shares))
	for i := range shares {
		out[i] = dto.FromRoleAssignment(&shares[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// PutShare handles PUT /api/todolists/{listID}/users/{userName}. Demoting
// the only Owner is rejected as a conflict.
func (h *ShareHandler) PutShare(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	userName := chi.URLParam(r, "userName")
	if userName == "" {
		respondError(w, http.StatusBadRequest, "user name is required")
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := middleware.GetActor(r.Context())
	assignment, err := h.service.UpdateShareRole(r.Context(), actor, listID, userName, request.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FromRoleAssignment(assignment))
}

// DeleteShare handles DELETE /api/todolists/{listID}/users/{userName}.
func (h *ShareHandler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	userName := chi.URLParam(r, "userName")
	if userName == "" {
		respondError(w, http.StatusBadRequest, "user name is required")
		return
	}

	actor := middleware.GetActor(r.Context())
	if err := h.service.RemoveShare(r.Context(), actor, listID, userName); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
