package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

type InspectionsHandler struct {
	inspectionRepo repository.InspectionRepo
}

func NewInspectionsHandler(ir repository.InspectionRepo) *InspectionsHandler {
	return &InspectionsHandler{inspectionRepo: ir}
}

type createInspectionRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

type updateInspectionRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *InspectionsHandler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var req createInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.ProjectID == "" {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	identity, _ := IdentityFromContext(r.Context())

	insp := models.Inspection{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Status:      req.Status,
		Notes:       req.Notes,
		InspectorID: identity.ID,
	}
	if _, err := h.inspectionRepo.CreateInspection(r.Context(), &insp); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, insp, http.StatusCreated)
}

func (h *InspectionsHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	inspections, err := h.inspectionRepo.ListInspections(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if inspections == nil {
		inspections = []models.Inspection{}
	}

	writeJSON(w, inspections, http.StatusOK)
}

func (h *InspectionsHandler) GetInspection(w http.ResponseWriter, r *http.Request) {
	insp, err := h.inspectionRepo.GetInspectionByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if insp == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, insp, http.StatusOK)
}

func (h *InspectionsHandler) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	insp, err := h.inspectionRepo.GetInspectionByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if insp == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.Title != nil {
		insp.Title = *req.Title
	}
	if req.Status != nil {
		insp.Status = *req.Status
	}
	if req.Notes != nil {
		insp.Notes = *req.Notes
	}

	if err := h.inspectionRepo.UpdateInspection(ctx, insp); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, insp, http.StatusOK)
}

func (h *InspectionsHandler) DeleteInspection(w http.ResponseWriter, r *http.Request) {
	if err := h.inspectionRepo.DeleteInspection(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "inspection deleted successfully"}, http.StatusOK)
}
