package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

type ProjectsHandler struct {
	projectRepo     repository.ProjectRepo
	documentRepo    repository.DocumentRepo
	bidRepo         repository.BidRepo
	inspectionRepo  repository.InspectionRepo
	changeOrderRepo repository.ChangeOrderRepo
}

func NewProjectsHandler(
	pr repository.ProjectRepo,
	dr repository.DocumentRepo,
	br repository.BidRepo,
	ir repository.InspectionRepo,
	cr repository.ChangeOrderRepo,
) *ProjectsHandler {
	return &ProjectsHandler{
		projectRepo:     pr,
		documentRepo:    dr,
		bidRepo:         br,
		inspectionRepo:  ir,
		changeOrderRepo: cr,
	}
}

type createProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Budget      *float64 `json:"budget"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
}

// updateProjectRequest is the allow-list for partial updates: absent
// fields keep their stored value, unknown fields are dropped by the
// decoder.
type updateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Budget      *float64 `json:"budget"`
	ActualCost  *float64 `json:"actual_cost"`
	Progress    *int     `json:"progress"`
	Location    *string  `json:"location"`
	Phase       *string  `json:"phase"`
}

func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "project name is required", http.StatusBadRequest)
		return
	}
	for _, d := range []*string{req.StartDate, req.EndDate} {
		if d != nil && !validDate(*d) {
			writeError(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}

	if _, err := h.projectRepo.CreateProject(r.Context(), &project); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, project, http.StatusCreated)
}

func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.ListProjects(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, projects, http.StatusOK)
}

// GetProject returns the project plus its child collections.
func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	project, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if project == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	detail := models.ProjectDetail{Project: *project}
	if detail.Documents, err = h.documentRepo.ListDocumentsByProject(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}
	if detail.Bids, err = h.bidRepo.ListBidsByProject(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}
	if detail.Inspections, err = h.inspectionRepo.ListInspectionsByProject(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}
	if detail.ChangeOrders, err = h.changeOrderRepo.ListChangeOrdersByProject(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}
	if detail.Documents == nil {
		detail.Documents = []models.Document{}
	}
	if detail.Bids == nil {
		detail.Bids = []models.Bid{}
	}
	if detail.Inspections == nil {
		detail.Inspections = []models.Inspection{}
	}
	if detail.ChangeOrders == nil {
		detail.ChangeOrders = []models.ChangeOrder{}
	}

	writeJSON(w, detail, http.StatusOK)
}

func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		writeError(w, "progress must be between 0 and 100", http.StatusBadRequest)
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeError(w, "project name is required", http.StatusBadRequest)
		return
	}
	for _, d := range []*string{req.StartDate, req.EndDate} {
		if d != nil && *d != "" && !validDate(*d) {
			writeError(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	project, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if project == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.ActualCost != nil {
		project.ActualCost = *req.ActualCost
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.Phase != nil {
		project.Phase = *req.Phase
	}

	if err := h.projectRepo.UpdateProject(ctx, project); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, project, http.StatusOK)
}

func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.projectRepo.DeleteProject(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "project deleted successfully"}, http.StatusOK)
}
