package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

// CompaniesHandler exposes create/read/update only: companies are
// never deleted by this system.
type CompaniesHandler struct {
	companyRepo repository.CompanyRepo
}

func NewCompaniesHandler(cr repository.CompanyRepo) *CompaniesHandler {
	return &CompaniesHandler{companyRepo: cr}
}

type createCompanyRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type updateCompanyRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
}

func (h *CompaniesHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "company name is required", http.StatusBadRequest)
		return
	}

	company := models.Company{
		Name:    req.Name,
		Type:    req.Type,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Website: req.Website,
	}
	if _, err := h.companyRepo.CreateCompany(r.Context(), &company); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, company, http.StatusCreated)
}

func (h *CompaniesHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyRepo.ListCompanies(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}

	writeJSON(w, companies, http.StatusOK)
}

func (h *CompaniesHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.companyRepo.GetCompanyByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if company == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, company, http.StatusOK)
}

func (h *CompaniesHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeError(w, "company name is required", http.StatusBadRequest)
		return
	}

	company, err := h.companyRepo.GetCompanyByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if company == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Type != nil {
		company.Type = *req.Type
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Website != nil {
		company.Website = *req.Website
	}

	if err := h.companyRepo.UpdateCompany(ctx, company); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, company, http.StatusOK)
}
