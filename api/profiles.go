package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

// ProfilesHandler exposes read/update only: profiles are created via
// /register and never deleted by this system. Email and password
// changes are out of scope for the update allow-list.
type ProfilesHandler struct {
	profileRepo repository.ProfileRepo
}

func NewProfilesHandler(pr repository.ProfileRepo) *ProfilesHandler {
	return &ProfilesHandler{profileRepo: pr}
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Role      *string `json:"role"`
	CompanyID *string `json:"company_id"`
}

func (h *ProfilesHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.ListProfiles(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	writeJSON(w, profiles, http.StatusOK)
}

func (h *ProfilesHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileRepo.GetProfileByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if profile == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

func (h *ProfilesHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	profile, err := h.profileRepo.GetProfileByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if profile == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.CompanyID != nil {
		profile.CompanyID = req.CompanyID
	}

	if err := h.profileRepo.UpdateProfile(ctx, profile); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}
