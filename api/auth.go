package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/internal/auth"
	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
)

type AuthHandler struct {
	profileRepo repository.ProfileRepo
	authSvc     *auth.Service
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(pr repository.ProfileRepo, svc *auth.Service) *AuthHandler {
	return &AuthHandler{profileRepo: pr, authSvc: svc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	User        loginUser `json:"user"`
}

type loginUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.profileRepo.GetProfileByEmail(ctx, req.Email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing != nil {
		writeError(w, "email address already in use", http.StatusConflict)
		return
	}

	hash, err := h.authSvc.HashPassword(req.Password)
	if err != nil {
		writeError(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	profile := models.Profile{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
	}
	// the UNIQUE email column backs up the lookup above
	if _, err := h.profileRepo.CreateProfile(ctx, &profile); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "user registered successfully"}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	profile, err := h.profileRepo.GetProfileByEmail(r.Context(), req.Email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if profile == nil || !h.authSvc.VerifyPassword(req.Password, profile.PasswordHash) {
		writeError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := h.authSvc.IssueToken(auth.Identity{ID: profile.ID, Role: profile.Role})
	if err != nil {
		writeError(w, "error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, loginResponse{
		AccessToken: token,
		User: loginUser{
			ID:       profile.ID,
			FullName: profile.FullName,
			Email:    profile.Email,
			Role:     profile.Role,
		},
	}, http.StatusOK)
}

// Me returns the profile of the authenticated identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, "missing identity", http.StatusUnauthorized)
		return
	}

	profile, err := h.profileRepo.GetProfileByID(r.Context(), identity.ID)
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
