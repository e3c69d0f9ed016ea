package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

type DocumentsHandler struct {
	documentRepo repository.DocumentRepo
}

func NewDocumentsHandler(dr repository.DocumentRepo) *DocumentsHandler {
	return &DocumentsHandler{documentRepo: dr}
}

type createDocumentRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Version   string `json:"version"`
}

type updateDocumentRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Version *string `json:"version"`
}

func (h *DocumentsHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.ProjectID == "" {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	identity, _ := IdentityFromContext(r.Context())

	doc := models.Document{
		ProjectID:  req.ProjectID,
		Name:       req.Name,
		Type:       req.Type,
		Version:    req.Version,
		UploadedBy: identity.ID,
	}
	if _, err := h.documentRepo.CreateDocument(r.Context(), &doc); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, doc, http.StatusCreated)
}

func (h *DocumentsHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentRepo.ListDocuments(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	writeJSON(w, docs, http.StatusOK)
}

func (h *DocumentsHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documentRepo.GetDocumentByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if doc == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, doc, http.StatusOK)
}

func (h *DocumentsHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	doc, err := h.documentRepo.GetDocumentByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if doc == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		doc.Name = *req.Name
	}
	if req.Type != nil {
		doc.Type = *req.Type
	}
	if req.Version != nil {
		doc.Version = *req.Version
	}

	if err := h.documentRepo.UpdateDocument(ctx, doc); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, doc, http.StatusOK)
}

func (h *DocumentsHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documentRepo.DeleteDocument(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "document deleted successfully"}, http.StatusOK)
}
