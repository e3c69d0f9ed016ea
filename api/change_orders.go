package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

type ChangeOrdersHandler struct {
	changeOrderRepo repository.ChangeOrderRepo
}

func NewChangeOrdersHandler(cr repository.ChangeOrderRepo) *ChangeOrdersHandler {
	return &ChangeOrdersHandler{changeOrderRepo: cr}
}

type createChangeOrderRequest struct {
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Amount    *float64 `json:"amount"`
}

type updateChangeOrderRequest struct {
	Title  *string  `json:"title"`
	Status *string  `json:"status"`
	Amount *float64 `json:"amount"`
}

func (h *ChangeOrdersHandler) CreateChangeOrder(w http.ResponseWriter, r *http.Request) {
	var req createChangeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	// amount is required; negative values are credits
	if req.Title == "" || req.ProjectID == "" || req.Amount == nil {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	identity, _ := IdentityFromContext(r.Context())

	order := models.ChangeOrder{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Status:      req.Status,
		Amount:      *req.Amount,
		SubmittedBy: identity.ID,
	}
	if _, err := h.changeOrderRepo.CreateChangeOrder(r.Context(), &order); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, order, http.StatusCreated)
}

func (h *ChangeOrdersHandler) ListChangeOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.changeOrderRepo.ListChangeOrders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if orders == nil {
		orders = []models.ChangeOrder{}
	}

	writeJSON(w, orders, http.StatusOK)
}

func (h *ChangeOrdersHandler) GetChangeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.changeOrderRepo.GetChangeOrderByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if order == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, order, http.StatusOK)
}

func (h *ChangeOrdersHandler) UpdateChangeOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateChangeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	order, err := h.changeOrderRepo.GetChangeOrderByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if order == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.Title != nil {
		order.Title = *req.Title
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.Amount != nil {
		order.Amount = *req.Amount
	}

	if err := h.changeOrderRepo.UpdateChangeOrder(ctx, order); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, order, http.StatusOK)
}

func (h *ChangeOrdersHandler) DeleteChangeOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.changeOrderRepo.DeleteChangeOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "change order deleted successfully"}, http.StatusOK)
}
