package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/gorilla/mux"
)

type BidsHandler struct {
	bidRepo repository.BidRepo
}

func NewBidsHandler(br repository.BidRepo) *BidsHandler {
	return &BidsHandler{bidRepo: br}
}

type createBidRequest struct {
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Amount    *float64 `json:"amount"`
}

type updateBidRequest struct {
	Title  *string  `json:"title"`
	Status *string  `json:"status"`
	Amount *float64 `json:"amount"`
}

func (h *BidsHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	var req createBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.ProjectID == "" {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	identity, _ := IdentityFromContext(r.Context())

	bid := models.Bid{
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Status:    req.Status,
		CreatedBy: identity.ID,
	}
	// a missing amount is recorded as 0
	if req.Amount != nil {
		bid.Amount = *req.Amount
	}

	if _, err := h.bidRepo.CreateBid(r.Context(), &bid); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, bid, http.StatusCreated)
}

func (h *BidsHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.bidRepo.ListBids(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	writeJSON(w, bids, http.StatusOK)
}

func (h *BidsHandler) GetBid(w http.ResponseWriter, r *http.Request) {
	bid, err := h.bidRepo.GetBidByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if bid == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, bid, http.StatusOK)
}

func (h *BidsHandler) UpdateBid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var req updateBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	bid, err := h.bidRepo.GetBidByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if bid == nil {
		writeError(w, "not found", http.StatusNotFound)
		return
	}

	if req.Title != nil {
		bid.Title = *req.Title
	}
	if req.Status != nil {
		bid.Status = *req.Status
	}
	if req.Amount != nil {
		bid.Amount = *req.Amount
	}

	if err := h.bidRepo.UpdateBid(ctx, bid); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, bid, http.StatusOK)
}

func (h *BidsHandler) DeleteBid(w http.ResponseWriter, r *http.Request) {
	if err := h.bidRepo.DeleteBid(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "bid deleted successfully"}, http.StatusOK)
}
