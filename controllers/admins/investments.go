package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/services"
	"github.com/songurtechnology/wafelinvest/utils"
)

// LedgerController exposes the administrative ledger operations.
type LedgerController struct {
	Ledger *services.Ledger
}

func NewLedgerController(ledger *services.Ledger) *LedgerController {
	return &LedgerController{Ledger: ledger}
}

// GET /admin/investments?status=&page=&limit=
func (c *LedgerController) ListInvestments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Investment{}).Preload("Package").Preload("Profile.User")
	if status != "" {
		if !models.ValidStatus(status) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var investments []models.Investment
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&investments).Error; err != nil {
		log.Printf("[admin] failed to list investments: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load investments"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: investments})
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PUT /admin/investments/{id}/status
func (c *LedgerController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	var req SetStatusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	inv, err := c.Ledger.SetStatus(r.Context(), uint(id), req.Status)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Status updated", Data: inv})
}

func writeLedgerError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: verr.Message})
	case errors.Is(err, services.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Not found"})
	default:
		log.Printf("[admin] ledger error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
