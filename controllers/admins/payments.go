package admins

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

// GET /admin/payments?pending=true&page=&limit=
func (c *LedgerController) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.PaymentConfirmation{}).Preload("Investment")
	if r.URL.Query().Get("pending") == "true" {
		query = query.Where("admin_approved = ?", false)
	}

	var confirmations []models.PaymentConfirmation
	if err := query.Offset(offset).Limit(limit).Order("sent_at DESC").Find(&confirmations).Error; err != nil {
		log.Printf("[admin] failed to list payment confirmations: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load payment confirmations"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: confirmations})
}

// PUT /admin/payments/{id}/approve
func (c *LedgerController) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid confirmation ID"})
		return
	}

	conf, err := c.Ledger.ApprovePayment(r.Context(), uint(id))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payment approved", Data: conf})
}
