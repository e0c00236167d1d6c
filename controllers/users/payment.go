package users

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/services"
	"github.com/songurtechnology/wafelinvest/utils"
)

// POST /investments/{id}/payment - multipart form with payment_screenshot
// and optional whatsapp_number. The route is wrapped with a body cap just
// above the 5 MB file limit.
func (c *InvestmentController) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	investmentID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	if err := r.ParseMultipartForm(services.MaxProofSize); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid upload, file size must not exceed 5MB"})
		return
	}

	file, header, err := r.FormFile("payment_screenshot")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Payment proof file is required"})
		return
	}
	defer file.Close()

	profile, ok := profileFor(w, actor.ID)
	if !ok {
		return
	}

	conf, err := c.Ledger.SubmitPayment(r.Context(), uint(investmentID), profile.ID,
		r.FormValue("whatsapp_number"),
		services.ProofUpload{
			Filename: header.Filename,
			Size:     header.Size,
			Body:     file,
		})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Payment proof submitted, awaiting approval",
		Data:    conf,
	})
}
