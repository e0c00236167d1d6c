package controllers

import (
	"net/http"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

// GET /payment-info - the active deposit wallet and support contact shown
// on the payment step.
func PaymentInfoHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var wallet models.CryptoWallet
	hasWallet := db.Where("active = ?", true).Order("id ASC").First(&wallet).Error == nil

	var setting models.SiteSetting
	_ = db.First(&setting).Error

	data := map[string]interface{}{
		"support_link":  setting.WhatsappSupportLink,
		"support_email": setting.SupportEmail,
	}
	if hasWallet {
		data["wallet"] = wallet
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: data})
}
