package admins

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

type WalletRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=255"`
	Network string `json:"network" validate:"required,max=100"`
	Active  bool   `json:"active"`
}

// POST /admin/wallets
func CreateWalletHandler(w http.ResponseWriter, r *http.Request) {
	var req WalletRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	wallet := models.CryptoWallet{
		Name:    req.Name,
		Address: req.Address,
		Network: req.Network,
		Active:  req.Active,
	}
	if err := database.DB.Create(&wallet).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create wallet"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Wallet created", Data: wallet})
}

// PUT /admin/wallets/{id}
func UpdateWalletHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid wallet ID"})
		return
	}

	var wallet models.CryptoWallet
	if err := database.DB.First(&wallet, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Wallet not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var req WalletRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	wallet.Name = req.Name
	wallet.Address = req.Address
	wallet.Network = req.Network
	wallet.Active = req.Active
	if err := database.DB.Save(&wallet).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update wallet"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Wallet updated", Data: wallet})
}
