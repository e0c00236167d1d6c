package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/services"
	"github.com/songurtechnology/wafelinvest/utils"
)

// InvestmentController exposes the user-facing side of the ledger.
type InvestmentController struct {
	Ledger *services.Ledger
}

func NewInvestmentController(ledger *services.Ledger) *InvestmentController {
	return &InvestmentController{Ledger: ledger}
}

type CreateInvestmentRequest struct {
	PackageID uint   `json:"package_id" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Agreement bool   `json:"agreement"`
}

// POST /investments
func (c *InvestmentController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateInvestmentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if !req.Agreement {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Please accept the investment terms"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid amount"})
		return
	}

	profile, ok := profileFor(w, actor.ID)
	if !ok {
		return
	}

	inv, err := c.Ledger.CreateInvestment(r.Context(), profile.ID, req.PackageID, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investment recorded, please upload your payment proof",
		Data:    inv,
	})
}

// GET /investments
func (c *InvestmentController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	profile, ok := profileFor(w, actor.ID)
	if !ok {
		return
	}

	var investments []models.Investment
	if err := database.DB.Preload("Package").
		Where("profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load investments"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: investments})
}

// profileFor loads the profile for a user id, writing the error response on
// failure.
func profileFor(w http.ResponseWriter, userID uint) (models.Profile, bool) {
	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Profile not found"})
		} else {
			log.Printf("[users] DB error loading profile for user %d: %v", userID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return models.Profile{}, false
	}
	return profile, true
}

func writeLedgerError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: verr.Message})
	case errors.Is(err, services.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Not found"})
	case errors.Is(err, services.ErrDuplicateConfirmation):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Payment proof was already submitted for this investment"})
	default:
		log.Printf("[users] ledger error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
