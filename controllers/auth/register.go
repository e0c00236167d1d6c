package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

// writeCreateError maps the create-transaction failure. A duplicate-key
// error means a concurrent registration won the unique-index race after the
// pre-checks passed, so it gets the same 409 as the sequential path.
func writeCreateError(w http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Username or email is already registered"})
		return
	}
	utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create account"})
}

type RegisterRequest struct {
	Username             string `json:"username" validate:"required,min=3,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	PhoneNumber          string `json:"phone_number"`
	Address              string `json:"address"`
}

// RegisterHandler creates the user and its profile in one explicit workflow.
// Profile creation is part of registration, not a side effect of saving the
// user.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Username is already taken"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking username: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Email is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking email: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	}
	if err := user.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:      user.ID,
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Address:     strings.TrimSpace(req.Address),
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Printf("[register] failed to create user %s: %v", req.Username, err)
		writeCreateError(w, err)
		return
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Printf("[register] failed to issue token for %s: %v", req.Username, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful",
		Data: map[string]interface{}{
			"user":  user,
			"token": token,
		},
	})
}
