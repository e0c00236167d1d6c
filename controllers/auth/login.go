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

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	err := database.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
			return
		}
		log.Printf("[login] DB error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if !user.ValidatePassword(req.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Printf("[login] failed to issue token for %s: %v", user.Username, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"user":  user,
			"token": token,
		},
	})
}
