package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

// GET /packages
func PackageListHandler(w http.ResponseWriter, r *http.Request) {
	var packages []models.Package
	if err := database.DB.Order("price ASC").Find(&packages).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load packages"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: packages})
}

// GET /packages/{id}
func PackageDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid package ID"})
		return
	}

	var pkg models.Package
	if err := database.DB.First(&pkg, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Package not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	expectedReturn := models.ExpectedReturnFor(pkg.Price, pkg.ProfitPercent)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"package":         pkg,
			"expected_return": expectedReturn,
		},
	})
}

// GET /packages/category/{category} - price bands: basic, premium, master
func PackagesByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	query := database.DB.Model(&models.Package{})
	switch category {
	case "basic":
		query = query.Where("price >= ? AND price < ?", 100, 250)
	case "premium":
		query = query.Where("price >= ? AND price < ?", 250, 500)
	case "master":
		query = query.Where("price >= ? AND price <= ?", 500, 2000)
	default:
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Unknown category"})
		return
	}

	var packages []models.Package
	if err := query.Order("price ASC").Find(&packages).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load packages"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: packages})
}
