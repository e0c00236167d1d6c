package admins

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

type PackageRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Price         string `json:"price" validate:"required"`
	DurationDays  int    `json:"duration_days" validate:"required,gt=0"`
	ProfitPercent int    `json:"profit_percent" validate:"required,gt=0"`
	Description   string `json:"description"`
}

// POST /admin/packages
func CreatePackageHandler(w http.ResponseWriter, r *http.Request) {
	var req PackageRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid price"})
		return
	}

	pkg := models.Package{
		Name:          req.Name,
		Price:         price,
		DurationDays:  req.DurationDays,
		ProfitPercent: req.ProfitPercent,
		Description:   req.Description,
	}
	if err := database.DB.Create(&pkg).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create package"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Package created", Data: pkg})
}

// PUT /admin/packages/{id}
func UpdatePackageHandler(w http.ResponseWriter, r *http.Request) {
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

	var req PackageRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid price"})
		return
	}

	pkg.Name = req.Name
	pkg.Price = price
	pkg.DurationDays = req.DurationDays
	pkg.ProfitPercent = req.ProfitPercent
	pkg.Description = req.Description
	if err := database.DB.Save(&pkg).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update package"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Package updated", Data: pkg})
}

// DELETE /admin/packages/{id} - blocked while any investment references it.
func DeletePackageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid package ID"})
		return
	}

	var count int64
	if err := database.DB.Model(&models.Investment{}).Where("package_id = ?", uint(id)).Count(&count).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if count > 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Package is referenced by investments and cannot be deleted"})
		return
	}

	res := database.DB.Delete(&models.Package{}, uint(id))
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete package"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Package not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Package deleted"})
}
