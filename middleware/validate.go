package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/songurtechnology/wafelinvest/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateJSON decodes the request body into dst and runs struct tag
// validation. On failure it writes the 400 response and returns the error
// so handlers can simply return.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Not valid JSON",
		})
		return err
	}
	if err := validate.Struct(dst); err != nil {
		msg := "Validation failed"
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			msg = errs[0].Field() + " failed on " + errs[0].Tag()
		}
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: msg,
		})
		return err
	}
	return nil
}
