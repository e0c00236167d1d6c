package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/utils"
)

func TestWriteCreateError_DuplicateKeyIsConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	writeCreateError(rec, fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for unique-index race, got %d", rec.Code)
	}
	var resp utils.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Fatal("response must not be marked successful")
	}
}

func TestWriteCreateError_OtherErrorsAreServerErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeCreateError(rec, errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
