package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateConfirmation = errors.New("payment confirmation already exists for this investment")
)

// ValidationError is a business-rule failure surfaced to the submitting
// actor as a field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Ledger owns the investment lifecycle: creation, status transitions,
// payment confirmations and the derived per-profile summary.
type Ledger struct {
	db    *gorm.DB
	store utils.ObjectStore
}

func NewLedger(db *gorm.DB, store utils.ObjectStore) *Ledger {
	return &Ledger{db: db, store: store}
}

// CreateInvestment commits funds to a package. The expected return is
// computed once at creation from the package profit rate; the investment
// starts pending with no transition timestamps set.
func (l *Ledger) CreateInvestment(ctx context.Context, profileID, packageID uint, amount decimal.Decimal) (*models.Investment, error) {
	if !amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Message: "amount must be greater than zero"}
	}

	var pkg models.Package
	if err := l.db.WithContext(ctx).First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("package %d: %w", packageID, ErrNotFound)
		}
		return nil, err
	}

	var profile models.Profile
	if err := l.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %d: %w", profileID, ErrNotFound)
		}
		return nil, err
	}

	inv := &models.Investment{
		ProfileID:      profile.ID,
		PackageID:      pkg.ID,
		Amount:         amount,
		ExpectedReturn: models.ExpectedReturnFor(amount, pkg.ProfitPercent),
		Status:         models.StatusPending,
	}
	if err := l.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// SetStatus applies an administrative status transition and recomputes the
// owning profile's summary. Two concurrent transitions on the same
// investment race and the last write wins; there is no version guard.
func (l *Ledger) SetStatus(ctx context.Context, investmentID uint, status string) (*models.Investment, error) {
	if !models.ValidStatus(status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", status)}
	}

	var inv models.Investment
	if err := l.db.WithContext(ctx).First(&inv, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("investment %d: %w", investmentID, ErrNotFound)
		}
		return nil, err
	}

	if err := inv.ApplyStatus(status, time.Now()); err != nil {
		return nil, &ValidationError{Field: "status", Message: err.Error()}
	}

	updates := map[string]interface{}{
		"status":       inv.Status,
		"approved_at":  inv.ApprovedAt,
		"cancelled_at": inv.CancelledAt,
		"refunded_at":  inv.RefundedAt,
	}
	if err := l.db.WithContext(ctx).Model(&inv).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := l.RecomputeSummary(ctx, inv.ProfileID); err != nil {
		log.Printf("[ledger] summary recompute for profile %d failed: %v", inv.ProfileID, err)
	}
	return &inv, nil
}

// SubmitPayment attaches the uploaded proof to the investment. At most one
// confirmation per investment; the unique index backs up the existence
// check.
func (l *Ledger) SubmitPayment(ctx context.Context, investmentID, profileID uint, whatsapp string, up ProofUpload) (*models.PaymentConfirmation, error) {
	var inv models.Investment
	if err := l.db.WithContext(ctx).Where("id = ? AND profile_id = ?", investmentID, profileID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("investment %d: %w", investmentID, ErrNotFound)
		}
		return nil, err
	}

	var count int64
	if err := l.db.WithContext(ctx).Model(&models.PaymentConfirmation{}).Where("investment_id = ?", inv.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateConfirmation
	}

	contentType, err := up.Validate()
	if err != nil {
		return nil, err
	}

	if l.store == nil {
		return nil, errors.New("object storage is not configured")
	}
	key := utils.ProofObjectKey(inv.ID, up.Filename)
	url, err := l.store.Put(ctx, key, contentType, up.Body, up.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment proof: %w", err)
	}

	conf := &models.PaymentConfirmation{
		InvestmentID:   inv.ID,
		WhatsappNumber: whatsapp,
		ScreenshotPath: key,
		ScreenshotURL:  url,
		SentAt:         time.Now(),
		AdminApproved:  false,
	}
	if err := l.db.WithContext(ctx).Create(conf).Error; err != nil {
		return nil, err
	}

	if err := l.RecomputeSummary(ctx, inv.ProfileID); err != nil {
		log.Printf("[ledger] summary recompute for profile %d failed: %v", inv.ProfileID, err)
	}
	return conf, nil
}

// ApprovePayment marks the confirmation approved. Approval is terminal;
// rejection is not modeled, an unapproved confirmation simply stays pending.
func (l *Ledger) ApprovePayment(ctx context.Context, confirmationID uint) (*models.PaymentConfirmation, error) {
	var conf models.PaymentConfirmation
	if err := l.db.WithContext(ctx).Preload("Investment").First(&conf, confirmationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("confirmation %d: %w", confirmationID, ErrNotFound)
		}
		return nil, err
	}

	if !conf.AdminApproved {
		now := time.Now()
		conf.AdminApproved = true
		conf.AdminApprovedAt = &now
		if err := l.db.WithContext(ctx).Model(&conf).Updates(map[string]interface{}{
			"admin_approved":    true,
			"admin_approved_at": now,
		}).Error; err != nil {
			return nil, err
		}
	}

	if conf.Investment != nil {
		if err := l.RecomputeSummary(ctx, conf.Investment.ProfileID); err != nil {
			log.Printf("[ledger] summary recompute for profile %d failed: %v", conf.Investment.ProfileID, err)
		}
	}
	return &conf, nil
}

// RecomputeSummary rebuilds the cached aggregate for the profile. It is the
// single recomputation entry point, idempotent and last-write-wins.
func (l *Ledger) RecomputeSummary(ctx context.Context, profileID uint) error {
	var agg struct {
		TotalInvested decimal.Decimal
		TotalReturn   decimal.Decimal
	}
	err := l.db.WithContext(ctx).Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0) AS total_invested, COALESCE(SUM(expected_return), 0) AS total_return").
		Where("profile_id = ? AND status = ?", profileID, models.StatusApproved).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	var approvedCount int64
	if err := l.db.WithContext(ctx).Model(&models.Investment{}).
		Where("profile_id = ? AND status = ?", profileID, models.StatusApproved).
		Count(&approvedCount).Error; err != nil {
		return err
	}

	var pendingPayments int64
	if err := l.db.WithContext(ctx).Model(&models.PaymentConfirmation{}).
		Joins("JOIN investments ON investments.id = payment_confirmations.investment_id").
		Where("investments.profile_id = ? AND payment_confirmations.admin_approved = ?", profileID, false).
		Count(&pendingPayments).Error; err != nil {
		return err
	}

	summary := models.InvestmentSummary{
		ProfileID:           profileID,
		TotalInvested:       agg.TotalInvested,
		TotalReturn:         agg.TotalReturn,
		PendingPayments:     int(pendingPayments),
		HasActiveInvestment: approvedCount > 0,
	}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_invested", "total_return", "pending_payments", "has_active_investment", "updated_at",
		}),
	}).Create(&summary).Error
}
