package users

import (
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

type countdownItem struct {
	ID           uint   `json:"id"`
	Package      string `json:"package"`
	Amount       string `json:"amount"`
	ApprovedDate string `json:"approved_date"`
	EndDate      string `json:"end_date"`
}

type chartSeries struct {
	Labels []string `json:"labels"`
	Data   []string `json:"data"`
}

// buildCharts aggregates approved investments into the dashboard chart
// series: invested amount per month, expected return per month and invested
// amount per package. Investments approved before the stamp existed fall
// back to their creation month.
func buildCharts(approved []models.Investment) (invested, returns, packages chartSeries) {
	monthlyInvested := map[string]decimal.Decimal{}
	monthlyReturns := map[string]decimal.Decimal{}
	perPackage := map[string]decimal.Decimal{}

	for _, inv := range approved {
		month := inv.CreatedAt.Format("2006-01")
		if inv.ApprovedAt != nil {
			month = inv.ApprovedAt.Format("2006-01")
		}
		monthlyInvested[month] = monthlyInvested[month].Add(inv.Amount)
		monthlyReturns[month] = monthlyReturns[month].Add(inv.ExpectedReturn)
		if inv.Package != nil {
			perPackage[inv.Package.Name] = perPackage[inv.Package.Name].Add(inv.Amount)
		}
	}

	return seriesFrom(monthlyInvested), seriesFrom(monthlyReturns), seriesFrom(perPackage)
}

func seriesFrom(totals map[string]decimal.Decimal) chartSeries {
	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := chartSeries{Labels: labels, Data: make([]string, 0, len(labels))}
	for _, label := range labels {
		series.Data = append(series.Data, totals[label].StringFixed(2))
	}
	return series
}

// GET /profile - profile, cached summary, countdowns for approved
// investments (approved_at + package duration) and the dashboard chart
// aggregates.
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	profile, ok := profileFor(w, actor.ID)
	if !ok {
		return
	}

	db := database.DB

	var summary models.InvestmentSummary
	hasSummary := db.Where("profile_id = ?", profile.ID).First(&summary).Error == nil

	var approved []models.Investment
	if err := db.Preload("Package").
		Where("profile_id = ? AND status = ?", profile.ID, models.StatusApproved).
		Order("approved_at ASC").
		Find(&approved).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load investments"})
		return
	}

	countdowns := make([]countdownItem, 0, len(approved))
	for _, inv := range approved {
		if inv.ApprovedAt == nil || inv.Package == nil || inv.Package.DurationDays <= 0 {
			continue
		}
		end := inv.ApprovedAt.AddDate(0, 0, inv.Package.DurationDays)
		countdowns = append(countdowns, countdownItem{
			ID:           inv.ID,
			Package:      inv.Package.Name,
			Amount:       inv.Amount.StringFixed(2),
			ApprovedDate: inv.ApprovedAt.Format("02.01.2006"),
			EndDate:      end.UTC().Format(time.RFC3339),
		})
	}

	investedChart, returnsChart, packageChart := buildCharts(approved)

	data := map[string]interface{}{
		"profile":          profile,
		"countdowns":       countdowns,
		"investment_chart": investedChart,
		"returns_chart":    returnsChart,
		"package_chart":    packageChart,
	}
	if hasSummary {
		data["summary"] = summary
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: data})
}
