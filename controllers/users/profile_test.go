package users

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/songurtechnology/wafelinvest/models"
)

func approvedInvestment(t *testing.T, approvedAt time.Time, amount, expectedReturn, packageName string) models.Investment {
	t.Helper()
	a, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatal(err)
	}
	r, err := decimal.NewFromString(expectedReturn)
	if err != nil {
		t.Fatal(err)
	}
	return models.Investment{
		Amount:         a,
		ExpectedReturn: r,
		Status:         models.StatusApproved,
		ApprovedAt:     &approvedAt,
		Package:        &models.Package{Name: packageName},
	}
}

func TestBuildCharts_MonthlyAndPackageAggregates(t *testing.T) {
	jan := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)

	approved := []models.Investment{
		approvedInvestment(t, jan, "100.00", "140.00", "Starter"),
		approvedInvestment(t, jan, "50.00", "70.00", "Starter"),
		approvedInvestment(t, feb, "200.00", "280.00", "Pro"),
	}

	invested, returns, packages := buildCharts(approved)

	if !reflect.DeepEqual(invested.Labels, []string{"2025-01", "2025-02"}) {
		t.Fatalf("unexpected invested labels %v", invested.Labels)
	}
	if !reflect.DeepEqual(invested.Data, []string{"150.00", "200.00"}) {
		t.Fatalf("unexpected invested data %v", invested.Data)
	}
	if !reflect.DeepEqual(returns.Data, []string{"210.00", "280.00"}) {
		t.Fatalf("unexpected returns data %v", returns.Data)
	}
	if !reflect.DeepEqual(packages.Labels, []string{"Pro", "Starter"}) {
		t.Fatalf("unexpected package labels %v", packages.Labels)
	}
	if !reflect.DeepEqual(packages.Data, []string{"200.00", "150.00"}) {
		t.Fatalf("unexpected package data %v", packages.Data)
	}
}

func TestBuildCharts_FallsBackToCreationMonth(t *testing.T) {
	inv := models.Investment{
		Amount:         decimal.NewFromInt(75),
		ExpectedReturn: decimal.NewFromInt(105),
		Status:         models.StatusApproved,
		CreatedAt:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	invested, _, packages := buildCharts([]models.Investment{inv})

	if !reflect.DeepEqual(invested.Labels, []string{"2025-03"}) {
		t.Fatalf("expected creation-month fallback, got %v", invested.Labels)
	}
	if len(packages.Labels) != 0 {
		t.Fatalf("investment without a loaded package must not appear in the distribution, got %v", packages.Labels)
	}
}

func TestBuildCharts_Empty(t *testing.T) {
	invested, returns, packages := buildCharts(nil)
	if len(invested.Labels) != 0 || len(returns.Labels) != 0 || len(packages.Labels) != 0 {
		t.Fatal("empty input must yield empty series")
	}
}
