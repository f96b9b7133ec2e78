package proforma

import (
	"encoding/json"
	"math"
	"testing"

	"landscout/server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalDevelopmentCost(t *testing.T) {
	costs := models.DevelopmentCosts{LandCost: 100000, Sitework: 20000, Utilities: 5000, Permits: 3000, Other: 2000}
	assert.Equal(t, 130000.0, TotalDevelopmentCost(costs))
	assert.Equal(t, 0.0, TotalDevelopmentCost(models.DevelopmentCosts{}))
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name     string
		loan     float64
		rate     float64
		years    float64
		expected float64
	}{
		{"30 year fixed at 6%", 200000, 6.0, 30, 1199.10},
		{"15 year fixed at 5.5%", 150000, 5.5, 15, 1225.63},
		{"Zero loan", 0, 5.5, 30, 0},
		{"Zero interest", 100000, 0, 30, 0},
		{"Zero term", 100000, 5.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.loan, tt.rate, tt.years)
			assert.False(t, math.IsNaN(got))
			assert.False(t, math.IsInf(got, 0))
			assert.InDelta(t, tt.expected, got, 0.05)
		})
	}
}

func TestROI(t *testing.T) {
	result := ROI(130000, 500000, 0)
	assert.Equal(t, 370000.0, result.NetProfit)
	assert.InDelta(t, 284.615, result.ROIPercent, 0.001)
	assert.Equal(t, 0.0, result.AnnualRentalIncome)

	result = ROI(100000, 80000, 1500)
	assert.Equal(t, -20000.0, result.NetProfit)
	assert.InDelta(t, -20.0, result.ROIPercent, 1e-9)
	assert.Equal(t, 18000.0, result.AnnualRentalIncome)
}

func TestROI_ZeroCost(t *testing.T) {
	result := ROI(0, 250000, 0)
	assert.Equal(t, 250000.0, result.NetProfit)
	assert.Equal(t, 0.0, result.ROIPercent)

	result = ROI(0, 0, 0)
	assert.Equal(t, 0.0, result.ROIPercent)
}

func TestAnalyze(t *testing.T) {
	in := Inputs{
		DevelopmentCosts: models.DevelopmentCosts{LandCost: 100000, Sitework: 20000, Utilities: 5000, Permits: 3000, Other: 2000},
		Revenue:          models.Revenue{ProjectedSalePrice: 500000, RentalIncome: 2000},
		Financing:        models.Financing{LoanAmount: 200000, InterestRate: 6, Term: 30},
	}

	a := Analyze(in)
	assert.Equal(t, 130000.0, a.TotalDevelopmentCost)
	assert.InDelta(t, 1199.10, a.MonthlyPayment, 0.01)
	assert.Equal(t, 370000.0, a.NetProfit)
	assert.InDelta(t, 284.615, a.ROIPercent, 0.001)
	assert.Equal(t, 24000.0, a.AnnualRentalIncome)
}

func TestAnalyze_Defaults(t *testing.T) {
	a := Analyze(DefaultInputs())
	assert.Equal(t, Analysis{}, a)
}

func TestAnalysis_JSONIsFlat(t *testing.T) {
	data, err := json.Marshal(Analysis{TotalDevelopmentCost: 1, MonthlyPayment: 2, ROIResult: ROIResult{NetProfit: 3}})
	require.NoError(t, err)

	var out map[string]float64
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 1.0, out["totalDevelopmentCost"])
	assert.Equal(t, 3.0, out["netProfit"])
	assert.Contains(t, out, "roiPercent")
}
