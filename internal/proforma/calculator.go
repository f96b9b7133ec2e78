// Package proforma computes development cost, debt service and return figures
// for a land development project. All functions are pure and return raw values;
// rounding and currency formatting belong to the caller.
package proforma

import (
	"math"

	"landscout/server/internal/models"
)

// Inputs are the values entered on the analysis form.
type Inputs struct {
	DevelopmentCosts models.DevelopmentCosts `json:"developmentCosts"`
	Revenue          models.Revenue          `json:"revenue"`
	Financing        models.Financing        `json:"financing"`
}

// DefaultInputs mirrors the form defaults: no costs, 5.5% over 30 years.
func DefaultInputs() Inputs {
	return Inputs{
		Financing: models.Financing{InterestRate: 5.5, Term: 30},
	}
}

// ROIResult is the return on a project's total cost at its projected sale price.
type ROIResult struct {
	NetProfit          float64 `json:"netProfit"`
	ROIPercent         float64 `json:"roiPercent"`
	AnnualRentalIncome float64 `json:"annualRentalIncome"`
}

// Analysis is the full results panel.
type Analysis struct {
	TotalDevelopmentCost float64 `json:"totalDevelopmentCost"`
	MonthlyPayment       float64 `json:"monthlyPayment"`
	ROIResult
}

// TotalDevelopmentCost sums the development cost line items.
func TotalDevelopmentCost(c models.DevelopmentCosts) float64 {
	return c.LandCost + c.Sitework + c.Utilities + c.Permits + c.Other
}

// MonthlyPayment returns the fixed-rate amortized payment. A zero rate, zero
// loan, zero term or any non-finite intermediate result reports 0.
func MonthlyPayment(loanAmount, annualRatePercent, termYears float64) float64 {
	monthlyRate := annualRatePercent / 100 / 12
	if monthlyRate == 0 {
		return 0
	}
	n := termYears * 12
	growth := math.Pow(1+monthlyRate, n)
	payment := loanAmount * monthlyRate * growth / (growth - 1)
	return finiteOrZero(payment)
}

// ROI computes net profit and return percent on totalCost. Monthly rental income is
// annualised and reported separately. A zero total cost reports 0%.
func ROI(totalCost, projectedSalePrice, monthlyRentalIncome float64) ROIResult {
	netProfit := projectedSalePrice - totalCost
	var roi float64
	if totalCost != 0 {
		roi = finiteOrZero(netProfit / totalCost * 100)
	}
	return ROIResult{
		NetProfit:          netProfit,
		ROIPercent:         roi,
		AnnualRentalIncome: monthlyRentalIncome * 12,
	}
}

// Analyze runs every calculation over one set of inputs.
func Analyze(in Inputs) Analysis {
	total := TotalDevelopmentCost(in.DevelopmentCosts)
	return Analysis{
		TotalDevelopmentCost: total,
		MonthlyPayment:       MonthlyPayment(in.Financing.LoanAmount, in.Financing.InterestRate, in.Financing.Term),
		ROIResult:            ROI(total, in.Revenue.ProjectedSalePrice, in.Revenue.RentalIncome),
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
