package metrics

import (
	"Impas/internal/calc/money"
	"Impas/internal/calc/outcome"
)

type ProfitSummary struct {
	Gross float64 `json:"gross_profit"`
	Net   float64 `json:"net_profit"`
}

// ProfitMargin returns (price-variable)/price as a percentage, rounded to 2 decimals.
func ProfitMargin(price, variableCostPerUnit float64) outcome.Value {
	if price <= 0 {
		return outcome.Undefined(outcome.ReasonPriceNotPositive)
	}
	if price <= variableCostPerUnit {
		return outcome.Undefined(outcome.ReasonPriceNotAboveVariableCost)
	}
	return outcome.Defined(money.Round2((price - variableCostPerUnit) / price * 100))
}

// Profit: gross = revenue - variable; net = (gross - fixed) * (1 - tax/100). Net may be negative.
func Profit(revenue, totalVariableCost, fixedCost, taxPercent float64) ProfitSummary {
	gross := revenue - totalVariableCost
	return ProfitSummary{
		Gross: gross,
		Net:   (gross - fixedCost) * (1 - taxPercent/100),
	}
}

func ContributionMargin(price, variableCostPerUnit float64) float64 {
	return price - variableCostPerUnit
}

func AdditionalRevenue(currentProfit, targetProfit float64) float64 {
	if targetProfit > currentProfit {
		return targetProfit - currentProfit
	}
	return 0
}

// TargetUnits is the unit count needed to reach targetProfit on top of fixedCost.
func TargetUnits(targetProfit, fixedCost, contributionMargin float64) outcome.Value {
	if contributionMargin <= 0 {
		return outcome.Undefined(outcome.ReasonContributionNotPositive)
	}
	return outcome.Defined((targetProfit + fixedCost) / contributionMargin)
}

func ROI(investment, profit float64) outcome.Value {
	if investment <= 0 {
		return outcome.Undefined(outcome.ReasonInvestmentNotPositive)
	}
	return outcome.Defined(profit / investment * 100)
}

// PaybackPeriod is in years.
func PaybackPeriod(investment, annualProfit float64) outcome.Value {
	if annualProfit <= 0 {
		return outcome.Undefined(outcome.ReasonAnnualProfitNotPositive)
	}
	return outcome.Defined(investment / annualProfit)
}
