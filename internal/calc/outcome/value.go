// Package outcome holds the result of a formula that is either a number or
// undefined for a stated reason.
package outcome

import (
	"encoding/json"
	"fmt"
)

type Reason string

const (
	ReasonPriceNotPositive          Reason = "price_not_positive"
	ReasonPriceNotAboveVariableCost Reason = "price_not_above_variable_cost"
	ReasonContributionNotPositive   Reason = "contribution_margin_not_positive"
	ReasonInvestmentNotPositive     Reason = "investment_not_positive"
	ReasonAnnualProfitNotPositive   Reason = "annual_profit_not_positive"
	ReasonSalesPerMonthNotPositive  Reason = "sales_per_month_not_positive"
	ReasonSolverFailed              Reason = "solver_failed"
)

var messages = map[Reason]string{
	ReasonPriceNotPositive:          "undefined (price ≤ 0)",
	ReasonPriceNotAboveVariableCost: "undefined (price ≤ variable cost)",
	ReasonContributionNotPositive:   "undefined (contribution margin ≤ 0)",
	ReasonInvestmentNotPositive:     "undefined (investment ≤ 0)",
	ReasonAnnualProfitNotPositive:   "undefined (annual profit ≤ 0)",
	ReasonSalesPerMonthNotPositive:  "undefined (sales per month ≤ 0)",
	ReasonSolverFailed:              "undefined (break-even solver failed)",
}

func (r Reason) Message() string {
	if m, ok := messages[r]; ok {
		return m
	}
	return fmt.Sprintf("undefined (%s)", string(r))
}

// Value is either Defined or Undefined. The zero Value is Defined(0).
type Value struct {
	amount float64
	reason Reason
}

func Defined(v float64) Value { return Value{amount: v} }

func Undefined(r Reason) Value { return Value{reason: r} }

func (v Value) IsDefined() bool { return v.reason == "" }

// Float returns the amount and whether it is defined.
func (v Value) Float() (float64, bool) {
	if !v.IsDefined() {
		return 0, false
	}
	return v.amount, true
}

func (v Value) Reason() Reason { return v.reason }

// Format renders a defined value with format, an undefined one with its message.
func (v Value) Format(format func(float64) string) string {
	if f, ok := v.Float(); ok {
		return format(f)
	}
	return v.reason.Message()
}

func (v Value) String() string {
	return v.Format(func(f float64) string { return fmt.Sprintf("%.2f", f) })
}

type wire struct {
	Defined bool     `json:"defined"`
	Value   *float64 `json:"value,omitempty"`
	Reason  Reason   `json:"reason,omitempty"`
	Message string   `json:"message,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	if f, ok := v.Float(); ok {
		return json.Marshal(wire{Defined: true, Value: &f})
	}
	return json.Marshal(wire{Reason: v.reason, Message: v.reason.Message()})
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Defined {
		if w.Value == nil {
			return fmt.Errorf("defined value without amount")
		}
		*v = Defined(*w.Value)
		return nil
	}
	if w.Reason == "" {
		return fmt.Errorf("undefined value without reason")
	}
	*v = Undefined(w.Reason)
	return nil
}
