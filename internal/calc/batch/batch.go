package batch

import (
	"fmt"

	"Impas/internal/calc/analysis"
)

const MaxItems = 500

type Input struct {
	Items []analysis.Input `json:"items"`
}

type Item struct {
	Index  int              `json:"index"`
	Name   string           `json:"name,omitempty"`
	Result *analysis.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type Result struct {
	Count   int    `json:"count"`
	Failed  int    `json:"failed"`
	Results []Item `json:"results"`
}

// Evaluate validates and calculates a single scenario; validation failures
// are kept on the item.
func Evaluate(index int, name string, in analysis.Input) Item {
	item := Item{Index: index, Name: name}
	if err := in.Validate(); err != nil {
		item.Error = err.Error()
		return item
	}
	res := analysis.Calculate(in)
	item.Result = &res
	return item
}

// Summarize counts the failed items.
func Summarize(items []Item) Result {
	out := Result{Count: len(items), Results: items}
	for _, it := range items {
		if it.Error != "" {
			out.Failed++
		}
	}
	return out
}

func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("too many items: %d, max %d", len(in.Items), MaxItems)
	}
	items := make([]Item, 0, len(in.Items))
	for i, scenario := range in.Items {
		items = append(items, Evaluate(i, "", scenario))
	}
	return Summarize(items), nil
}
