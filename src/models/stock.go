package models

import "strings"

type StockQuery struct {
	Label string `schema:"stock-search"`
}

func (q StockQuery) Normalize() (StockQuery, error) {
	label := strings.TrimSpace(q.Label)
	if label == "" {
		return StockQuery{}, StockLabelRequiredErr
	}

	return StockQuery{Label: label}, nil
}

type StockResult struct {
	Label string  `json:"label" csv:"label"`
	Value float64 `json:"value" csv:"value"`
	Isin  string  `json:"isin" csv:"isin"`
}
