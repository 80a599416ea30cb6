package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type OrderRequest struct {
	Username string  `json:"username"`
	Deadline ISOTime `json:"deadline"`
	Isin     string  `json:"isin"`
	Price    float64 `json:"price"`
	Count    int     `json:"count"`
}

// OrderForm holds the raw order form fields, keyed by their element ids.
type OrderForm struct {
	Account  string `schema:"account"`
	Isin     string `schema:"stock-isin"`
	Price    string `schema:"stock-price"`
	Count    string `schema:"stock-count"`
	Deadline string `schema:"deadline"`
}

// ToRequest coerces the form into an order. now is the reference for deadline checks.
func (f OrderForm) ToRequest(now time.Time, loc *time.Location) (OrderRequest, error) {
	username := strings.TrimSpace(f.Account)
	if username == "" {
		return OrderRequest{}, AccountRequiredErr
	}

	isin := strings.TrimSpace(f.Isin)
	if isin == "" {
		return OrderRequest{}, IsinRequiredErr
	}

	price, err := ParsePrice(f.Price)
	if err != nil || price <= 0 {
		return OrderRequest{}, InvalidPriceErr
	}

	count, err := strconv.Atoi(strings.TrimSpace(f.Count))
	if err != nil || count <= 0 {
		return OrderRequest{}, InvalidCountErr
	}

	deadline, err := ParseDeadline(f.Deadline, loc)
	if err != nil {
		return OrderRequest{}, err
	}

	if !deadline.After(now) {
		return OrderRequest{}, fmt.Errorf("%w: %s", DeadlineExceededErr, deadline.Format(time.RFC3339))
	}

	return OrderRequest{
		Username: username,
		Deadline: ISOTime{Time: deadline.UTC()},
		Isin:     isin,
		Price:    price,
		Count:    count,
	}, nil
}

// ParsePrice parses a finite decimal number.
func ParsePrice(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("ParsePrice: %w", err)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("ParsePrice: %v is not finite", value)
	}

	return v, nil
}
