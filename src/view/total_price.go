package view

import (
	"math"
	"strconv"

	"github.com/jiaming2012/broker-client/src/models"
)

// TotalPricePlaceholder is displayed when price or count is not a finite number.
const TotalPricePlaceholder = "-"

// CalcTotalPrice returns price × count as display text.
func CalcTotalPrice(price, count string) string {
	p, err := models.ParsePrice(price)
	if err != nil {
		return TotalPricePlaceholder
	}

	c, err := models.ParsePrice(count)
	if err != nil {
		return TotalPricePlaceholder
	}

	total := p * c
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return TotalPricePlaceholder
	}

	return FormatNumber(total)
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
