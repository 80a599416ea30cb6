package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcTotalPrice(t *testing.T) {
	t.Run("finite numbers", func(t *testing.T) {
		cases := []struct {
			price, count string
			want         string
		}{
			{"1520", "10", "15200"},
			{"12.5", "4", "50"},
			{"0", "7", "0"},
			{" 3 ", "1.5", "4.5"},
			{"-2", "3", "-6"},
			{"0.1", "3", "0.30000000000000004"},
		}

		for _, c := range cases {
			assert.Equal(t, c.want, CalcTotalPrice(c.price, c.count), "%s x %s", c.price, c.count)
		}
	})

	t.Run("non numeric input shows the placeholder", func(t *testing.T) {
		cases := [][2]string{
			{"", "10"},
			{"10", ""},
			{"abc", "1"},
			{"NaN", "1"},
			{"Inf", "2"},
			{"1e308", "1e308"},
		}

		for _, c := range cases {
			assert.Equal(t, TotalPricePlaceholder, CalcTotalPrice(c[0], c[1]), "%s x %s", c[0], c[1])
		}
	})
}
