package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverageCost(t *testing.T) {
	cases := []struct {
		name                                 string
		stock, cost, incoming, incomingCost string
		want                                 string
	}{
		{"sin stock previo", "0", "0", "10", "2.50", "2.5"},
		{"mismo costo", "10", "3", "10", "3", "3"},
		{"promedia", "10", "2", "30", "4", "3.5"},
		{"total cero", "0", "5", "0", "7", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeightedAverageCost(
				decimal.RequireFromString(tc.stock), decimal.RequireFromString(tc.cost),
				decimal.RequireFromString(tc.incoming), decimal.RequireFromString(tc.incomingCost),
			)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "obtenido %s", got)
		})
	}
}
