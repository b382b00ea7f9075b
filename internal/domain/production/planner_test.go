package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mipymes-api/internal/domain"
	"github.com/jhoicas/mipymes-api/internal/domain/costing"
	"github.com/jhoicas/mipymes-api/internal/domain/entity"
	"github.com/jhoicas/mipymes-api/internal/domain/production"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sheet(stock string, waste string) costing.Sheet {
	return costing.Sheet{
		Mipyme:  &entity.Mipyme{ID: "m1"},
		Product: &entity.Product{ID: "p1", Name: "Galleta", Profit: entity.ManualPrice(), SalePrice: dec("1.00")},
		Recipe: []costing.RecipeItem{{
			Line:     entity.RecipeLine{ID: "r1", MaterialID: "harina", Quantity: dec("0.5"), WastePct: dec(waste)},
			Material: &entity.Material{ID: "harina", Name: "Harina", CostPerUnit: dec("1.50"), Stock: dec(stock)},
		}},
		Routing: []costing.RoutingItem{{
			Step:    entity.RoutingStep{ID: "s1", ProcessID: "horno", Minutes: dec("6")},
			Process: &entity.Process{ID: "horno", Name: "Horno", CostPerHour: dec("10")},
		}},
	}
}

func TestPlan_StockInsuficiente_ReportaFaltante(t *testing.T) {
	plan, err := production.Plan(costing.NewEngine(""), sheet("40", "0"), 100)
	require.NoError(t, err)

	assert.False(t, plan.Feasible)
	require.Len(t, plan.Shortfalls, 1)
	sf := plan.Shortfalls[0]
	assert.Equal(t, "Harina", sf.Name)
	assert.True(t, dec("50").Equal(sf.Required))
	assert.True(t, dec("40").Equal(sf.Available))
	assert.True(t, dec("10").Equal(sf.Missing()))

	err = plan.Err()
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPlan_Factible_CalculaAgregados(t *testing.T) {
	plan, err := production.Plan(costing.NewEngine(""), sheet("100", "10"), 100)
	require.NoError(t, err)

	assert.True(t, plan.Feasible)
	assert.NoError(t, plan.Err())
	assert.True(t, dec("55").Equal(plan.Materials[0].Required), "0.5 × 100 × 1.10")
	assert.True(t, dec("82.5").Equal(plan.MaterialCost))
	assert.True(t, dec("100").Equal(plan.ProcessCost), "(6/60) × 10 × 100")
	assert.True(t, dec("182.5").Equal(plan.TotalCost))
	assert.True(t, dec("100").Equal(plan.ProjectedRevenue))
	assert.True(t, dec("-82.5").Equal(plan.ProjectedMargin))
	assert.True(t, dec("600").Equal(plan.Processes[0].Minutes))
}

func TestPlan_UnidadesInvalidas(t *testing.T) {
	for _, units := range []int64{0, -3} {
		_, err := production.Plan(costing.NewEngine(""), sheet("100", "0"), units)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}
