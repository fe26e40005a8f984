package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/courier-payroll/internal/model"
)

func sampleReport(courier *model.Courier) model.DeliveryReport {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	delivery := model.Delivery{ID: uuid.New(), Date: day, PackageCount: 12, AdditionalValue: 5, TotalValue: 95}
	return model.DeliveryReport{
		Courier: courier,
		Period:  model.DateRange{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: day},
		Summary: model.Summary{Count: 1, TotalPackages: 12, TotalValue: 95, TotalAdditional: 5},
		Groups: []model.DateGroup{
			{Date: "05/03/2024", Deliveries: []model.Delivery{delivery}},
		},
		GeneratedAt: time.Date(2024, 3, 20, 14, 5, 0, 0, time.UTC),
	}
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	t.Run("all couriers", func(t *testing.T) {
		out, err := g.Generate(sampleReport(nil))
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("single courier adds the detail table", func(t *testing.T) {
		summaryOnly, err := g.Generate(sampleReport(nil))
		require.NoError(t, err)
		detailed, err := g.Generate(sampleReport(&model.Courier{ID: uuid.New(), Name: "João"}))
		require.NoError(t, err)
		assert.Greater(t, len(detailed), len(summaryOnly))
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "R$ 1234.50", formatMoney(1234.5))
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "20/03/2024 14:05", formatDateTime(time.Date(2024, 3, 20, 14, 5, 0, 0, time.UTC)))
	assert.Equal(t, "Todos os entregadores", courierLabel(nil))
}
