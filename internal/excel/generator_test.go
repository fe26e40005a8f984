package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/courier-payroll/internal/model"
)

func TestGenerator_Generate(t *testing.T) {
	ana := model.Courier{ID: uuid.New(), Name: "Ana"}
	report := model.DeliveryReport{
		Period:  model.DateRange{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		Summary: model.Summary{Count: 2, TotalPackages: 14, TotalValue: 106, TotalAdditional: 1},
		Groups: []model.DateGroup{
			{Date: "10/03/2024", Deliveries: []model.Delivery{{CourierID: ana.ID, PackageCount: 4, AdditionalValue: 1, TotalValue: 31, Paid: true}}},
			{Date: "01/03/2024", Deliveries: []model.Delivery{{CourierID: uuid.New(), PackageCount: 10, TotalValue: 75}}},
		},
		Couriers:    []model.Courier{ana},
		GeneratedAt: time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC),
	}

	out, err := NewGenerator().Generate(report)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{summarySheet, deliveriesSheet}, file.GetSheetList())

	courier, err := file.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Todos os entregadores", courier)

	total, err := file.GetCellValue(summarySheet, "B11")
	require.NoError(t, err)
	assert.Equal(t, "106", total)

	rows, err := file.GetRows(deliveriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"10/03/2024", "Ana", "4", "1", "31", "Sim"}, rows[1])
	assert.Equal(t, "Entregador removido", rows[2][1])
	assert.Equal(t, "Não", rows[2][5])
}
