package excel

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/courier-payroll/internal/model"
)

const (
	summarySheet    = "Resumo"
	deliveriesSheet = "Entregas"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.DeliveryReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, report); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(deliveriesSheet); err != nil {
		return nil, err
	}
	if err := g.writeDeliveries(file, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, report model.DeliveryReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Relatório de Entregas")
	set("A2", "Entregador")
	set("B2", courierLabel(report.Courier))
	set("A3", "Início do período")
	set("B3", formatDate(report.Period.Start))
	set("A4", "Fim do período")
	set("B4", formatDate(report.Period.End))
	set("A5", "Gerado em")
	set("B5", report.GeneratedAt.Format("02/01/2006 15:04"))

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Métrica")
	set(fmt.Sprintf("B%d", tableRow), "Valor")
	rows := []struct {
		label string
		value interface{}
	}{
		{"Total de Rotas", report.Summary.Count},
		{"Total de Pacotes", report.Summary.TotalPackages},
		{"Valores Adicionais", report.Summary.TotalAdditional},
		{"Saldo Total", report.Summary.TotalValue},
	}
	for i, row := range rows {
		r := tableRow + 1 + i
		set(fmt.Sprintf("A%d", r), row.label)
		set(fmt.Sprintf("B%d", r), row.value)
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 24)
	_ = file.SetColWidth(summarySheet, "B", "B", 28)
	return nil
}

func (g *Generator) writeDeliveries(file *excelize.File, report model.DeliveryReport) error {
	names := make(map[uuid.UUID]string, len(report.Couriers))
	for _, c := range report.Couriers {
		names[c.ID] = c.Name
	}

	headers := []string{"Data", "Entregador", "Pacotes", "Valor Adicional", "Valor Total", "Pago"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(deliveriesSheet, cell, header)
	}

	row := 2
	for _, group := range report.Groups {
		for _, d := range group.Deliveries {
			values := []interface{}{
				group.Date,
				courierName(names, d.CourierID),
				d.PackageCount,
				d.AdditionalValue,
				d.TotalValue,
				paidLabel(d.Paid),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := file.SetSheetRow(deliveriesSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	_ = file.SetColWidth(deliveriesSheet, "A", "A", 14)
	_ = file.SetColWidth(deliveriesSheet, "B", "B", 32)
	_ = file.SetColWidth(deliveriesSheet, "C", "F", 16)
	return nil
}

func courierLabel(c *model.Courier) string {
	if c == nil {
		return "Todos os entregadores"
	}
	return c.Name
}

func courierName(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Entregador removido"
}

func paidLabel(paid bool) string {
	if paid {
		return "Sim"
	}
	return "Não"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
