package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/courier-payroll/internal/model"
)

const fontName = "Helvetica"

var headerFill = [3]int{71, 85, 105}

// Generator renders the delivery report with the core Helvetica font, so text
// goes through a cp1252 translator to keep Portuguese accents.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.DeliveryReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 15, 14)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("{nb}")

	generatedAt := report.GeneratedAt
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(60, 10, tr("Gerado em: "+formatDateTime(generatedAt)), "", 0, "L", false, 0, "")
		pdf.CellFormat(62, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Entregas"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 12)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Período: %s até %s", formatDate(report.Period.Start), formatDate(report.Period.End))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Entregador: "+courierLabel(report.Courier)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 8, "Resumo Geral", "", 1, "L", false, 0, "")

	summaryWidths := []float64{91, 91}
	drawTableRow(pdf, tr, []string{"Métrica", "Valor"}, summaryWidths, true)
	for _, row := range summaryRows(report.Summary) {
		drawTableRow(pdf, tr, row, summaryWidths, false)
	}

	if report.Courier != nil && len(report.Groups) > 0 {
		pdf.Ln(8)
		pdf.SetFont(fontName, "B", 14)
		pdf.CellFormat(0, 8, "Detalhamento por Data", "", 1, "L", false, 0, "")

		detailWidths := []float64{40, 30, 40, 40}
		drawTableRow(pdf, tr, []string{"Data", "Pacotes", "Valor Adicional", "Valor Total"}, detailWidths, true)
		for _, group := range report.Groups {
			for _, d := range group.Deliveries {
				drawTableRow(pdf, tr, []string{
					group.Date,
					fmt.Sprintf("%d", d.PackageCount),
					formatMoney(d.AdditionalValue),
					formatMoney(d.TotalValue),
				}, detailWidths, false)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryRows(s model.Summary) [][]string {
	return [][]string{
		{"Total de Rotas", fmt.Sprintf("%d", s.Count)},
		{"Total de Pacotes", fmt.Sprintf("%d", s.TotalPackages)},
		{"Valores Adicionais", formatMoney(s.TotalAdditional)},
		{"Saldo Total", formatMoney(s.TotalValue)},
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	if header {
		pdf.SetFont(fontName, "B", 11)
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		pdf.SetTextColor(255, 255, 255)
	} else {
		pdf.SetFont(fontName, "", 11)
		pdf.SetTextColor(0, 0, 0)
	}
	for i, col := range cols {
		align := "L"
		if i > 0 && !header {
			align = "R"
		}
		pdf.CellFormat(widths[i], 9, tr(col), "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func courierLabel(c *model.Courier) string {
	if c == nil {
		return "Todos os entregadores"
	}
	return c.Name
}

func formatMoney(value float64) string {
	return fmt.Sprintf("R$ %.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
