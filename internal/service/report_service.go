package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/model"
)

type PDFGenerator interface {
	Generate(report model.DeliveryReport) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(report model.DeliveryReport) ([]byte, error)
}

type ReportService struct {
	couriers   CourierStore
	deliveries DeliveryStore
	pdf        PDFGenerator
	excel      ExcelGenerator
	now        Clock
	loc        *time.Location
}

// ReportFilter selects deliveries for a report. CourierID set to
// earnings.AllCouriers includes everyone.
type ReportFilter struct {
	CourierID uuid.UUID
	Range     model.DateRange
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// snapshot is a consistent view of both collections taken once per request.
type snapshot struct {
	couriers   []model.Courier
	deliveries []model.Delivery
}

func NewReportService(
	couriers CourierStore,
	deliveries DeliveryStore,
	pdf PDFGenerator,
	excel ExcelGenerator,
	now Clock,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		couriers:   couriers,
		deliveries: deliveries,
		pdf:        pdf,
		excel:      excel,
		now:        now,
		loc:        loc,
	}
}

func (s *ReportService) Summary(ctx context.Context, filter ReportFilter) (*model.DeliveryReport, error) {
	filter, err := s.normalize(filter)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var courier *model.Courier
	if filter.CourierID != earnings.AllCouriers {
		c, ok := findCourier(snap.couriers, filter.CourierID)
		if !ok {
			return nil, ErrNotFound
		}
		courier = &c
	}

	selected := earnings.FilterByCourier(snap.deliveries, filter.CourierID)
	selected = earnings.FilterByDateRange(selected, filter.Range.Start, filter.Range.End)

	return &model.DeliveryReport{
		Courier:     courier,
		Period:      filter.Range,
		Summary:     earnings.Summarize(selected),
		Groups:      earnings.DateGroups(selected),
		Couriers:    snap.couriers,
		GeneratedAt: s.now().In(s.loc),
	}, nil
}

func (s *ReportService) Fortnight(ctx context.Context, year int, month time.Month, half model.Half, courierID uuid.UUID) (*model.FortnightReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if year < 1 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if half != model.FirstHalf && half != model.SecondHalf {
		return nil, fmt.Errorf("%w: half must be first or second", ErrInvalidInput)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if courierID != earnings.AllCouriers {
		if _, ok := findCourier(snap.couriers, courierID); !ok {
			return nil, ErrNotFound
		}
	}

	period := earnings.FortnightRange(year, month, half)
	selected := earnings.FilterByCourier(snap.deliveries, courierID)
	selected = earnings.FilterByDateRange(selected, period.Start, period.End)

	return &model.FortnightReport{
		Year:    year,
		Month:   int(month),
		Half:    half,
		Period:  period,
		Summary: earnings.Summarize(selected),
	}, nil
}

// Biweekly returns the courier's rolling 15 day total. A zero reference means
// now.
func (s *ReportService) Biweekly(ctx context.Context, courierID uuid.UUID, reference time.Time) (*model.BiweeklyTotal, error) {
	if courierID == uuid.Nil {
		return nil, fmt.Errorf("%w: courier id is required", ErrInvalidInput)
	}
	if _, err := s.couriers.Get(ctx, courierID); err != nil {
		return nil, translate(err)
	}
	deliveries, err := s.deliveries.List(ctx, model.DeliveryFilter{CourierID: &courierID})
	if err != nil {
		return nil, err
	}
	if reference.IsZero() {
		reference = s.now()
	}
	total := earnings.BiweeklyTotal(deliveries, courierID, reference)
	return &total, nil
}

func (s *ReportService) CourierTotals(ctx context.Context) ([]model.CourierTotals, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return earnings.SummarizeByCourier(snap.deliveries, snap.couriers), nil
}

func (s *ReportService) ExportPDF(ctx context.Context, filter ReportFilter) (*ExportResult, error) {
	report, err := s.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: s.buildFileName(*report, "pdf"), Content: content}, nil
}

func (s *ReportService) ExportExcel(ctx context.Context, filter ReportFilter) (*ExportResult, error) {
	report, err := s.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: s.buildFileName(*report, "xlsx"), Content: content}, nil
}

func (s *ReportService) load(ctx context.Context) (*snapshot, error) {
	couriers, err := s.couriers.List(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.deliveries.List(ctx, model.DeliveryFilter{})
	if err != nil {
		return nil, err
	}
	return &snapshot{couriers: couriers, deliveries: deliveries}, nil
}

// normalize applies the default period, from the first day of the current
// month through today, when no bound is given.
func (s *ReportService) normalize(filter ReportFilter) (ReportFilter, error) {
	if filter.Range.Start.IsZero() && filter.Range.End.IsZero() {
		today := s.now().In(s.loc)
		y, m, d := today.Date()
		filter.Range = model.DateRange{
			Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		}
	}
	filter.Range.Start = earnings.DateOnly(filter.Range.Start)
	filter.Range.End = earnings.DateOnly(filter.Range.End)
	if !filter.Range.Start.IsZero() && !filter.Range.End.IsZero() && filter.Range.Start.After(filter.Range.End) {
		return filter, fmt.Errorf("%w: from must be before or equal to to", ErrInvalidInput)
	}
	return filter, nil
}

func (s *ReportService) buildFileName(report model.DeliveryReport, ext string) string {
	person := "todos"
	if report.Courier != nil {
		person = sanitizeFileName(strings.ToLower(report.Courier.Name))
		if person == "" {
			person = "entregador"
		}
	}
	return fmt.Sprintf("relatorio-entregas-%s-%s.%s", person, report.GeneratedAt.Format("02-01-2006"), ext)
}

func findCourier(couriers []model.Courier, id uuid.UUID) (model.Courier, bool) {
	for _, c := range couriers {
		if c.ID == id {
			return c, true
		}
	}
	return model.Courier{}, false
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
