package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/model"
)

type PayrollService struct {
	couriers   CourierStore
	deliveries DeliveryStore
	closings   PayrollStore
	now        Clock
	loc        *time.Location
}

func NewPayrollService(couriers CourierStore, deliveries DeliveryStore, closings PayrollStore, now Clock, loc *time.Location) *PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollService{
		couriers:   couriers,
		deliveries: deliveries,
		closings:   closings,
		now:        now,
		loc:        loc,
	}
}

// CloseFortnight stores per-courier totals of the last fortnight that ended
// before reference. The first half is closed from the 1st of the month so a
// delivery is never paid in two consecutive closings.
func (s *PayrollService) CloseFortnight(ctx context.Context, reference time.Time) ([]model.PayrollClosing, error) {
	year, month, half := earnings.PreviousFortnight(reference.In(s.loc))
	period := closingRange(year, month, half)

	couriers, err := s.couriers.List(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.deliveries.List(ctx, model.DeliveryFilter{Range: period})
	if err != nil {
		return nil, err
	}
	deliveries = earnings.FilterByDateRange(deliveries, period.Start, period.End)

	closedAt := s.now().UTC()
	totals := earnings.SummarizeByCourier(deliveries, couriers)
	closings := make([]model.PayrollClosing, 0, len(totals))
	for _, t := range totals {
		closings = append(closings, model.PayrollClosing{
			CourierID:       t.CourierID,
			PeriodStart:     period.Start,
			PeriodEnd:       period.End,
			DeliveryCount:   t.Summary.Count,
			TotalPackages:   t.Summary.TotalPackages,
			TotalValue:      t.Summary.TotalValue,
			TotalAdditional: t.Summary.TotalAdditional,
			PaidValue:       t.PaidValue,
			UnpaidValue:     t.UnpaidValue,
			ClosedAt:        closedAt,
		})
	}

	if err := s.closings.UpsertClosings(ctx, closings); err != nil {
		return nil, err
	}
	return closings, nil
}

func (s *PayrollService) ListClosings(ctx context.Context, courierID *uuid.UUID) ([]model.PayrollClosing, error) {
	return s.closings.ListClosings(ctx, courierID)
}

func closingRange(year int, month time.Month, half model.Half) model.DateRange {
	period := earnings.FortnightRange(year, month, half)
	if half == model.FirstHalf {
		period.Start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}
	return period
}
