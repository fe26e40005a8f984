package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/model"
	"github.com/nurpe/courier-payroll/internal/repository/memory"
)

var errStoreDown = errors.New("store down")

type fakeCouriers struct {
	memory.Couriers
	listErr error
}

func (f *fakeCouriers) List(ctx context.Context) ([]model.Courier, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Couriers.List(ctx)
}

func (f *fakeCouriers) add(name string) model.Courier {
	c, _ := f.Create(context.Background(), model.Courier{Name: name})
	return *c
}

type fakeDeliveries struct {
	memory.Deliveries
}

func (f *fakeDeliveries) add(courierID uuid.UUID, date time.Time, packages int, additional float64, paid bool) model.Delivery {
	d, _ := f.Create(context.Background(), model.Delivery{
		CourierID:       courierID,
		Date:            date,
		PackageCount:    packages,
		AdditionalValue: additional,
		TotalValue:      earnings.ComputeTotalValue(packages, additional),
		Paid:            paid,
	})
	return *d
}

func (f *fakeDeliveries) count() int {
	all, _ := f.List(context.Background(), model.DeliveryFilter{})
	return len(all)
}

type fakeClosings struct {
	memory.Closings
	err error
}

func (f *fakeClosings) UpsertClosings(ctx context.Context, closings []model.PayrollClosing) error {
	if f.err != nil {
		return f.err
	}
	return f.Closings.UpsertClosings(ctx, closings)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
