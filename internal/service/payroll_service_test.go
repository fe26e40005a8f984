package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/courier-payroll/internal/service"
)

func TestPayrollService_CloseFortnight(t *testing.T) {
	ctx := context.Background()
	closedAt := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)

	couriers := &fakeCouriers{}
	ana := couriers.add("Ana")
	bia := couriers.add("Bia")
	couriers.add("Idle")
	deliveries := &fakeDeliveries{}
	deliveries.add(ana.ID, day(2024, 2, 29), 100, 0, false)
	deliveries.add(ana.ID, day(2024, 3, 1), 2, 0, true)
	deliveries.add(ana.ID, day(2024, 3, 15), 4, 1, false)
	deliveries.add(bia.ID, day(2024, 3, 10), 1, 0, false)
	deliveries.add(bia.ID, day(2024, 3, 16), 50, 0, false)

	closings := &fakeClosings{}
	svc := service.NewPayrollService(couriers, deliveries, closings, fixedClock(closedAt), time.UTC)

	t.Run("closes the first half from the first of the month", func(t *testing.T) {
		got, err := svc.CloseFortnight(ctx, closedAt)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, ana.ID, got[0].CourierID)
		assert.Equal(t, day(2024, 3, 1), got[0].PeriodStart)
		assert.Equal(t, day(2024, 3, 15), got[0].PeriodEnd)
		assert.Equal(t, 2, got[0].DeliveryCount)
		assert.Equal(t, 6, got[0].TotalPackages)
		assert.Equal(t, 46.0, got[0].TotalValue)
		assert.Equal(t, 15.0, got[0].PaidValue)
		assert.Equal(t, 31.0, got[0].UnpaidValue)
		assert.Equal(t, closedAt, got[0].ClosedAt)

		assert.Equal(t, bia.ID, got[1].CourierID)
		assert.Equal(t, 1, got[1].TotalPackages)

		stored, err := svc.ListClosings(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("closing twice replaces the stored rows", func(t *testing.T) {
		_, err := svc.CloseFortnight(ctx, closedAt.Add(time.Hour))
		require.NoError(t, err)

		stored, err := svc.ListClosings(ctx, &ana.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("early in the month closes the previous second half", func(t *testing.T) {
		got, err := svc.CloseFortnight(ctx, day(2024, 3, 1))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, day(2024, 2, 16), got[0].PeriodStart)
		assert.Equal(t, day(2024, 2, 29), got[0].PeriodEnd)
		assert.Equal(t, 100, got[0].TotalPackages)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := service.NewPayrollService(couriers, deliveries, &fakeClosings{err: errStoreDown}, fixedClock(closedAt), time.UTC)
		_, err := failing.CloseFortnight(ctx, closedAt)
		require.ErrorIs(t, err, errStoreDown)
	})
}
