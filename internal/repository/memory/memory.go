// Package memory keeps couriers, deliveries and payroll closings in process
// memory. It mirrors the postgres repositories, including returning
// gorm.ErrRecordNotFound, and backs local runs with STORAGE_DRIVER=memory.
// The zero value of every store is ready to use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/courier-payroll/internal/model"
)

type Couriers struct {
	mu    sync.RWMutex
	items []model.Courier
}

func NewCouriers() *Couriers {
	return &Couriers{}
}

func (s *Couriers) Create(ctx context.Context, c model.Courier) (*model.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.New()
	s.items = append(s.items, c)
	return &c, nil
}

func (s *Couriers) List(ctx context.Context) ([]model.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := append([]model.Courier(nil), s.items...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Couriers) Get(ctx context.Context, id uuid.UUID) (*model.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.items {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Couriers) Rename(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (*model.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = name
			s.items[i].UpdatedAt = &updatedAt
			saved := s.items[i]
			return &saved, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Couriers) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type Deliveries struct {
	mu    sync.RWMutex
	items []model.Delivery
}

func NewDeliveries() *Deliveries {
	return &Deliveries{}
}

func (s *Deliveries) Create(ctx context.Context, d model.Delivery) (*model.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = uuid.New()
	s.items = append(s.items, d)
	return &d, nil
}

func (s *Deliveries) List(ctx context.Context, filter model.DeliveryFilter) ([]model.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Delivery, 0, len(s.items))
	for _, d := range s.items {
		if filter.CourierID != nil && d.CourierID != *filter.CourierID {
			continue
		}
		if !filter.Range.Start.IsZero() && d.Date.Before(dateOnly(filter.Range.Start)) {
			continue
		}
		if !filter.Range.End.IsZero() && d.Date.After(dateOnly(filter.Range.End)) {
			continue
		}
		if filter.Paid != nil && d.Paid != *filter.Paid {
			continue
		}
		result = append(result, d)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (s *Deliveries) Get(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.items {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Deliveries) Update(ctx context.Context, d model.Delivery) (*model.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == d.ID {
			d.CreatedAt = s.items[i].CreatedAt
			s.items[i] = d
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Deliveries) SetPaid(ctx context.Context, id uuid.UUID, paid bool, updatedAt time.Time) (*model.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Paid = paid
			s.items[i].UpdatedAt = &updatedAt
			saved := s.items[i]
			return &saved, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Deliveries) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type Closings struct {
	mu    sync.RWMutex
	items []model.PayrollClosing
}

func NewClosings() *Closings {
	return &Closings{}
}

func (s *Closings) UpsertClosings(ctx context.Context, closings []model.PayrollClosing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range closings {
		replaced := false
		for i := range s.items {
			existing := s.items[i]
			if existing.CourierID == c.CourierID && existing.PeriodStart.Equal(c.PeriodStart) && existing.PeriodEnd.Equal(c.PeriodEnd) {
				c.ID = existing.ID
				s.items[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			c.ID = uuid.New()
			s.items = append(s.items, c)
		}
	}
	return nil
}

func (s *Closings) ListClosings(ctx context.Context, courierID *uuid.UUID) ([]model.PayrollClosing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.PayrollClosing, 0, len(s.items))
	for _, c := range s.items {
		if courierID != nil && c.CourierID != *courierID {
			continue
		}
		result = append(result, c)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].PeriodStart.After(result[j].PeriodStart) })
	return result, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
