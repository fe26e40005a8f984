// Package earnings derives pay figures from delivery records: per-delivery
// totals, courier and date filters, day grouping, summaries and payroll
// periods. Every function is pure; callers pass a stable snapshot.
package earnings

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/model"
)

// UnitRate is the pay per package.
const UnitRate = 7.5

// DateKeyLayout formats the keys produced by GroupByFormattedDate.
const DateKeyLayout = "02/01/2006"

// AllCouriers disables the courier filter.
var AllCouriers = uuid.Nil

const biweeklyWindowDays = 15

func ComputeTotalValue(packageCount int, additionalValue float64) float64 {
	return float64(packageCount)*UnitRate + finite(additionalValue)
}

// FilterByCourier keeps input order. AllCouriers returns deliveries unchanged.
func FilterByCourier(deliveries []model.Delivery, courierID uuid.UUID) []model.Delivery {
	if courierID == AllCouriers {
		return deliveries
	}
	result := make([]model.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if d.CourierID == courierID {
			result = append(result, d)
		}
	}
	return result
}

// FilterByDateRange keeps deliveries whose calendar day lies within
// [start, end]. A zero start or end leaves that side unbounded.
func FilterByDateRange(deliveries []model.Delivery, start, end time.Time) []model.Delivery {
	from := DateOnly(start)
	to := DateOnly(end)
	result := make([]model.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		day := DateOnly(d.Date)
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			continue
		}
		result = append(result, d)
	}
	return result
}

func GroupByFormattedDate(deliveries []model.Delivery) map[string][]model.Delivery {
	groups := make(map[string][]model.Delivery)
	for _, d := range deliveries {
		key := d.Date.Format(DateKeyLayout)
		groups[key] = append(groups[key], d)
	}
	return groups
}

// DateGroups returns the day groups ordered newest first, the order used by
// the exported reports.
func DateGroups(deliveries []model.Delivery) []model.DateGroup {
	groups := GroupByFormattedDate(deliveries)
	keys := SortedDateKeys(groups)
	result := make([]model.DateGroup, 0, len(keys))
	for _, key := range keys {
		result = append(result, model.DateGroup{Date: key, Deliveries: groups[key]})
	}
	return result
}

func SortedDateKeys(groups map[string][]model.Delivery) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := time.Parse(DateKeyLayout, keys[i])
		b, errB := time.Parse(DateKeyLayout, keys[j])
		if errA != nil || errB != nil {
			return keys[i] > keys[j]
		}
		return a.After(b)
	})
	return keys
}

func Summarize(deliveries []model.Delivery) model.Summary {
	var s model.Summary
	for _, d := range deliveries {
		s.Count++
		s.TotalPackages += Count(d.PackageCount)
		s.TotalValue += Number(d.TotalValue)
		s.TotalAdditional += Number(d.AdditionalValue)
	}
	return s
}

// BiweeklyTotal sums the courier's deliveries dated no earlier than 15 days
// before reference. This is a rolling window, unrelated to FortnightRange.
func BiweeklyTotal(deliveries []model.Delivery, courierID uuid.UUID, reference time.Time) model.BiweeklyTotal {
	since := reference.AddDate(0, 0, -biweeklyWindowDays)
	var total model.BiweeklyTotal
	for _, d := range deliveries {
		if d.CourierID != courierID || d.Date.Before(since) {
			continue
		}
		total.Packages += Count(d.PackageCount)
		total.Value += Number(d.TotalValue)
	}
	return total
}

// SummarizeByCourier returns totals for every courier with at least one
// delivery, in the order couriers are given. Deliveries whose courier is not
// in couriers are reported after them, one entry per missing id.
func SummarizeByCourier(deliveries []model.Delivery, couriers []model.Courier) []model.CourierTotals {
	byCourier := make(map[uuid.UUID][]model.Delivery)
	for _, d := range deliveries {
		byCourier[d.CourierID] = append(byCourier[d.CourierID], d)
	}

	result := make([]model.CourierTotals, 0, len(byCourier))
	known := make(map[uuid.UUID]struct{}, len(couriers))
	for _, c := range couriers {
		known[c.ID] = struct{}{}
		list, ok := byCourier[c.ID]
		if !ok {
			continue
		}
		result = append(result, courierTotals(c.ID, c.Name, list))
	}

	orphans := make([]uuid.UUID, 0)
	for id := range byCourier {
		if _, ok := known[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].String() < orphans[j].String() })
	for _, id := range orphans {
		totals := courierTotals(id, "", byCourier[id])
		totals.Orphaned = true
		result = append(result, totals)
	}
	return result
}

func courierTotals(id uuid.UUID, name string, deliveries []model.Delivery) model.CourierTotals {
	totals := model.CourierTotals{
		CourierID:   id,
		CourierName: name,
		Summary:     Summarize(deliveries),
	}
	for _, d := range deliveries {
		if d.Paid {
			totals.PaidValue += Number(d.TotalValue)
		} else {
			totals.UnpaidValue += Number(d.TotalValue)
		}
	}
	return totals
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
