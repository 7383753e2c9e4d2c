// Package stats derives dashboard figures from the full order and product
// sets. Everything here is pure computation; the handler fetches fresh data
// each time the page is shown.
package stats

import (
	"time"

	"github.com/diorsolutions/eco-shop/internal/models"
)

type Report struct {
	TotalOrders            int
	TotalRevenue           float64
	AverageOrderValue      float64
	TotalCustomers         int // distinct phone numbers, not a true identity
	AveragePreparationTime float64
	OrdersByStatus         []StatusCount
	DailyOrders            []DayCount
}

type StatusCount struct {
	Key   string
	Label string
	Count int
}

type DayCount struct {
	Date   string // ISO date, local calendar day
	Orders int
}

// statusBuckets are the fixed breakdown keys carried over from the upstream
// dashboard. Note the first bucket counts status "new", which the submission
// path never writes (it writes "pending"), so it reads zero against real
// data. Kept as-is until the intended fix is confirmed upstream.
var statusBuckets = []struct {
	key   string
	label string
}{
	{"new", "New"},
	{"confirmed", "Confirmed"},
	{"completed", "Completed"},
	{"cancelled", "Cancelled"},
}

// Compute builds the full report. now anchors the 7-day series so the
// bucketing is deterministic under test.
func Compute(orders []models.Order, products []models.Product, now time.Time) Report {
	r := Report{TotalOrders: len(orders)}

	for _, o := range orders {
		r.TotalRevenue += o.TotalAmount
	}
	if r.TotalOrders > 0 {
		r.AverageOrderValue = r.TotalRevenue / float64(r.TotalOrders)
	}

	phones := make(map[string]struct{})
	for _, o := range orders {
		phones[o.CustomerPhone] = struct{}{}
	}
	r.TotalCustomers = len(phones)

	if len(products) > 0 {
		var sum int
		for _, p := range products {
			sum += p.PreparationTime
		}
		r.AveragePreparationTime = float64(sum) / float64(len(products))
	}

	for _, b := range statusBuckets {
		count := 0
		for _, o := range orders {
			if string(o.Status) == b.key {
				count++
			}
		}
		r.OrdersByStatus = append(r.OrdersByStatus, StatusCount{Key: b.key, Label: b.label, Count: count})
	}

	r.DailyOrders = ordersLast7Days(orders, now)
	return r
}

// ordersLast7Days buckets orders by local calendar day over the last seven
// days, oldest first. Matching is by ISO date prefix.
func ordersLast7Days(orders []models.Order, now time.Time) []DayCount {
	days := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		count := 0
		for _, o := range orders {
			if o.CreatedAt.Format("2006-01-02") == date {
				count++
			}
		}
		days = append(days, DayCount{Date: date, Orders: count})
	}
	return days
}
