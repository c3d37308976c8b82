package reports

import (
	"testing"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/model"
)

func appt(clientID, date, start, status string, prices ...float64) model.Appointment {
	var snaps []model.ServiceSnapshot
	for _, p := range prices {
		snaps = append(snaps, model.ServiceSnapshot{Name: "Corte", DurationMinutes: 30, Price: p})
	}
	return model.Appointment{
		ClientID:  clientID,
		Date:      date,
		StartTime: start,
		Status:    status,
		Services:  snaps,
	}
}

func TestCountByStatus_Range(t *testing.T) {
	appts := []model.Appointment{
		appt("c1", "2026-03-10", "09:00", model.StatusScheduled),
		appt("c1", "2026-03-10", "10:00", model.StatusCompleted),
		appt("c2", "2026-03-11", "09:00", model.StatusCancelled),
		appt("c2", "2026-03-12", "09:00", model.StatusConfirmed),
	}

	c := CountByStatus(appts, "2026-03-10", "2026-03-11")
	if c.Scheduled != 1 || c.Completed != 1 || c.Cancelled != 1 || c.Confirmed != 0 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if c.Total() != 3 {
		t.Fatalf("expected total 3, got %d", c.Total())
	}

	day := CountByStatus(appts, "2026-03-12", "2026-03-12")
	if day.Confirmed != 1 || day.Total() != 1 {
		t.Fatalf("single-day range wrong: %+v", day)
	}
}

func TestRevenue_CompletedOnly(t *testing.T) {
	appts := []model.Appointment{
		appt("c1", "2026-03-10", "09:00", model.StatusCompleted, 50, 30),
		appt("c1", "2026-03-10", "11:00", model.StatusScheduled, 100),
		appt("c2", "2026-03-10", "12:00", model.StatusCancelled, 100),
	}
	if got := Revenue(appts); got != 80 {
		t.Fatalf("expected revenue 80, got %v", got)
	}

	// Adding more non-completed appointments must not move the number.
	appts = append(appts, appt("c3", "2026-03-10", "13:00", model.StatusConfirmed, 500))
	if got := Revenue(appts); got != 80 {
		t.Fatalf("non-completed appointment changed revenue: %v", got)
	}
}

func TestRevenueBetween(t *testing.T) {
	appts := []model.Appointment{
		appt("c1", "2026-02-28", "09:00", model.StatusCompleted, 40),
		appt("c1", "2026-03-01", "09:00", model.StatusCompleted, 60),
	}
	if got := RevenueBetween(appts, "2026-03-01", "2026-03-31"); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
}

func TestSortDay(t *testing.T) {
	appts := []model.Appointment{
		appt("c1", "2026-03-10", "14:00", model.StatusScheduled),
		appt("c2", "2026-03-10", "08:30", model.StatusScheduled),
		appt("c3", "2026-03-10", "09:00", model.StatusScheduled),
	}
	SortDay(appts)
	if appts[0].StartTime != "08:30" || appts[1].StartTime != "09:00" || appts[2].StartTime != "14:00" {
		t.Fatalf("day not sorted by start time: %+v", appts)
	}
}

func TestLowStock(t *testing.T) {
	products := []model.Product{
		{ID: "p1", Stock: 5, MinStock: 5},
		{ID: "p2", Stock: 6, MinStock: 5},
		{ID: "p3", Stock: 0, MinStock: 2},
	}
	low := LowStock(products)
	if len(low) != 2 {
		t.Fatalf("expected 2 low-stock products, got %d", len(low))
	}
	if low[0].ID != "p1" || low[1].ID != "p3" {
		t.Fatalf("unexpected low-stock set: %+v", low)
	}
}

func TestClientActivity_Boundaries(t *testing.T) {
	now := time.Date(2026, 3, 21, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		lastCompleted string
		want          string
	}{
		{"2026-03-02", ActivityActive}, // 19 days
		{"2026-03-01", ActivityYellow}, // exactly 20 days
		{"2026-02-19", ActivityOrange}, // 30 days
		{"2026-02-09", ActivityRed},    // 40 days
		{"2025-12-01", ActivityRed},
	}
	for _, tc := range cases {
		appts := []model.Appointment{appt("c1", tc.lastCompleted, "09:00", model.StatusCompleted, 50)}
		if got := ClientActivity("c1", appts, now); got != tc.want {
			t.Fatalf("last completed %s: expected %s, got %s", tc.lastCompleted, tc.want, got)
		}
	}
}

func TestClientActivity_OnlyCompletedCounts(t *testing.T) {
	now := time.Date(2026, 3, 21, 15, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		appt("c1", "2026-03-20", "09:00", model.StatusCancelled, 50),
		appt("c1", "2026-03-21", "09:00", model.StatusScheduled, 50),
	}
	if got := ClientActivity("c1", appts, now); got != ActivityNew {
		t.Fatalf("client without completed appointments must be new, got %s", got)
	}
	if got := ClientActivity("missing", nil, now); got != ActivityNew {
		t.Fatalf("unknown client must be new, got %s", got)
	}
}

func TestStatsForClient(t *testing.T) {
	now := time.Date(2026, 3, 21, 15, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		appt("c1", "2026-03-10", "09:00", model.StatusCompleted, 50, 25),
		appt("c1", "2026-03-12", "09:00", model.StatusCancelled, 80),
		appt("c2", "2026-03-12", "10:00", model.StatusCompleted, 80),
	}
	stats := StatsForClient("c1", appts, now)
	if stats.Appointments != 2 || stats.Completed != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.TotalSpent != 75 {
		t.Fatalf("expected total spent 75, got %v", stats.TotalSpent)
	}
	if stats.Activity != ActivityActive {
		t.Fatalf("expected active, got %s", stats.Activity)
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	appts := []model.Appointment{
		appt("c1", "2026-01-10", "09:00", model.StatusCompleted, 50),
		appt("c1", "2026-01-15", "09:00", model.StatusCancelled, 40),
		appt("c2", "2026-02-02", "09:00", model.StatusCompleted, 70),
		appt("c2", "2025-12-30", "09:00", model.StatusCompleted, 70),
	}
	months := MonthlyBreakdown(appts, "2026")
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	jan := months[0]
	if jan.Month != "2026-01" || jan.Appointments != 2 || jan.Completed != 1 || jan.Revenue != 50 {
		t.Fatalf("january rollup wrong: %+v", jan)
	}
	if jan.ServiceCount["Corte"] != 1 {
		t.Fatalf("service breakdown must count completed only: %+v", jan.ServiceCount)
	}
	if months[1].Month != "2026-02" || months[1].Revenue != 70 {
		t.Fatalf("february rollup wrong: %+v", months[1])
	}
}

func TestProductRollup(t *testing.T) {
	products := []model.Product{
		{ID: "p1", Name: "Pomada", Category: "styling", Price: 30, Cost: 12, Stock: 4, MinStock: 5, SoldCount: 10},
		{ID: "p2", Name: "Shampoo", Category: "hair", Price: 20, Cost: 8, Stock: 9, MinStock: 3, SoldCount: 25},
	}
	rep := ProductRollup(products, 1)
	if rep.TotalRevenue != 30*10+20*25 {
		t.Fatalf("total revenue wrong: %v", rep.TotalRevenue)
	}
	if rep.Profit != rep.TotalRevenue-rep.TotalCost {
		t.Fatalf("profit wrong: %v", rep.Profit)
	}
	if rep.TotalSold != 35 || rep.TotalStock != 13 || rep.LowStockCount != 1 {
		t.Fatalf("totals wrong: %+v", rep)
	}
	if len(rep.TopSellers) != 1 || rep.TopSellers[0].ID != "p2" {
		t.Fatalf("top sellers wrong: %+v", rep.TopSellers)
	}
	if rep.CategoryRevenue["styling"] != 300 || rep.CategoryRevenue["hair"] != 500 {
		t.Fatalf("category revenue wrong: %+v", rep.CategoryRevenue)
	}
}
