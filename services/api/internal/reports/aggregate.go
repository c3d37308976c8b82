// Package reports computes derived rollups over the raw entity collections:
// status counts, revenue, stock alerts, client recency buckets, and the
// product/monthly report figures. All functions are pure; callers decide
// whether results come from cache or a fresh computation.
package reports

import (
	"sort"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/model"
)

const dateLayout = "2006-01-02"

// Client recency buckets, by days since the last completed appointment.
const (
	ActivityNew    = "new"
	ActivityActive = "active"
	ActivityYellow = "yellow" // >= 20 days
	ActivityOrange = "orange" // >= 30 days
	ActivityRed    = "red"    // >= 40 days
)

type StatusCounts struct {
	Scheduled int `json:"scheduled"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func (c StatusCounts) Total() int {
	return c.Scheduled + c.Confirmed + c.Completed + c.Cancelled
}

// CountByStatus tallies appointments whose date falls in [from, to]
// inclusive. from and to are YYYY-MM-DD; fixed-width date strings compare
// correctly lexically, so no parsing is needed.
func CountByStatus(appointments []model.Appointment, from, to string) StatusCounts {
	var c StatusCounts
	for _, a := range appointments {
		if a.Date < from || a.Date > to {
			continue
		}
		switch a.Status {
		case model.StatusScheduled:
			c.Scheduled++
		case model.StatusConfirmed:
			c.Confirmed++
		case model.StatusCompleted:
			c.Completed++
		case model.StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}

// Revenue sums snapshot prices over completed appointments only. Scheduled,
// confirmed, and cancelled appointments never contribute.
func Revenue(appointments []model.Appointment) float64 {
	var sum float64
	for _, a := range appointments {
		if a.Status != model.StatusCompleted {
			continue
		}
		sum += a.Total()
	}
	return sum
}

// RevenueBetween restricts Revenue to dates in [from, to] inclusive.
func RevenueBetween(appointments []model.Appointment, from, to string) float64 {
	var sum float64
	for _, a := range appointments {
		if a.Status != model.StatusCompleted || a.Date < from || a.Date > to {
			continue
		}
		sum += a.Total()
	}
	return sum
}

// SortDay orders a day's appointments ascending by start time, in place.
// HH:MM is fixed width, so lexical comparison is chronological.
func SortDay(appointments []model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartTime < appointments[j].StartTime
	})
}

// LowStock returns products at or below their restock threshold.
func LowStock(products []model.Product) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.Stock <= p.MinStock {
			out = append(out, p)
		}
	}
	return out
}

// ClientActivity buckets a client by days elapsed since their most recent
// completed appointment. A client with no completed appointments is always
// "new", whatever their scheduled or cancelled history looks like.
func ClientActivity(clientID string, appointments []model.Appointment, now time.Time) string {
	var last string
	for _, a := range appointments {
		if a.ClientID != clientID || a.Status != model.StatusCompleted {
			continue
		}
		if a.Date > last {
			last = a.Date
		}
	}
	if last == "" {
		return ActivityNew
	}

	lastDay, err := time.ParseInLocation(dateLayout, last, time.UTC)
	if err != nil {
		return ActivityNew
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(lastDay).Hours() / 24)

	switch {
	case days >= 40:
		return ActivityRed
	case days >= 30:
		return ActivityOrange
	case days >= 20:
		return ActivityYellow
	default:
		return ActivityActive
	}
}

type ClientStats struct {
	Appointments int     `json:"appointments"`
	Completed    int     `json:"completed"`
	TotalSpent   float64 `json:"total_spent"`
	Activity     string  `json:"activity"`
}

// StatsForClient summarizes one client's history. TotalSpent counts completed
// appointments only.
func StatsForClient(clientID string, appointments []model.Appointment, now time.Time) ClientStats {
	stats := ClientStats{Activity: ClientActivity(clientID, appointments, now)}
	for _, a := range appointments {
		if a.ClientID != clientID {
			continue
		}
		stats.Appointments++
		if a.Status == model.StatusCompleted {
			stats.Completed++
			stats.TotalSpent += a.Total()
		}
	}
	return stats
}

type MonthlyStats struct {
	Month        string         `json:"month"` // YYYY-MM
	Appointments int            `json:"appointments"`
	Completed    int            `json:"completed"`
	Revenue      float64        `json:"revenue"`
	ServiceCount map[string]int `json:"service_breakdown"`
}

// MonthlyBreakdown rolls appointments up per calendar month of a year.
// Months with no appointments are omitted.
func MonthlyBreakdown(appointments []model.Appointment, year string) []MonthlyStats {
	byMonth := map[string]*MonthlyStats{}
	for _, a := range appointments {
		if len(a.Date) < 7 || a.Date[:4] != year {
			continue
		}
		month := a.Date[:7]
		m := byMonth[month]
		if m == nil {
			m = &MonthlyStats{Month: month, ServiceCount: map[string]int{}}
			byMonth[month] = m
		}
		m.Appointments++
		if a.Status == model.StatusCompleted {
			m.Completed++
			m.Revenue += a.Total()
			for _, s := range a.Services {
				m.ServiceCount[s.Name]++
			}
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthlyStats, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out
}

type ProductReport struct {
	TotalRevenue    float64            `json:"total_revenue"`
	TotalCost       float64            `json:"total_cost"`
	Profit          float64            `json:"profit"`
	TotalSold       int                `json:"total_sold"`
	TotalStock      int                `json:"total_stock"`
	LowStockCount   int                `json:"low_stock_count"`
	TopSellers      []model.Product    `json:"top_sellers"`
	CategoryRevenue map[string]float64 `json:"category_revenue"`
}

// ProductRollup mirrors the inventory report: revenue and cost are projected
// from sold counts, top sellers are ordered by units sold.
func ProductRollup(products []model.Product, topN int) ProductReport {
	rep := ProductReport{CategoryRevenue: map[string]float64{}}
	for _, p := range products {
		rep.TotalRevenue += p.Price * float64(p.SoldCount)
		rep.TotalCost += p.Cost * float64(p.SoldCount)
		rep.TotalSold += p.SoldCount
		rep.TotalStock += p.Stock
		if p.Stock <= p.MinStock {
			rep.LowStockCount++
		}
		rep.CategoryRevenue[p.Category] += p.Price * float64(p.SoldCount)
	}
	rep.Profit = rep.TotalRevenue - rep.TotalCost

	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SoldCount > sorted[j].SoldCount
	})
	if topN > 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}
	rep.TopSellers = sorted
	return rep
}
