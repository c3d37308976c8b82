package model

import "time"

// Appointment status values as persisted.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// ServiceSnapshot is a service as captured onto an appointment at booking
// time. Price is price_at_time, not the live catalog price.
type ServiceSnapshot struct {
	ServiceID       string
	Name            string
	DurationMinutes int
	Price           float64
}

// Appointment dates are business-local calendar days (YYYY-MM-DD) and
// start/end are clock times (HH:MM); neither carries a timezone.
type Appointment struct {
	ID           string
	ClientID     string
	ClientName   string
	ClientPhone  string
	Date         string
	StartTime    string
	EndTime      string
	Services     []ServiceSnapshot
	Status       string
	Notes        string
	CancelledAt  *time.Time
	CancelReason string
	CompletedAt  *time.Time
	CreatedAt    time.Time
}

// Total returns the sum of snapshot prices for the appointment.
func (a Appointment) Total() float64 {
	var sum float64
	for _, s := range a.Services {
		sum += s.Price
	}
	return sum
}

type Product struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Cost      float64
	Stock     int
	MinStock  int
	SoldCount int
}

// Settings is the per-shop singleton row.
type Settings struct {
	ShopName             string
	OpenTime             string // HH:MM
	CloseTime            string // HH:MM
	AppointmentDuration  int    // default duration in minutes
	NotifyOnBooking      bool
	NotifyOnCancellation bool
	WebhookURL           string
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}
