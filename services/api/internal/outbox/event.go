package outbox

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Appointment and product lifecycle event types published by the API.
const (
	EventAppointmentBooked        = "barberflow.appointment.booked.v1"
	EventAppointmentStatusChanged = "barberflow.appointment.status_changed.v1"
	EventAppointmentCancelled     = "barberflow.appointment.cancelled.v1"
	EventProductSold              = "barberflow.product.sold.v1"
)
