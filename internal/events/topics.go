package events

// Topic constants for domain events emitted by the rental desk.
const (
	TopicVehicleAdded         = "fleet.vehicle_added"
	TopicReservationCreated   = "reservation.created"
	TopicReservationConfirmed = "reservation.confirmed"
	TopicReservationCancelled = "reservation.cancelled"
)

// DefaultTopics returns the canonical list of topics notifiers may observe.
func DefaultTopics() []string {
	return []string{
		TopicVehicleAdded,
		TopicReservationCreated,
		TopicReservationConfirmed,
		TopicReservationCancelled,
	}
}
