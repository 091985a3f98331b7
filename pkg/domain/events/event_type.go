package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// User events
	EventTypeUserRegistered EventType = "User.Registered"
	EventTypeUserLoggedIn   EventType = "User.LoggedIn"
	EventTypeUserLoggedOut  EventType = "User.LoggedOut"

	// Transaction events
	EventTypeTransactionAdded   EventType = "Transaction.Added"
	EventTypeTransactionUpdated EventType = "Transaction.Updated"
	EventTypeTransactionDeleted EventType = "Transaction.Deleted"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
