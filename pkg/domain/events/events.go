package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by everything emitted on the event bus.
type Event interface {
	Type() EventType
}

// Base carries the fields shared by every event.
type Base struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Owner returns the user the event belongs to.
func (b Base) Owner() string { return b.UserID }

func newBase(userID string) Base {
	return Base{ID: uuid.New(), UserID: userID, OccurredAt: time.Now().UTC()}
}

type UserRegistered struct {
	Base
	Email string `json:"email"`
}

func (*UserRegistered) Type() EventType { return EventTypeUserRegistered }

type UserLoggedIn struct {
	Base
	Email string `json:"email"`
}

func (*UserLoggedIn) Type() EventType { return EventTypeUserLoggedIn }

type UserLoggedOut struct {
	Base
}

func (*UserLoggedOut) Type() EventType { return EventTypeUserLoggedOut }

// TransactionChanged is shared by the transaction lifecycle events.
type TransactionChanged struct {
	Base
	TransactionID string `json:"transactionId"`
	Kind          string `json:"transactionType,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
}

type TransactionAdded struct{ TransactionChanged }

func (*TransactionAdded) Type() EventType { return EventTypeTransactionAdded }

type TransactionUpdated struct{ TransactionChanged }

func (*TransactionUpdated) Type() EventType { return EventTypeTransactionUpdated }

type TransactionDeleted struct{ TransactionChanged }

func (*TransactionDeleted) Type() EventType { return EventTypeTransactionDeleted }

func NewUserRegistered(userID, email string) *UserRegistered {
	return &UserRegistered{Base: newBase(userID), Email: email}
}

func NewUserLoggedIn(userID, email string) *UserLoggedIn {
	return &UserLoggedIn{Base: newBase(userID), Email: email}
}

func NewUserLoggedOut(userID string) *UserLoggedOut {
	return &UserLoggedOut{Base: newBase(userID)}
}

func NewTransactionAdded(userID, transactionID, kind string, amount int64) *TransactionAdded {
	return &TransactionAdded{TransactionChanged{
		Base: newBase(userID), TransactionID: transactionID, Kind: kind, Amount: amount,
	}}
}

func NewTransactionUpdated(userID, transactionID, kind string, amount int64) *TransactionUpdated {
	return &TransactionUpdated{TransactionChanged{
		Base: newBase(userID), TransactionID: transactionID, Kind: kind, Amount: amount,
	}}
}

func NewTransactionDeleted(userID, transactionID string) *TransactionDeleted {
	return &TransactionDeleted{TransactionChanged{Base: newBase(userID), TransactionID: transactionID}}
}

// EventTypes builds empty events for decoding transported payloads.
var EventTypes = map[EventType]func() Event{
	EventTypeUserRegistered:     func() Event { return &UserRegistered{} },
	EventTypeUserLoggedIn:       func() Event { return &UserLoggedIn{} },
	EventTypeUserLoggedOut:      func() Event { return &UserLoggedOut{} },
	EventTypeTransactionAdded:   func() Event { return &TransactionAdded{} },
	EventTypeTransactionUpdated: func() Event { return &TransactionUpdated{} },
	EventTypeTransactionDeleted: func() Event { return &TransactionDeleted{} },
}
