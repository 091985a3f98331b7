// Package transaction defines the transaction record owned by a user and
// the rules applied before a record may be written.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/pesaflow/pkg/money"
)

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind accepts any casing ("Income", "EXPENSE") and returns the
// canonical lower-case kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindIncome, KindExpense:
		return k, nil
	default:
		return "", fmt.Errorf("transaction kind must be %q or %q, got %q", KindIncome, KindExpense, s)
	}
}

func (k Kind) String() string { return string(k) }

// Transaction is the record stored at transactions/{userId}/{transactionId}.
type Transaction struct {
	ID          string       `json:"transactionId"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Kind        Kind         `json:"transactionType"`
	Amount      money.Amount `json:"amount"`
	Date        string       `json:"date"`
	CreatedAt   int64        `json:"createdAt,omitempty"`
}

// Input is the caller-supplied field set for add and full-replace update.
// Amount is the raw user text and is normalized before storage.
type Input struct {
	Title       string `json:"title" validate:"notblank"`
	Category    string `json:"category" validate:"notblank"`
	Kind        string `json:"kind" validate:"notblank"`
	Amount      string `json:"amount" validate:"notblank"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Build produces a record from validated parts. createdAt is epoch millis.
func Build(id, userID string, in Input, kind Kind, amount money.Amount, createdAt time.Time) *Transaction {
	return &Transaction{
		ID:          id,
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Kind:        kind,
		Amount:      amount,
		Date:        strings.TrimSpace(in.Date),
		CreatedAt:   createdAt.UnixMilli(),
	}
}

// Signed returns the amount with expenses negated.
func (t *Transaction) Signed() money.Amount {
	if t.Kind == KindExpense {
		return -t.Amount
	}
	return t.Amount
}

// Summary aggregates a user's transactions for the dashboard.
type Summary struct {
	Income  money.Amount `json:"income"`
	Expense money.Amount `json:"expense"`
	Balance money.Amount `json:"balance"`
	Count   int          `json:"count"`
}

// Summarize totals income and expense; the balance is income minus expense.
// Each amount is at most money.MaxAmount, so totals stay inside int64.
func Summarize(records []*Transaction) Summary {
	var s Summary
	for _, r := range records {
		switch r.Kind {
		case KindIncome:
			s.Income += r.Amount
		case KindExpense:
			s.Expense += r.Amount
		}
		s.Count++
	}
	s.Balance = s.Income - s.Expense
	return s
}
