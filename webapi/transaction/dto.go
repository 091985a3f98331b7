package transaction

import (
	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/money"
)

// Request is the body of POST /transactions and PUT /transactions/:id.
// Required fields are checked by the service so the caller sees one message.
type Request struct {
	Title       string `json:"title" validate:"max=200"`
	Category    string `json:"category" validate:"max=100"`
	Kind        string `json:"transactionType" validate:"max=20"`
	Amount      string `json:"amount" validate:"max=32"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=1000"`
}

func (r *Request) input() tx.Input {
	return tx.Input{
		Title:       r.Title,
		Category:    r.Category,
		Kind:        r.Kind,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
	}
}

// Record is a stored transaction with its amount rendered for display.
type Record struct {
	*tx.Transaction
	Display string `json:"display"`
}

// SummaryResponse is the body of GET /transactions/summary.
type SummaryResponse struct {
	tx.Summary
	Currency string `json:"currency"`
	IncomeDisplay  string `json:"incomeDisplay"`
	ExpenseDisplay string `json:"expenseDisplay"`
	BalanceDisplay string `json:"balanceDisplay"`
}

func toRecord(t *tx.Transaction, c money.Currency) Record {
	return Record{Transaction: t, Display: money.Money{Amount: t.Signed(), Currency: c}.String()}
}

func toRecords(ts []*tx.Transaction, c money.Currency) []Record {
	out := make([]Record, 0, len(ts))
	for _, t := range ts {
		out = append(out, toRecord(t, c))
	}
	return out
}
