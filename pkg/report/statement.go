// Package report renders a user's transactions as a PDF statement.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/domain/user"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/phpdave11/gofpdf"
)

// Statement is the input of a PDF statement.
type Statement struct {
	Profile     *user.Profile
	Records     []*tx.Transaction
	Currency    money.Currency
	GeneratedAt time.Time
}

// Write renders the statement to w.
func Write(w io.Writer, st Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("PesaFlow Statement", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PesaFlow Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	if st.Profile != nil {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Account: %s <%s>", st.Profile.Name(), st.Profile.Email)))
		pdf.Ln(6)
	}
	generated := st.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.Cell(0, 7, "Generated: "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	sum := tx.Summarize(st.Records)
	pdf.SetFont("Helvetica", "B", 12)
	for _, line := range []struct {
		label  string
		amount money.Amount
	}{
		{"Income", sum.Income},
		{"Expense", sum.Expense},
		{"Balance", sum.Balance},
	} {
		pdf.Cell(40, 7, line.label)
		pdf.Cell(50, 7, format(line.amount, st.Currency))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	headers := []struct {
		title string
		width float64
	}{
		{"Date", 25}, {"Title", 50}, {"Category", 35}, {"Type", 25}, {"Amount", 45},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.title, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	if len(st.Records) == 0 {
		pdf.Cell(0, 7, "No transactions recorded.")
		pdf.Ln(7)
	}
	for _, r := range st.Records {
		pdf.CellFormat(25, 7, tr(r.Date), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(truncate(r.Title, 28)), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, tr(truncate(r.Category, 20)), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, r.Kind.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, format(r.Signed(), st.Currency), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	return pdf.Output(w)
}

// Bytes renders the statement into memory.
func Bytes(st Statement) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func format(a money.Amount, c money.Currency) string {
	if a < 0 {
		return "-" + money.Money{Amount: -a, Currency: c}.String()
	}
	return money.Money{Amount: a, Currency: c}.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
