package transaction_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

const lunch = `{"title":"Lunch","category":"Food","transactionType":"Expense","amount":"12.50","date":"2025-01-01"}`

type TransactionTestSuite struct {
	testutils.APITestSuite
	token  string
	userID string
}

func (s *TransactionTestSuite) SetupTest() {
	s.APITestSuite.SetupTest()
	s.token, s.userID = s.RegisterUser()
}

func (s *TransactionTestSuite) add(body string) string {
	resp := s.MakeRequest(http.MethodPost, "/transactions", body, s.token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	data := s.Decode(resp).Data.(map[string]any)
	id, _ := data["transactionId"].(string)
	s.Require().NotEmpty(id)
	return id
}

func (s *TransactionTestSuite) TestAdd_RequiresToken() {
	resp := s.MakeRequest(http.MethodPost, "/transactions", lunch, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *TransactionTestSuite) TestAdd_MissingFields() {
	resp := s.MakeRequest(http.MethodPost, "/transactions", `{"title":"Lunch","amount":"1"}`, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("Please fill in all required fields", s.Problem(resp).Detail)
}

func (s *TransactionTestSuite) TestAdd_BadAmount() {
	resp := s.MakeRequest(http.MethodPost, "/transactions",
		`{"title":"Lunch","category":"Food","transactionType":"expense","amount":"twelve"}`, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(s.Problem(resp).Detail, "Invalid amount format")
}

func (s *TransactionTestSuite) TestAdd_BadDate() {
	resp := s.MakeRequest(http.MethodPost, "/transactions",
		`{"title":"Lunch","category":"Food","transactionType":"expense","amount":"1","date":"01/01/2025"}`, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("Validation failed", s.Problem(resp).Title)
}

func (s *TransactionTestSuite) TestAddThenGet() {
	id := s.add(lunch)

	resp := s.MakeRequest(http.MethodGet, "/transactions/"+id, "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	rec := s.Decode(resp).Data.(map[string]any)
	s.Equal(id, rec["transactionId"])
	s.Equal(s.userID, rec["userId"])
	s.Equal("expense", rec["transactionType"])
	s.EqualValues(1250, rec["amount"])
	s.Equal("2025-01-01", rec["date"])
	s.Equal("-12.50 KES", rec["display"])
}

func (s *TransactionTestSuite) TestGet_NotFound() {
	resp := s.MakeRequest(http.MethodGet, "/transactions/missing", "", s.token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("Transaction not found", s.Problem(resp).Detail)
}

func (s *TransactionTestSuite) TestUpdate_Overwrites() {
	id := s.add(lunch)

	resp := s.MakeRequest(http.MethodPut, "/transactions/"+id,
		`{"title":"Dinner","category":"Food","transactionType":"expense","amount":"20"}`, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("Transaction updated successfully", s.Decode(resp).Message)

	resp = s.MakeRequest(http.MethodGet, "/transactions/"+id, "", s.token)
	rec := s.Decode(resp).Data.(map[string]any)
	s.Equal("Dinner", rec["title"])
	s.EqualValues(2000, rec["amount"])
}

func (s *TransactionTestSuite) TestUpdate_Missing() {
	resp := s.MakeRequest(http.MethodPut, "/transactions/missing", lunch, s.token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionTestSuite) TestDelete() {
	id := s.add(lunch)

	resp := s.MakeRequest(http.MethodDelete, "/transactions/"+id, "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("Transaction deleted successfully", s.Decode(resp).Message)

	resp = s.MakeRequest(http.MethodGet, "/transactions/"+id, "", s.token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionTestSuite) TestListAndSummary() {
	s.add(lunch)
	s.add(`{"title":"Salary","category":"Work","transactionType":"income","amount":"100"}`)

	resp := s.MakeRequest(http.MethodGet, "/transactions", "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	records := s.Decode(resp).Data.([]any)
	s.Len(records, 2)

	resp = s.MakeRequest(http.MethodGet, "/transactions/summary", "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	sum := s.Decode(resp).Data.(map[string]any)
	s.EqualValues(10000, sum["income"])
	s.EqualValues(1250, sum["expense"])
	s.EqualValues(8750, sum["balance"])
	s.Equal("KES", sum["currency"])
}

func (s *TransactionTestSuite) TestUsersAreIsolated() {
	id := s.add(lunch)
	other, _ := s.RegisterUser()

	resp := s.MakeRequest(http.MethodGet, "/transactions/"+id, "", other)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/transactions", "", other)
	s.Empty(s.Decode(resp).Data)
}

func (s *TransactionTestSuite) TestStatementPDF() {
	s.add(lunch)

	resp := s.MakeRequest(http.MethodGet, "/transactions/statement.pdf", "", s.token)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(body, []byte("%PDF-")))
}

func (s *TransactionTestSuite) TestStreamDeliversFullList() {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	go func() { _ = s.Fiber.Listener(ln) }()
	s.T().Cleanup(func() { _ = s.Fiber.Shutdown() })

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/transactions/stream", ln.Addr()), nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.token)
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	events := bufio.NewReader(resp.Body)
	s.Empty(nextBatch(s, events))

	s.add(lunch)
	batch := nextBatch(s, events)
	s.Require().Len(batch, 1)
	s.Equal("Lunch", batch[0]["title"])
}

// nextBatch reads SSE lines until the next "transactions" event.
func nextBatch(s *TransactionTestSuite, r *bufio.Reader) []map[string]any {
	for {
		line, err := r.ReadString('\n')
		s.Require().NoError(err)
		data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: ")
		if !ok {
			continue
		}
		var out []map[string]any
		s.Require().NoError(json.Unmarshal([]byte(data), &out))
		return out
	}
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}
