// Package transaction exposes the transaction store over HTTP.
package transaction

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/identity"
	"github.com/amirasaad/pesaflow/pkg/middleware"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/amirasaad/pesaflow/pkg/report"
	authsvc "github.com/amirasaad/pesaflow/pkg/service/auth"
	txsvc "github.com/amirasaad/pesaflow/pkg/service/transaction"
	"github.com/amirasaad/pesaflow/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// keepAlive is the SSE comment interval that lets dead clients surface.
const keepAlive = 15 * time.Second

func Routes(
	fiberApp *fiber.App,
	txSvc *txsvc.Service,
	authSvc *authsvc.Service,
	provider identity.Provider,
	cfg *config.Jwt,
	logger *slog.Logger,
) {
	g := fiberApp.Group("/transactions", middleware.Protected(cfg, provider))
	g.Post("/", Add(txSvc))
	g.Get("/", List(txSvc))
	g.Get("/stream", Stream(txSvc, logger))
	g.Get("/summary", Summary(txSvc))
	g.Get("/statement.pdf", Statement(txSvc, authSvc))
	g.Get("/:id", Get(txSvc))
	g.Put("/:id", Update(txSvc))
	g.Delete("/:id", Delete(txSvc))
}

// Add stores a new transaction under the caller.
// @Summary Add a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body Request true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security Bearer
func Add(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[Request](c)
		if input == nil {
			return err
		}
		sess, _ := middleware.Session(c)
		id, err := txSvc.Add(c.UserContext(), sess, "", input.input())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, app.MsgTransactionAdded,
			fiber.Map{"transactionId": id})
	}
}

// List returns the caller's transactions once.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security Bearer
func List(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		records, err := txSvc.Records(c.UserContext(), sess, "")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched",
			toRecords(records, txSvc.Currency()))
	}
}

// Stream pushes the full list as a server-sent event on every change until
// the client disconnects.
// @Summary Live transaction list
// @Tags transactions
// @Produce text/event-stream
// @Router /transactions/stream [get]
// @Security Bearer
func Stream(txSvc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		sub, err := txSvc.List(context.Background(), sess, "")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to subscribe", err)
		}
		currency := txSvc.Currency()
		log := logger.With("context", "Stream", "userID", sess.UserID())

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer func() { _ = sess.Close() }()
			ticker := time.NewTicker(keepAlive)
			defer ticker.Stop()
			for {
				select {
				case u, ok := <-sub.Updates():
					if !ok {
						if err := sub.Err(); err != nil {
							_, _ = fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
							_ = w.Flush()
						}
						return
					}
					payload, err := json.Marshal(toRecords(u.Records, currency))
					if err != nil {
						log.Error("encoding update failed", "error", err)
						return
					}
					if _, err := fmt.Fprintf(w, "event: transactions\ndata: %s\n\n", payload); err != nil {
						return
					}
				case <-ticker.C:
					if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
						return
					}
				}
				if err := w.Flush(); err != nil {
					log.Debug("client went away", "error", err)
					return
				}
			}
		})
		return nil
	}
}

// Summary totals the caller's income and expense.
// @Summary Transaction totals
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Router /transactions/summary [get]
// @Security Bearer
func Summary(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		sum, err := txSvc.Summary(c.UserContext(), sess, "")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to summarize", err)
		}
		cur := txSvc.Currency()
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary", SummaryResponse{
			Summary:        sum,
			Currency:       cur.String(),
			IncomeDisplay:  money.Format(sum.Income, cur),
			ExpenseDisplay: money.Format(sum.Expense, cur),
			BalanceDisplay: money.Format(sum.Balance, cur),
		})
	}
}

// Statement renders the caller's transactions as a PDF.
// @Summary PDF statement
// @Tags transactions
// @Produce application/pdf
// @Router /transactions/statement.pdf [get]
// @Security Bearer
func Statement(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		records, err := txSvc.Records(c.UserContext(), sess, "")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build statement", err)
		}
		pdf, err := report.Bytes(report.Statement{
			Profile:     authSvc.CurrentUserProfile(c.UserContext(), sess),
			Records:     records,
			Currency:    txSvc.Currency(),
			GeneratedAt: time.Now(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build statement", err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
		return c.Send(pdf)
	}
}

// Get returns one transaction.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security Bearer
func Get(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		rec, err := txSvc.Get(c.UserContext(), sess, "", c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found",
			toRecord(rec, txSvc.Currency()))
	}
}

// Update replaces every field of a transaction.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body Request true "Transaction"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [put]
// @Security Bearer
func Update(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[Request](c)
		if input == nil {
			return err
		}
		sess, _ := middleware.Session(c)
		if err := txSvc.Update(c.UserContext(), sess, "", c.Params("id"), input.input()); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, app.MsgTransactionUpdated, nil)
	}
}

// Delete removes a transaction.
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Router /transactions/{id} [delete]
// @Security Bearer
func Delete(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := middleware.Session(c)
		if err := txSvc.Delete(c.UserContext(), sess, "", c.Params("id")); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, app.MsgTransactionDeleted, nil)
	}
}
