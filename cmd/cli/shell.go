package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/amirasaad/pesaflow/pkg/app"
	tx "github.com/amirasaad/pesaflow/pkg/domain/transaction"
	"github.com/amirasaad/pesaflow/pkg/money"
	"github.com/amirasaad/pesaflow/pkg/report"
	"github.com/amirasaad/pesaflow/pkg/service/auth"
	"github.com/amirasaad/pesaflow/pkg/session"
	"github.com/fatih/color"
)

var errQuit = errors.New("quit")

const help = `commands:
  register             create an account and sign in
  login                sign in
  logout               sign out
  whoami               show the signed-in profile
  add                  record a transaction
  get <id>             show one transaction
  update <id>          replace a transaction
  delete <id>          delete a transaction
  list                 list transactions
  watch                follow the list live until Enter
  summary              income, expense and balance
  statement <file>     write a PDF statement
  quit`

// shell is the interactive front end. Every mutating command goes through
// app.Flows so notices and the loading state behave as in any other client.
type shell struct {
	app      *app.App
	flows    *app.Flows
	sess     *session.Session
	in       *bufio.Reader
	out      io.Writer
	password func() (string, error)
	confirm  bool
	route    string
}

func newShell(a *app.App, flows *app.Flows, in io.Reader, out io.Writer, password func() (string, error)) *shell {
	sh := &shell{
		app:     a,
		flows:   flows,
		sess:    session.New(),
		in:      bufio.NewReader(in),
		out:     out,
		confirm: true,
		route:   "login",
	}
	if password == nil {
		password = func() (string, error) { return sh.readLine() }
	}
	sh.password = password
	return sh
}

// navigate records the screen a real UI would switch to.
func (sh *shell) navigate(route string) app.Navigate {
	return func() { sh.route = route }
}

func (sh *shell) readLine() (string, error) {
	line, err := sh.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (sh *shell) prompt(label string) (string, error) {
	_, _ = fmt.Fprintf(sh.out, "%s: ", label)
	return sh.readLine()
}

func (sh *shell) promptPassword() (string, error) {
	_, _ = fmt.Fprint(sh.out, "Password: ")
	pw, err := sh.password()
	_, _ = fmt.Fprintln(sh.out)
	return pw, err
}

// Run reads commands until quit or EOF.
func (sh *shell) Run(ctx context.Context) error {
	defer func() { _ = sh.sess.Close() }()
	bold := color.New(color.Bold)
	for {
		_, _ = bold.Fprintf(sh.out, "pesaflow(%s)> ", sh.route)
		line, err := sh.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := sh.exec(ctx, fields[0], fields[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			_, _ = color.New(color.FgRed).Fprintln(sh.out, err)
		}
	}
}

func (sh *shell) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		_, _ = fmt.Fprintln(sh.out, help)
		return nil
	case "quit", "exit":
		return errQuit
	case "register":
		return sh.register(ctx)
	case "login":
		return sh.login(ctx)
	case "logout":
		_, err := sh.flows.Logout(ctx, sh.sess, sh.navigate("login")).Await(ctx)
		return err
	case "whoami":
		return sh.whoami(ctx)
	case "add":
		return sh.add(ctx)
	case "get", "update", "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <id>", cmd)
		}
		switch cmd {
		case "get":
			return sh.get(ctx, args[0])
		case "update":
			return sh.update(ctx, args[0])
		default:
			return sh.delete(ctx, args[0])
		}
	case "list":
		return sh.list(ctx)
	case "watch":
		return sh.watch(ctx)
	case "summary":
		return sh.summary(ctx)
	case "statement":
		if len(args) != 1 {
			return errors.New("usage: statement <file>")
		}
		return sh.statement(ctx, args[0])
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (sh *shell) register(ctx context.Context) error {
	var in auth.RegisterInput
	var err error
	if in.FirstName, err = sh.prompt("First name"); err != nil {
		return err
	}
	if in.LastName, err = sh.prompt("Last name"); err != nil {
		return err
	}
	if in.Email, err = sh.prompt("Email"); err != nil {
		return err
	}
	if in.Password, err = sh.promptPassword(); err != nil {
		return err
	}
	_, err = sh.flows.Register(ctx, sh.sess, in, sh.navigate("home")).Await(ctx)
	return quiet(err)
}

func (sh *shell) login(ctx context.Context) error {
	var in auth.LoginInput
	var err error
	if in.Email, err = sh.prompt("Email"); err != nil {
		return err
	}
	if in.Password, err = sh.promptPassword(); err != nil {
		return err
	}
	_, err = sh.flows.Login(ctx, sh.sess, in, sh.navigate("home")).Await(ctx)
	return quiet(err)
}

func (sh *shell) whoami(ctx context.Context) error {
	p := sh.app.AuthService.CurrentUserProfile(ctx, sh.sess)
	if p == nil {
		_, _ = fmt.Fprintln(sh.out, "not signed in")
		return nil
	}
	_, _ = fmt.Fprintf(sh.out, "%s <%s> (%s)\n", p.Name(), p.Email, p.UserID)
	return nil
}

func (sh *shell) readInput(defaults *tx.Transaction) (tx.Input, error) {
	var in tx.Input
	fields := []struct {
		label string
		dst   *string
		def   string
	}{
		{"Title", &in.Title, ""},
		{"Category", &in.Category, ""},
		{"Type (income/expense)", &in.Kind, ""},
		{"Amount", &in.Amount, ""},
		{"Date (YYYY-MM-DD, blank for today)", &in.Date, ""},
		{"Description", &in.Description, ""},
	}
	if defaults != nil {
		cur := sh.app.TransactionService.Currency()
		fields[0].def = defaults.Title
		fields[1].def = defaults.Category
		fields[2].def = defaults.Kind.String()
		fields[3].def = money.Format(defaults.Amount, cur)
		fields[4].def = defaults.Date
		fields[5].def = defaults.Description
	}
	for _, f := range fields {
		label := f.label
		if f.def != "" {
			label = fmt.Sprintf("%s [%s]", f.label, f.def)
		}
		v, err := sh.prompt(label)
		if err != nil {
			return in, err
		}
		if v == "" {
			v = f.def
		}
		*f.dst = v
	}
	return in, nil
}

func (sh *shell) add(ctx context.Context) error {
	in, err := sh.readInput(nil)
	if err != nil {
		return err
	}
	id, err := sh.flows.AddTransaction(ctx, sh.sess, "", in, sh.navigate("list")).Await(ctx)
	if err != nil {
		return quiet(err)
	}
	_, _ = fmt.Fprintf(sh.out, "id: %s\n", id)
	return nil
}

func (sh *shell) get(ctx context.Context, id string) error {
	rec, err := sh.flows.GetTransaction(ctx, sh.sess, "", id).Await(ctx)
	if err != nil {
		return quiet(err)
	}
	sh.printRecords([]*tx.Transaction{rec})
	return nil
}

func (sh *shell) update(ctx context.Context, id string) error {
	current, err := sh.flows.GetTransaction(ctx, sh.sess, "", id).Await(ctx)
	if err != nil {
		return quiet(err)
	}
	in, err := sh.readInput(current)
	if err != nil {
		return err
	}
	_, err = sh.flows.UpdateTransaction(ctx, sh.sess, "", id, in, sh.navigate("list")).Await(ctx)
	return quiet(err)
}

func (sh *shell) delete(ctx context.Context, id string) error {
	if sh.confirm {
		answer, err := sh.prompt(fmt.Sprintf("Delete %s? [y/N]", id))
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			_, _ = fmt.Fprintln(sh.out, "cancelled")
			return nil
		}
	}
	_, err := sh.flows.DeleteTransaction(ctx, sh.sess, "", id, sh.navigate("list")).Await(ctx)
	return quiet(err)
}

func (sh *shell) list(ctx context.Context) error {
	records, err := sh.app.TransactionService.Records(ctx, sh.sess, "")
	if err != nil {
		return err
	}
	sh.printRecords(records)
	return nil
}

func (sh *shell) watch(ctx context.Context) error {
	sub, err := sh.app.TransactionService.List(ctx, sh.sess, "")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(sh.out, "watching, press Enter to stop")
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range sub.Updates() {
			_, _ = color.New(color.FgCyan).Fprintf(sh.out, "-- %d transaction(s) --\n", len(u.Records))
			sh.printRecords(u.Records)
		}
	}()
	_, readErr := sh.readLine()
	closeErr := sub.Close()
	<-done
	if err := sub.Err(); err != nil {
		return err
	}
	if readErr != nil && !errors.Is(readErr, io.EOF) {
		return readErr
	}
	return closeErr
}

func (sh *shell) summary(ctx context.Context) error {
	sum, err := sh.app.TransactionService.Summary(ctx, sh.sess, "")
	if err != nil {
		return err
	}
	cur := sh.app.TransactionService.Currency()
	_, _ = fmt.Fprintf(sh.out, "Income:  %s\nExpense: %s\nBalance: %s\n",
		money.Money{Amount: sum.Income, Currency: cur},
		money.Money{Amount: sum.Expense, Currency: cur},
		money.Money{Amount: sum.Balance, Currency: cur},
	)
	return nil
}

func (sh *shell) statement(ctx context.Context, path string) error {
	records, err := sh.app.TransactionService.Records(ctx, sh.sess, "")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = report.Write(f, report.Statement{
		Profile:     sh.app.AuthService.CurrentUserProfile(ctx, sh.sess),
		Records:     records,
		Currency:    sh.app.TransactionService.Currency(),
		GeneratedAt: time.Now(),
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(sh.out, "statement written to %s\n", path)
	return nil
}

func (sh *shell) printRecords(records []*tx.Transaction) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(sh.out, "no transactions")
		return
	}
	cur := sh.app.TransactionService.Currency()
	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDATE\tTITLE\tCATEGORY\tAMOUNT")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Title, r.Category, money.Money{Amount: r.Signed(), Currency: cur})
	}
	_ = w.Flush()
}

// quiet drops errors the notifier has already shown.
func quiet(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
