package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/pesaflow/infra/eventbus"
	"github.com/amirasaad/pesaflow/infra/identity/local"
	"github.com/amirasaad/pesaflow/infra/repository/credential"
	"github.com/amirasaad/pesaflow/infra/store/memory"
	"github.com/amirasaad/pesaflow/pkg/app"
	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/amirasaad/pesaflow/pkg/notify"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const registerAlice = "register\nAlice\nDoe\nalice@example.com\nsecret123\n"

func runScript(t *testing.T, script string) (*shell, string, []notify.Notice) {
	t.Helper()
	color.NoColor = true
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memory.New(logger)
	t.Cleanup(func() { _ = st.Close() })
	a := app.New(&app.Deps{
		Store: st,
		Identity: local.New(credential.NewMemory(),
			&config.Jwt{Secret: "cli-test-secret-0123456789", Expiry: time.Hour},
			logger, local.WithHashCost(bcrypt.MinCost)),
		EventBus: eventbus.NewWithMemory(logger),
		Logger:   logger,
	}, nil)
	notices := notify.NewChannel(32)

	var out bytes.Buffer
	sh := newShell(a, a.Flows(notices), strings.NewReader(script), &out, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sh.Run(ctx))
	return sh, out.String(), notices.Drain()
}

func TestShell_RegisterAddList(t *testing.T) {
	script := registerAlice +
		"add\nLunch\nFood\nexpense\n12.50\n2025-01-01\n\n" +
		"list\nsummary\nwhoami\nquit\n"

	sh, out, notices := runScript(t, script)

	assert.Equal(t, []notify.Notice{
		notify.Success(app.MsgRegistered),
		notify.Success(app.MsgTransactionAdded),
	}, notices)
	assert.Equal(t, "list", sh.route)
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "-12.50 KES")
	assert.Contains(t, out, "Expense: 12.50 KES")
	assert.Contains(t, out, "Alice Doe <alice@example.com>")
}

func TestShell_ValidationNoticeKeepsRoute(t *testing.T) {
	_, _, notices := runScript(t, "register\nAlice\n\nalice@example.com\nsecret123\n")

	assert.Equal(t, []notify.Notice{notify.Error("Please fill all the fields")}, notices)
}

func TestShell_DeleteNeedsConfirmation(t *testing.T) {
	sh, out, notices := runScript(t, registerAlice+"delete abc\nn\n")

	assert.Contains(t, out, "cancelled")
	assert.Equal(t, []notify.Notice{notify.Success(app.MsgRegistered)}, notices)
	assert.Equal(t, "home", sh.route)
}

func TestShell_DeleteMissingIsNotAnError(t *testing.T) {
	_, _, notices := runScript(t, registerAlice+"delete abc\ny\n")

	require.Len(t, notices, 2)
	assert.Equal(t, notify.Success(app.MsgTransactionDeleted), notices[1])
}

func TestShell_Statement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	_, out, _ := runScript(t, registerAlice+
		"add\nSalary\nWork\nincome\n100\n\n\n"+
		"statement "+path+"\n")

	assert.Contains(t, out, "statement written to")
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestShell_UnknownCommand(t *testing.T) {
	_, out, _ := runScript(t, "frobnicate\n")
	assert.Contains(t, out, `unknown command "frobnicate"`)
}
