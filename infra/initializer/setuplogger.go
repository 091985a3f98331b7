package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/pesaflow/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.DebugLevel: {Light: "#7E57C2", Dark: "#B39DDB"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.WarnLevel:  {Light: "#E6A700", Dark: "#FFD54F"},
	log.ErrorLevel: {Light: "#D32F2F", Dark: "#FF6B6B"},
}

var levelLabels = map[log.Level]string{
	log.DebugLevel: "DBG",
	log.InfoLevel:  "INF",
	log.WarnLevel:  "WRN",
	log.ErrorLevel: "ERR",
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl, color := range levelColors {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(levelLabels[lvl]).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}
	accent := levelColors[log.DebugLevel]
	for _, key := range []string{"component", "context", "userID", "path", "type"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(accent)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	return styles
}

// NewLogger builds the process logger writing to w and installs it as the
// slog default. A nil w means stdout.
func NewLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "15:04:05"}
	}
	if w == nil {
		w = os.Stdout
	}

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level < 0,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(logStyles())

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
