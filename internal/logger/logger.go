package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Options selects the log format and optional Sentry forwarding.
type Options struct {
	AppName   string
	Env       string
	SentryDSN string
	Out       io.Writer // stdout when nil
}

var sentryEnabled bool

// Init installs the default slog logger. Development logs text at Debug,
// everything else JSON at Info. With a Sentry DSN, Error records are
// forwarded as events.
func Init(opts Options) *slog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var console slog.Handler
	if opts.Env == "development" {
		console = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		console = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	handler := console
	var sentryErr error
	if opts.SentryDSN != "" {
		sentryErr = sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
			ServerName:  opts.AppName,
		})
		sentryEnabled = sentryErr == nil
		if sentryEnabled {
			handler = slogmulti.Fanout(console, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	log := slog.New(handler)
	if opts.AppName != "" {
		log = log.With("app", opts.AppName)
	}
	slog.SetDefault(log)

	if sentryErr != nil {
		log.Warn("sentry disabled", "error", sentryErr)
	}
	return log
}

// Flush waits for buffered Sentry events before the process exits.
func Flush() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}
