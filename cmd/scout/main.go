// Command scout is a terminal client for incremental research report
// streams.
//
// Usage:
//
//	scout -url https://host/api/research [flags]
//	scout -url wss://host/api/research/feed [flags]
//
// Flags:
//
//	-url string          Backend research endpoint (required)
//	-transport string    Transport: http, ws (auto-detected from the URL scheme if omitted)
//	-timeout duration    Per-request timeout; 0 disables it
//	-suggestions-end     Treat the suggestions frame as the end of the stream
//	-log-file string     Write structured logs to this file (default: discard)
//	-log-level string    Log level when -log-file is set (default: info)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/scout"
	bt "github.com/courtside/scout/bubbletea"
	"github.com/courtside/scout/controller"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		url            = flag.String("url", "", "Backend research endpoint (required)")
		transportFlag  = flag.String("transport", "", "Transport: http, ws (auto-detected from the URL scheme if omitted)")
		timeout        = flag.Duration("timeout", 0, "Per-request timeout; 0 disables it")
		suggestionsEnd = flag.Bool("suggestions-end", false, "Treat the suggestions frame as the end of the stream")
		logFile        = flag.String("log-file", "", "Write structured logs to this file")
		logLevel       = flag.String("log-level", "info", "Log level when -log-file is set")
	)
	flag.Parse()

	if *url == "" {
		return fmt.Errorf("-url is required")
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Logs go to a file or nowhere: stdout belongs to the TUI.
	logger, closeLog, err := newLogger(*logFile, *logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	// Env is only read here and passed down as values.
	dial, err := resolveDial(*url, *transportFlag, os.Getenv("SCOUT_API_KEY"))
	if err != nil {
		return err
	}

	opts := []controller.Option{controller.WithLogger(logger)}
	if *suggestionsEnd {
		opts = append(opts, controller.WithSuggestionsComplete())
	}
	ctrl := controller.New(dial, opts...)

	research := researchFunc(ctrl, *timeout)

	if err := bt.Run(ctx, bt.New(research, scout.DefaultTheme())); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	ctrl.Cancel()
	return nil
}

// researchFunc adapts the controller to the TUI's submission contract,
// threading the optional per-request timeout through the normal
// cancellation path.
func researchFunc(ctrl *controller.Controller, timeout time.Duration) bt.ResearchFunc {
	return func(ctx context.Context, req scout.Request, onUpdate func(scout.Snapshot)) (func(), error) {
		cancelTimeout := func() {}
		if timeout > 0 {
			ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		}

		h, err := ctrl.Submit(ctx, req, controller.OnUpdate(onUpdate))
		if err != nil {
			cancelTimeout()
			return nil, err
		}
		go func() {
			<-h.Done()
			cancelTimeout()
		}()
		return h.Cancel, nil
	}
}

func newLogger(path, level string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		f.Close()
		return zerolog.Logger{}, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger := zerolog.New(f).Level(lvl).With().
		Timestamp().
		Str("service", "scout").
		Logger()
	return logger, func() { f.Close() }, nil
}
