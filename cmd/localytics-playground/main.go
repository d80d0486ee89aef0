// localytics-playground exercises the Localytics integration end to end.
//
// Usage:
//
//	localytics-playground serve                  Run a local collector on :3000
//	localytics-playground replay <scenario.yaml> Replay host calls against a collector
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tap30/ripple-localytics/adapters"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "localytics-playground",
		Short:        "Try the Localytics integration against a local collector",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "info", "verbose, debug, info, warn, error or none")

	root.AddCommand(newServeCmd(), newReplayCmd())
	return root
}

func logLevelFlag(cmd *cobra.Command) (adapters.LogLevel, error) {
	raw, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", err
	}
	return adapters.ParseLogLevel(raw)
}

// newSlogLogger builds the collector's JSON logger from --log-level.
func newSlogLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logLevelFlag(cmd)
	if err != nil {
		return nil, err
	}
	var slogLevel slog.Level
	switch level {
	case adapters.LogLevelVerbose:
		slogLevel = adapters.SlogLevelVerbose
	case adapters.LogLevelDebug:
		slogLevel = slog.LevelDebug
	case adapters.LogLevelInfo:
		slogLevel = slog.LevelInfo
	case adapters.LogLevelWarn:
		slogLevel = slog.LevelWarn
	default:
		slogLevel = slog.LevelError
	}
	handler := slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slogLevel})
	return slog.New(handler).With("component", "collector"), nil
}
