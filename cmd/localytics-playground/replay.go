package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sort"
	"time"

	localytics "github.com/Tap30/ripple-localytics"
	"github.com/Tap30/ripple-localytics/adapters"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type replayOptions struct {
	endpoint       string
	storage        string
	storagePath    string
	inAppMessaging bool
	flushInterval  time.Duration
	timeout        time.Duration
	logFormat      string
}

// newLoggerFactory returns per-tag loggers in the given format. The text
// format goes through the standard log package, json goes to w.
func newLoggerFactory(format string, level adapters.LogLevel, w io.Writer) (LoggerFactory, error) {
	switch format {
	case "json":
		return func(tag string) localytics.LoggerAdapter {
			return adapters.NewSlogLoggerAdapter(w, level, tag)
		}, nil
	case "text":
		base := adapters.NewPrintLoggerAdapter(level)
		return func(tag string) localytics.LoggerAdapter {
			return base.WithTag(tag)
		}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q, want json or text", format)
	}
}

// playgroundHost hands the integration its logger and application.
type playgroundHost struct {
	logger LoggerFactory
}

// LoggerFactory builds a logger for an integration tag.
type LoggerFactory func(tag string) localytics.LoggerAdapter

func (h playgroundHost) Logger(tag string) localytics.LoggerAdapter { return h.logger(tag) }

func (h playgroundHost) Application() localytics.Application { return playgroundApplication{} }

type playgroundApplication struct{}

func (playgroundApplication) PackageName() string { return "com.example.playground" }

// logMessenger stands in for the in-app messaging library by logging calls.
type logMessenger struct {
	logger localytics.LoggerAdapter
}

func (m logMessenger) SetInAppMessageDisplayActivity(host localytics.MessageHost) {
	m.logger.Info("in-app messages now display on %s", host.MessageHostID())
}

func (m logMessenger) DismissCurrentInAppMessage() {
	m.logger.Info("in-app message dismissed")
}

func (m logMessenger) ClearInAppMessageDisplayActivity() {
	m.logger.Info("in-app message display activity cleared")
}

func newStorageAdapter(opts replayOptions) (localytics.StorageAdapter, func() error, error) {
	switch opts.storage {
	case "none":
		s := adapters.NewNoOpStorageAdapter()
		return s, s.Close, nil
	case "file":
		return adapters.NewFileStorageAdapter(opts.storagePath), func() error { return nil }, nil
	case "sqlite":
		s, err := adapters.NewSQLiteStorageAdapter(opts.storagePath, 0)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q, want none, file or sqlite", opts.storage)
	}
}

// runReplay plays scenario through a fresh integration backed by an
// UploadClient and writes a metrics summary to out.
func runReplay(scenario *Scenario, opts replayOptions, loggers LoggerFactory, out io.Writer) (err error) {
	logger := loggers(localytics.Key)

	storage, closeStorage, err := newStorageAdapter(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeStorage())
	}()

	uploadClient, err := localytics.NewUploadClient(localytics.UploadClientConfig{
		Endpoint:       opts.endpoint,
		FlushInterval:  opts.flushInterval,
		HTTPAdapter:    adapters.NewNetHTTPAdapterWithTimeout(opts.timeout),
		StorageAdapter: storage,
		LoggerAdapter:  logger,
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	client, err := adapters.NewMetricsClientAdapter(uploadClient, reg)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(scenario.Settings)
	if err != nil {
		return err
	}

	factory := localytics.Factory{Client: client}
	if opts.inAppMessaging {
		factory.Messenger = logMessenger{logger: logger}
	}
	integration, err := factory.Create(settings, playgroundHost{logger: loggers})
	if err != nil {
		return err
	}

	for i, step := range scenario.Steps {
		logger.Debug("step %d: %s", i+1, step.Action())
		step.Apply(integration)
	}

	if err := uploadClient.Dispose(); err != nil {
		return fmt.Errorf("dispose upload client: %w", err)
	}
	return writeMetricsSummary(out, reg)
}

// resolveSettings fills a missing appKey from the environment.
func resolveSettings(raw map[string]any) (map[string]any, error) {
	settings := maps.Clone(raw)
	if settings == nil {
		settings = map[string]any{}
	}
	if key, _ := settings["appKey"].(string); key != "" {
		return settings, nil
	}

	fromEnv, err := localytics.LoadSettingsFromEnv()
	if err != nil {
		return nil, err
	}
	settings["appKey"] = fromEnv.AppKey
	if _, ok := settings["dimensions"]; !ok && len(fromEnv.Dimensions) > 0 {
		settings["dimensions"] = map[string]any(fromEnv.Dimensions)
	}
	if _, ok := settings["setOrganizationScope"]; !ok {
		settings["setOrganizationScope"] = fromEnv.OrganizationScope
	}
	return settings, nil
}

func writeMetricsSummary(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name := family.GetName()
			for _, label := range metric.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", label.GetName(), label.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func newReplayCmd() *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario of host calls against a collector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}
			level, err := logLevelFlag(cmd)
			if err != nil {
				return err
			}
			loggers, err := newLoggerFactory(opts.logFormat, level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runReplay(scenario, opts, loggers, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "http://localhost:3000/records", "collector endpoint")
	cmd.Flags().StringVar(&opts.storage, "storage", "file", "pending record storage: none, file or sqlite")
	cmd.Flags().StringVar(&opts.storagePath, "storage-path", "localytics_records.json", "storage file for file or sqlite storage")
	cmd.Flags().BoolVar(&opts.inAppMessaging, "in-app-messaging", false, "simulate the in-app messaging library")
	cmd.Flags().DurationVar(&opts.flushInterval, "flush-interval", 5*time.Second, "background flush interval")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP timeout per upload")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "json", "log format: json or text")
	return cmd
}
