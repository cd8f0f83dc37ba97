package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/heliosip/countryrules/features/query/calculaterules"
	"github.com/heliosip/countryrules/features/query/filteroptions"
	"github.com/heliosip/countryrules/features/query/rulefamilies"
	"github.com/heliosip/countryrules/rulestore/oteladapters"
	"github.com/heliosip/countryrules/rulestore/promadapters"
	"github.com/heliosip/countryrules/session"
	"github.com/heliosip/countryrules/shared/shell"
	"github.com/heliosip/countryrules/shared/shell/config"
	"github.com/heliosip/countryrules/shared/shell/observable"
)

// app holds everything one command invocation needs: an open session and its observability.
type app struct {
	session     *session.Session
	logger      *oteladapters.SlogBridgeLogger
	metrics     *promadapters.MetricsCollector
	registry    *prometheus.Registry
	metricsFile string
}

func openApp(ctx context.Context, flags *globalFlags, lookupEnv func(string) (string, bool), errOut io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	var level slog.Level
	if err = level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, errors.Join(config.ErrInvalidConfig, err)
	}

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: level}))
	registry := prometheus.NewRegistry()
	metrics := promadapters.NewMetricsCollector(registry)

	s, err := session.Open(ctx, cfg, credentials(flags, lookupEnv),
		session.WithContextualLogger(logger),
		session.WithMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		session:     s,
		logger:      logger,
		metrics:     metrics,
		registry:    registry,
		metricsFile: flags.metricsFile,
	}, nil
}

// withApp opens an app for the duration of run. Closing errors are joined with the run error.
func withApp(cmd *cobra.Command, flags *globalFlags, lookupEnv func(string) (string, bool), run func(a *app) error) (err error) {
	a, err := openApp(cmd.Context(), flags, lookupEnv, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, a.close())
	}()

	return run(a)
}

func credentials(flags *globalFlags, lookupEnv func(string) (string, bool)) session.Credentials {
	creds := session.Credentials{Username: flags.username, Password: flags.password}

	if creds.Username == "" {
		creds.Username, _ = lookupEnv(envUsername)
	}

	if creds.Password == "" {
		creds.Password, _ = lookupEnv(envPassword)
	}

	return creds
}

func (a *app) close() error {
	var metricsErr error
	if a.metricsFile != "" {
		metricsErr = prometheus.WriteToTextfile(a.metricsFile, a.registry)
	}

	return errors.Join(a.session.Close(), metricsErr)
}

func (a *app) searchHandler() (shell.QueryHandler[rulefamilies.Query, rulefamilies.RuleFamilies], error) {
	store, err := a.session.RuleStore()
	if err != nil {
		return nil, err
	}

	coreHandler, err := rulefamilies.NewQueryHandler(store, rulefamilies.WithComponentMetrics(a.metrics))
	if err != nil {
		return nil, err
	}

	return observable.NewQueryWrapper[rulefamilies.Query, rulefamilies.RuleFamilies](
		coreHandler,
		observable.WithQueryMetrics[rulefamilies.Query, rulefamilies.RuleFamilies](a.metrics),
		observable.WithQueryContextualLogging[rulefamilies.Query, rulefamilies.RuleFamilies](a.logger),
	)
}

func (a *app) calculateHandler() (shell.QueryHandler[calculaterules.Query, calculaterules.CalculatedRules], error) {
	search, err := a.searchHandler()
	if err != nil {
		return nil, err
	}

	return observable.NewQueryWrapper[calculaterules.Query, calculaterules.CalculatedRules](
		calculaterules.NewQueryHandler(search),
		observable.WithQueryMetrics[calculaterules.Query, calculaterules.CalculatedRules](a.metrics),
		observable.WithQueryContextualLogging[calculaterules.Query, calculaterules.CalculatedRules](a.logger),
	)
}

func (a *app) optionsHandler() (shell.QueryHandler[filteroptions.Query, filteroptions.FilterOptions], error) {
	store, err := a.session.RuleStore()
	if err != nil {
		return nil, err
	}

	return observable.NewQueryWrapper[filteroptions.Query, filteroptions.FilterOptions](
		filteroptions.NewQueryHandler(store),
		observable.WithQueryMetrics[filteroptions.Query, filteroptions.FilterOptions](a.metrics),
		observable.WithQueryContextualLogging[filteroptions.Query, filteroptions.FilterOptions](a.logger),
	)
}
