package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/kcmvp/orderdesk/app"
	"github.com/kcmvp/orderdesk/audit"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/internal/sandbox"
	"github.com/kcmvp/orderdesk/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type deskKey struct{}

// desk is what every subcommand needs to run actions.
type desk struct {
	settings app.Settings
	logger   *zap.Logger
	log      *audit.Log
	provider *sqlx.Provider
}

func (k *desk) dispatcher(ui dispatch.Notifier) *dispatch.Dispatcher {
	return dispatch.New(k.provider, k.log, ui,
		dispatch.WithLogger(k.logger),
		dispatch.WithCurrency(k.settings.Currency))
}

// quiet drops diagnostics that would only land on the terminal, which the TUI owns.
func (k *desk) quiet() {
	if slices.Equal(k.settings.Logging.Output, []string{"stderr"}) {
		k.logger = zap.NewNop()
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		app.UseConfigFile(cfgFile)
	}
	res := app.Load()
	if res.IsError() {
		return res.Error()
	}
	settings := res.MustGet()
	if verbose {
		settings.Logging.Verbose = true
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if sandboxPath != "" {
		if err := sandbox.Create(ctx, sandboxPath); err != nil {
			return fmt.Errorf("sandbox %s: %w", sandboxPath, err)
		}
		settings.Datasource = sandbox.DataSource(sandboxPath)
	}

	logger, err := app.NewLogger(settings.Logging)
	if err != nil {
		return err
	}
	provider, err := sqlx.NewProvider(settings.Datasource, logger)
	if err != nil {
		return err
	}
	k := &desk{
		settings: settings,
		logger:   logger,
		log:      audit.New(settings.ActionLog),
		provider: provider,
	}
	logger.Debug("desk ready",
		zap.String("dialect", provider.Dialect().Name()),
		zap.String("action_log", settings.ActionLog))
	cmd.SetContext(context.WithValue(ctx, deskKey{}, k))
	return nil
}

func deskFrom(cmd *cobra.Command) *desk {
	k, _ := cmd.Context().Value(deskKey{}).(*desk)
	return k
}

// reportedError is an action failure the clerk has already been shown.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}
