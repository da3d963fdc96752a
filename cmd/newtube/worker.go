package main

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/lucas-ellwanger/newtube/pkg/loop/recurring"
	"github.com/lucas-ellwanger/newtube/pkg/utils/echoutil"
	"github.com/lucas-ellwanger/newtube/pkg/utils/retry"
	"github.com/lucas-ellwanger/newtube/pkg/workflow"
	"github.com/lucas-ellwanger/newtube/pkg/workflow/videos"
	"github.com/spf13/cobra"
)

func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	policy := ""

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "execute queued workflows",
		Long: `Execute queued workflows (generating titles, descriptions and thumbnails).

With --policy backlog, it quits after all due runs are executed.
With --policy until-error:backlog, it also quits on the first error of the journal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd.Context(), rootOpts, policy)
		},
	}
	cmd.Flags().StringVar(
		&policy, "policy", "", "loop policy overriding workflow.policy in config. [until-error:](forever[:cooldown]|backlog)",
	)
	return cmd
}

func runWorker(ctx context.Context, opts *RootOptions, policy string) error {
	conf, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if policy == "" {
		policy = conf.Workflow.Policy
	}
	p, err := recurring.ParsePolicy(policy)
	if err != nil {
		return err
	}

	logger := log.New("workflow")
	lvl, err := echoutil.ParseLevel(opts.LogLevel)
	logger.SetLevel(lvl)
	if err != nil {
		logger.Warnf("%s . fall-backed to warn", err)
	}

	db, err := openDatabase(ctx, conf.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	{
		sctx, scancel := db.Schema().Context(ctx)
		defer scancel()
		ctx = sctx
	}

	gen, err := generator(ctx, conf.AI)
	if err != nil {
		return err
	}
	st, err := mediaStorage(ctx, conf.Storage)
	if err != nil {
		return err
	}

	wc := conf.Workflow
	w := workflow.NewWorker(
		db.Workflow(),
		videos.New(db.Video(), videoHost(conf.Mux), gen, st).Bodies(),
		workflow.WithConcurrency(wc.Concurrency),
		workflow.WithLease(wc.Lease.Duration()),
		workflow.WithTimeout(wc.Timeout.Duration()),
		workflow.WithBackoff(retry.Policy{
			Initial:    wc.InitialBackoff.Duration(),
			Multiplier: 2,
			Max:        wc.MaxBackoff.Duration(),
			Attempts:   wc.MaxAttempts,
		}),
		workflow.WithLogger(logger),
	)

	logger.Infof("worker starts (policy: %s, concurrency: %d)", p, wc.Concurrency)
	if err := w.Start(ctx, p); err != nil {
		return fmt.Errorf("worker stops with error: %w", err)
	}
	logger.Info("worker stops")
	return nil
}
