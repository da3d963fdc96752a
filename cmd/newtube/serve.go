package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/ratelimit"
	"github.com/lucas-ellwanger/newtube/pkg/utils/filewatch"
	"github.com/lucas-ellwanger/newtube/pkg/videohost/mux"
	"github.com/spf13/cobra"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var cert, key string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the API server",
		Long: `Start the JSON API server.

The server quits when its config file is modified,
so that the supervisor restarts it with the new configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, cert, key)
		},
	}
	cmd.Flags().StringVar(&cert, "cert", "", "certification file for TLS")
	cmd.Flags().StringVar(&key, "certkey", "", "key of certification file for TLS")
	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, cert string, key string) error {
	conf, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stopWatching, err := filewatch.UntilModified(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("can not watch configuration: %w", err)
	}
	defer stopWatching()

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

	tokens, err := tokenVerifier(conf.Auth)
	if err != nil {
		return err
	}
	usersWebhook, err := auth.NewWebhookVerifier(conf.Auth.WebhookSecret)
	if err != nil {
		return fmt.Errorf("auth.webhookSecret is invalid: %w", err)
	}
	st, err := mediaStorage(ctx, conf.Storage)
	if err != nil {
		return err
	}

	server := BuildServer(Dependencies{
		DB:           db,
		Tokens:       tokens,
		Host:         videoHost(conf.Mux),
		Storage:      st,
		MuxWebhook:   mux.NewWebhookVerifier(conf.Mux.WebhookSecret),
		UsersWebhook: usersWebhook,
		RateLimit: ratelimit.Config{
			Requests:  conf.RateLimit.Requests,
			Window:    conf.RateLimit.Window.Duration(),
			ExpiresIn: conf.RateLimit.ExpiresIn.Duration(),
		},
		AllowOrigins: conf.Server.AllowOrigins,
	}, opts.LogLevel)
	for _, r := range server.Routes() {
		server.Logger.Debugf("- mount handler: %s %s", strings.ToUpper(r.Method), r.Path)
	}

	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		addr := fmt.Sprintf(":%d", conf.Server.Port)
		var err error
		if cert != "" && key != "" {
			err = server.StartTLS(addr, cert, key)
		} else {
			err = server.Start(addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			ch <- err
		}
	}()

	var exit error
	select {
	case <-ctx.Done():
		server.Logger.Infof("context has been done: %s, cause: %s", ctx.Err(), context.Cause(ctx))
	case err := <-ch:
		if err != nil {
			server.Logger.Error("server stops with error:", err)
			exit = err
		}
	}

	server.Logger.Info("shutting down...")
	qctx, qcancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer qcancel()
	if err := server.Shutdown(qctx); err != nil {
		return errors.Join(exit, fmt.Errorf("shutdown with error: %w", err))
	}
	return exit
}
