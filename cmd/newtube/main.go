package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// RootOptions are flags shared by all subcommands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "newtube",
		Short: "video sharing API server and its companions",

		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(
		&opts.ConfigPath, "config", os.Getenv("NEWTUBE_CONFIG"), "path to config file",
	)
	cmd.PersistentFlags().StringVar(
		&opts.LogLevel, "loglevel", "info", "log level. debug|info|warn|error|off",
	)

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		log.Printf("newtube: %s", err)
		cancel()
		os.Exit(1)
	}
}
