package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codelens-ai/pydebug/internal/config"
	"github.com/codelens-ai/pydebug/internal/server"
)

var (
	serveAddr       string
	serveConfigPath string
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser UI",
		Long: `Start a local web server hosting the debugging assistant UI and a JSON API.

Set PYDEBUG_PASSWORD to gate access behind a shared password.

Examples:
  pydebug serve
  pydebug serve --addr 0.0.0.0:9000`,
		RunE:         runServe,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (host:port)")
	cmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to config file")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(serveConfigPath)
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := newLogger()
	svc := buildDebugService(cfg, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("pydebug listening on http://%s\n", cfg.Server.Addr)
	if cfg.Server.Password == "" {
		logger.Warn("no access password configured; the UI is open to anyone who can reach it")
	}

	return server.New(cfg, svc, logger.Named("server")).Start(ctx)
}
