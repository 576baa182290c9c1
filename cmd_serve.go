package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/server"
)

// serveCmd runs the web application
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the feedback dashboard web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.NewApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		logger.Info("Campus feedback starting",
			zap.String("env", cfg.AppEnv),
			zap.String("port", cfg.Port),
			zap.String("store", cfg.Store),
			zap.String("classifier", app.Services.Feedback.ClassifierName()),
		)

		return app.Run(ctx)
	},
}

