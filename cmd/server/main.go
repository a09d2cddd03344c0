// Dashboard settings API server
//
// Usage:
//
//	server                  chạy HTTP server (mặc định = serve)
//	server serve --env-file config/env/production.env
//	server indexes          tạo index MongoDB rồi thoát
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heynokimush/dashboard-backend/config"
	"github.com/heynokimush/dashboard-backend/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Dashboard settings API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// LOG_* có thể nằm trong file env nên phải nạp file trước khi tạo logger
		if err := config.LoadEnvFiles(envFiles...); err != nil {
			return err
		}
		return initLogger()
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes and exit",
	Args:  cobra.NoArgs,
	RunE:  runIndexes,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env file(s) to load (default: config/env/{GO_ENV}.env)")
	rootCmd.AddCommand(serveCmd, indexesCmd)
}

// runServe khởi tạo server và chạy cho đến khi nhận SIGINT/SIGTERM
func runServe(cmd *cobra.Command, args []string) error {
	defer logger.Close()
	log := logger.GetAppLogger()

	a, err := InitApplication(envFiles...)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.EnsureIndexes(cmd.Context()); err != nil {
		log.WithError(err).Warn("Failed to ensure indexes, continuing")
	}

	stores, err := InitStores(a)
	if err != nil {
		return err
	}

	app, err := InitFiberApp(a, stores)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(map[string]interface{}{
			"address":  a.Config.Address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")
		errCh <- app.Listen(a.Config.Address, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error in fiber listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	timeout := time.Duration(a.Config.ShutdownTimeout) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		log.WithError(err).Error("Failed to shut down server gracefully")
		return err
	}
	log.Info("Server stopped")
	return nil
}

// runIndexes chỉ tạo index rồi thoát
func runIndexes(cmd *cobra.Command, args []string) error {
	defer logger.Close()

	a, err := InitApplication(envFiles...)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.EnsureIndexes(cmd.Context())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
