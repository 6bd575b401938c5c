package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradecli/internal/app"
	"tradecli/internal/form"
	"tradecli/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	application, err := app.NewApplication()
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		}
	}()

	fmt.Println(contracts.GetVersionString())

	console := form.NewConsole(os.Stdin, os.Stdout)
	session := form.NewSession(application.Analysis, console.Picker(), console.Notifier(), application.Logger)

	if err := form.Run(ctx, session, console); err != nil {
		application.Logger.Warn("Form closed", slog.String("reason", err.Error()))
	}
	return nil
}
