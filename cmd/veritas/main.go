// Command veritas detects AI-written text, rewrites it to read as human, and
// shows what changed.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/log"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	cancel()
	if err != nil {
		log.Errorf("%s\n", errorMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	// A .env file in the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("reading .env: %s\n", err)
	}

	app := NewApp()
	defer app.Close()

	return app.Execute(ctx, args)
}

// errorMessage returns the user-facing text of err.
func errorMessage(err error) string {
	var e *veritas.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
