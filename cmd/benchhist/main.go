// Command benchhist records benchmark results into the data.js history read
// by the benchmark chart page.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/bench-history/internal/tracker"
)

const exitRegression = 2

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if errors.Is(err, tracker.ErrRegression) {
			os.Exit(exitRegression)
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
