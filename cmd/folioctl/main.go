// Command folioctl drives the portfolio API from a terminal: it submits
// reviews, bookings, and contact messages the way the site's forms do, and
// runs the admin list/delete operations.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio/internal/adapters/observability"
)

func main() {
	log.Logger = observability.NewLogger("dev").Level(zerolog.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("folioctl failed")
		os.Exit(1)
	}
}
