package healthcheck

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var logger zerolog.Logger = log.Logger

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// Pinger is a dependency whose health is checked periodically.
type Pinger interface {
	DoHealthCheck(ctx context.Context) error
}

// QueueChecker reports the state of the queue connections.
type QueueChecker interface {
	IsConnectionHealthy() error
}

const checkTimeout = 10 * time.Second

// onFailure is swapped in tests.
var onFailure = terminateService

func StartHealthCheckCron(ctx context.Context, db Pinger, queues QueueChecker, cronTime int) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime == 0 {
		cronTime = 60
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		if err := check(ctx, db, queues); err != nil {
			logger.Error().Err(err).Msg("One or more dependencies are not healthy.")
			onFailure()
		}
	})

	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

// check pings the database and the queues concurrently.
func check(ctx context.Context, db Pinger, queues QueueChecker) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if db != nil {
		g.Go(func() error {
			if err := db.DoHealthCheck(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			return nil
		})
	}
	if queues != nil {
		g.Go(func() error {
			if err := queues.IsConnectionHealthy(); err != nil {
				return fmt.Errorf("queues: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func terminateService() {
	logger.Fatal().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}
