// Command userbase-seed builds the Netflix userbase seed artifacts: a users
// document and a synthetic follows graph, optionally published to S3 and
// loaded into PostgreSQL.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/userbase-seed/pkg/logging"
	"github.com/dd0wney/userbase-seed/pkg/metrics"
	"github.com/dd0wney/userbase-seed/pkg/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, errHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "userbase-seed: %v\n", err)
		return 1
	}

	logger := logging.NewJSONLogger(stderr, cfg.Level())

	runner, err := seed.NewRunner(cfg, logger, metrics.NewRegistry(), seed.Deps{Stdout: stdout})
	if err != nil {
		logger.Error("invalid configuration", logging.Error(err))
		return 1
	}

	if _, err := runner.Run(ctx); err != nil {
		return 1
	}
	return 0
}
