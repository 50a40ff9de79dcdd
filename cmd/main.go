package main

import (
	"context"
	"os"

	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatal("application error", "error", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "jobboard",
		Usage:    "Job board API server and admin tools",
		Version:  version,
		Commands: r.register(),
	}
}
