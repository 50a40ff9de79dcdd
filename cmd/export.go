package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jobboard/internal/formatter"
	"github.com/urfave/cli/v3"
)

// ExportApplications writes the newest applications in the requested format, to a file or to stdout.
func (r *Runner) ExportApplications(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	app, err := newComponents(config, r.logger, r.now)
	if err != nil {
		return err
	}
	defer app.Close()

	apps, err := app.applications.List(ctx, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	output := cmd.String("output")
	if output == "-" {
		return formatter.Write(r.output, apps, format)
	}

	path, err := formatter.WriteExport(apps, format, output, r.now())
	if err != nil {
		return err
	}
	r.logger.Info("applications exported", "count", len(apps), "format", format, "path", path)
	return r.writePlain("✓ Exported %d applications to %s\n", len(apps), path)
}
