// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/jobboard/internal/formatter"
	"github.com/desertthunder/jobboard/internal/services"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the job board API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-seed",
				Usage: "Skip seeding the admin account and sample jobs",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the configuration file to create",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// seedCommand creates the admin account and any missing sample jobs.
func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the admin account and missing sample jobs",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "admin-email",
				Usage: "Admin email (defaults to auth.admin_email)",
			},
			&cli.StringFlag{
				Name:  "admin-password",
				Usage: "Admin password (defaults to auth.admin_password)",
			},
			&cli.BoolFlag{
				Name:  "skip-jobs",
				Usage: "Only create the admin account",
			},
		},
		Action: r.Seed,
	}
}

// applicationsCommand handles application exports.
func applicationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "applications",
		Aliases: []string{"apps"},
		Usage:   "Applicant submissions",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export applications as csv, json, markdown or txt",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, json, markdown, txt)",
						Value:   string(formatter.FormatCSV),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, - for stdout (default: applications_{date}.{ext})",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of applications to export",
						Value: services.MaxApplicationLimit,
					},
				},
				Action: r.ExportApplications,
			},
		},
	}
}

// reviewCommand returns the interactive applications review console.
func reviewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "review",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse applications and save resumes interactively",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory resumes are saved to",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where logs go while the console is open",
				Value: "./tmp/jobboard-review.log",
			},
		},
		Action: r.Review,
	}
}
