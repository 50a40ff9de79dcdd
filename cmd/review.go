package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jobboard/internal/services"
	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/desertthunder/jobboard/internal/ui"
	"github.com/urfave/cli/v3"
)

// Review launches the interactive applications console.
func (r *Runner) Review(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	app, err := newComponents(config, r.logger, r.now)
	if err != nil {
		return err
	}
	defer app.Close()

	model := ui.NewModel(ctx, app.applications, services.DefaultApplicationLimit, cmd.String("dir"))
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
