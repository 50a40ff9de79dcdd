// package formatter exports applications to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatMarkdown, FormatText}

// ParseFormat resolves a format name. "md" and "text" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", shared.ErrValidation, name)
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// Export renders apps in the given format.
func Export(apps []*models.Application, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(apps)
	case FormatJSON:
		return ExportToJSON(apps)
	case FormatMarkdown:
		return ExportToMarkdown(apps)
	case FormatText:
		return ExportToText(apps)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrValidation, format)
}

// ExportToCSV converts applications to CSV with columns: ID, Submitted, Name, Email, Position, Job ID, Resume,
// Original Filename, Message
func ExportToCSV(apps []*models.Application) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Submitted", "Name", "Email", "Position", "Job ID", "Resume", "Original Filename", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, app := range apps {
		record := []string{
			app.ID,
			app.CreatedAt.UTC().Format(time.RFC3339),
			app.Name,
			app.Email,
			app.Position(),
			deref(app.JobID),
			app.ResumePath,
			deref(app.OriginalFilename),
			deref(app.Message),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes applications as an indented JSON array.
func ExportToJSON(apps []*models.Application) ([]byte, error) {
	if apps == nil {
		apps = []*models.Application{}
	}
	return shared.MarshalJSON(apps, true)
}

// ExportToMarkdown renders one section per application.
func ExportToMarkdown(apps []*models.Application) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Applications\n\n")
	fmt.Fprintf(&buf, "**Total**: %d\n\n", len(apps))

	for i, app := range apps {
		fmt.Fprintf(&buf, "## %d. %s (%s)\n\n", i+1, app.Name, app.Position())
		fmt.Fprintf(&buf, "- **Email**: %s\n", app.Email)
		fmt.Fprintf(&buf, "- **Submitted**: %s\n", app.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
		fmt.Fprintf(&buf, "- **Resume**: %s\n", resumeLabel(app))
		if app.Message != nil && *app.Message != "" {
			fmt.Fprintf(&buf, "\n> %s\n", strings.ReplaceAll(*app.Message, "\n", "\n> "))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText renders one line per application.
func ExportToText(apps []*models.Application) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Applications: %d\n\n", len(apps))
	for i, app := range apps {
		fmt.Fprintf(&buf, "%d. %s <%s> - %s [%s]\n", i+1, app.Name, app.Email, app.Position(), app.CreatedAt.UTC().Format(time.DateOnly))
	}

	return buf.Bytes(), nil
}

// Write renders apps in format to w.
func Write(w io.Writer, apps []*models.Application, format Format) error {
	data, err := Export(apps, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteExport writes apps to path in format and returns the path written.
//
// Defaults to applications_{YYYY-MM-DD}{ext} for an empty path.
func WriteExport(apps []*models.Application, format Format, path string, now time.Time) (string, error) {
	if path == "" {
		path = "applications_" + now.Format(time.DateOnly) + format.Extension()
	}

	data, err := Export(apps, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func resumeLabel(app *models.Application) string {
	if app.OriginalFilename != nil && *app.OriginalFilename != "" {
		return fmt.Sprintf("%s (uploaded as %s)", app.ResumePath, *app.OriginalFilename)
	}
	return app.ResumePath
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
