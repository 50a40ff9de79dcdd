package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
	th "github.com/desertthunder/jobboard/internal/testing"
)

func sampleApplications() []*models.Application {
	title := "Data Engineer"
	jobID := "job-1"
	message := "Hello,\nI'd love to join."
	original := "Ada CV.pdf"
	return []*models.Application{
		{
			ID:               "app-1",
			Name:             "Ada Lovelace",
			Email:            "ada@example.com",
			Message:          &message,
			JobID:            &jobID,
			JobTitle:         &title,
			ResumePath:       "1111.pdf",
			OriginalFilename: &original,
			CreatedAt:        time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:         "app-2",
			Name:       "Grace Hopper",
			Email:      "grace@example.com",
			ResumePath: "2222.docx",
			CreatedAt:  time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"JSON", FormatJSON},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"text", FormatText},
		{" txt ", FormatText},
	}
	for _, tt := range tc {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	if FormatMarkdown.Extension() != ".md" || FormatCSV.Extension() != ".csv" {
		t.Errorf("unexpected extensions %s %s", FormatMarkdown.Extension(), FormatCSV.Extension())
	}
}

func TestExporters(t *testing.T) {
	apps := sampleApplications()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(apps)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "ID,Submitted,Name,Email,Position,Job ID,Resume,Original Filename,Message" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[1][4] != "Data Engineer" || records[1][8] != "Hello,\nI'd love to join." {
			t.Errorf("unexpected first row %v", records[1])
		}
		if records[2][4] != "General Application" || records[2][5] != "" {
			t.Errorf("unexpected general row %v", records[2])
		}
		if records[1][1] != "2025-04-02T09:30:00Z" {
			t.Errorf("expected RFC 3339 timestamp, got %s", records[1][1])
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(apps)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 || decoded[0]["email"] != "ada@example.com" {
			t.Errorf("unexpected JSON %s", data)
		}
		if decoded[1]["job_title"] != nil {
			t.Errorf("expected null job_title for a general application, got %v", decoded[1]["job_title"])
		}

		empty, err := ExportToJSON(nil)
		if err != nil || string(empty) != "[]" {
			t.Errorf("expected [], got %s, %v", empty, err)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(apps)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Applications",
			"**Total**: 2",
			"## 1. Ada Lovelace (Data Engineer)",
			"## 2. Grace Hopper (General Application)",
			"1111.pdf (uploaded as Ada CV.pdf)",
			"> Hello,\n> I'd love to join.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(apps)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Applications: 2\n") {
			t.Errorf("expected count header, got %s", output)
		}
		if !strings.Contains(output, "1. Ada Lovelace <ada@example.com> - Data Engineer [2025-04-02]") {
			t.Errorf("missing first line, got %s", output)
		}
	})

	t.Run("Export unknown format", func(t *testing.T) {
		if _, err := Export(apps, Format("xml")); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestWrite(t *testing.T) {
	apps := sampleApplications()

	t.Run("to writer", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, apps, FormatText); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "Grace Hopper") {
			t.Errorf("expected output, got %s", buf.String())
		}
	})

	t.Run("failing writer", func(t *testing.T) {
		if err := Write(&th.FWriter{}, apps, FormatCSV); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("WriteExport default path", func(t *testing.T) {
		th.MustChdir(t, t.TempDir())

		path, err := WriteExport(apps, FormatMarkdown, "", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != "applications_2025-04-03.md" {
			t.Errorf("expected applications_2025-04-03.md, got %s", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteExport explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		if _, err := WriteExport(apps, FormatCSV, path, time.Now()); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if content := th.MustReadFile(t, path); !strings.Contains(content, "app-2") {
			t.Errorf("expected app-2 in export, got %s", content)
		}
	})

	t.Run("WriteExport bad directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.csv")
		if _, err := WriteExport(apps, FormatCSV, path, time.Now()); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
