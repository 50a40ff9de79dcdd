package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/services"
	"github.com/desertthunder/jobboard/internal/shared"
	th "github.com/desertthunder/jobboard/internal/testing"
)

type fakeSource struct {
	apps    []*models.Application
	listErr error
	resumes map[string]*services.Resume
}

func (f *fakeSource) List(context.Context, int) ([]*models.Application, error) {
	return f.apps, f.listErr
}

func (f *fakeSource) Resume(_ context.Context, id string) (*services.Resume, error) {
	r, ok := f.resumes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r, nil
}

func newSource() *fakeSource {
	title := "Data Engineer"
	return &fakeSource{
		apps: []*models.Application{
			{ID: "app-1", Name: "Ada Lovelace", Email: "ada@example.com", JobTitle: &title, ResumePath: "1.pdf", CreatedAt: time.Now()},
			{ID: "app-2", Name: "Grace Hopper", Email: "grace@example.com", ResumePath: "2.pdf", CreatedAt: time.Now()},
		},
		resumes: map[string]*services.Resume{
			"app-1": {DisplayName: "Ada_Lovelace_resume.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// load runs Init and feeds its message back into the model.
func load(t *testing.T, m *Model) {
	t.Helper()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(m.Init()())
}

func TestModel(t *testing.T) {
	t.Run("lists applications", func(t *testing.T) {
		m := NewModel(context.Background(), newSource(), 0, t.TempDir())
		load(t, m)

		if len(m.apps) != 2 {
			t.Fatalf("expected 2 applications, got %d", len(m.apps))
		}
		if view := m.View(); !strings.Contains(view, "Ada Lovelace") {
			t.Errorf("expected list to show Ada Lovelace, got %s", view)
		}
	})

	t.Run("detail and back", func(t *testing.T) {
		m := NewModel(context.Background(), newSource(), 0, t.TempDir())
		load(t, m)

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != DetailView || m.selected == nil || m.selected.ID != "app-1" {
			t.Fatalf("expected detail of app-1, got view %d", m.view)
		}
		view := m.View()
		for _, want := range []string{"Ada Lovelace: Data Engineer", "ada@example.com", "N/A"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected detail to contain %q, got %s", want, view)
			}
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != ListView || m.selected != nil {
			t.Errorf("expected to return to the list")
		}
	})

	t.Run("save resume", func(t *testing.T) {
		dir := t.TempDir()
		m := NewModel(context.Background(), newSource(), 0, dir)
		load(t, m)
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		_, cmd := m.Update(keyRunes("s"))
		if cmd == nil {
			t.Fatal("expected a save command")
		}
		m.Update(cmd())

		path := filepath.Join(dir, "Ada_Lovelace_resume.pdf")
		th.AssertFileExists(t, path)
		if got := th.MustReadFile(t, path); got != "%PDF" {
			t.Errorf("expected resume content, got %q", got)
		}
		if !strings.Contains(m.View(), "Saved") {
			t.Errorf("expected saved status, got %s", m.View())
		}
	})

	t.Run("save missing resume", func(t *testing.T) {
		src := newSource()
		src.resumes = nil
		m := NewModel(context.Background(), src, 0, t.TempDir())
		load(t, m)
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		_, cmd := m.Update(keyRunes("s"))
		m.Update(cmd())
		if !strings.Contains(m.View(), "Could not save resume") {
			t.Errorf("expected failure status, got %s", m.View())
		}
	})

	t.Run("load error and retry", func(t *testing.T) {
		src := newSource()
		src.listErr = errors.New("database is locked")
		m := NewModel(context.Background(), src, 0, t.TempDir())
		load(t, m)

		if !strings.Contains(m.View(), "database is locked") {
			t.Errorf("expected error view, got %s", m.View())
		}

		src.listErr = nil
		_, cmd := m.Update(keyRunes("r"))
		m.Update(cmd())
		if m.err != nil || len(m.apps) != 2 {
			t.Errorf("expected retry to load applications, got %v", m.err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		m := NewModel(context.Background(), &fakeSource{}, 0, t.TempDir())
		load(t, m)
		if !strings.Contains(m.View(), "No applications yet.") {
			t.Errorf("expected empty state, got %s", m.View())
		}
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.view != ListView {
			t.Errorf("expected to stay on the list")
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := NewModel(context.Background(), newSource(), 0, t.TempDir())
		load(t, m)
		_, cmd := m.Update(keyRunes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg")
		}
	})
}
