package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
)

// Source loads applications and their resumes.
type Source interface {
	List(ctx context.Context, limit int) ([]*models.Application, error)
	Resume(ctx context.Context, id string) (*services.Resume, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	source   Source
	limit    int
	saveDir  string
	width    int
	height   int
	appList  list.Model
	apps     []*models.Application
	selected *models.Application
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model that saves resumes into saveDir.
func NewModel(ctx context.Context, source Source, limit int, saveDir string) *Model {
	return &Model{
		ctx:     ctx,
		view:    ListView,
		source:  source,
		limit:   limit,
		saveDir: saveDir,
		appList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading applications.
func (m *Model) Init() tea.Cmd {
	return m.fetchApplications()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.appList, cmd = m.appList.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgApplicationsFetched:
		data := msg.data.(applicationsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.apps = data.apps
		items := make([]list.Item, len(data.apps))
		for i, app := range data.apps {
			items[i] = applicationItem{app: app}
		}
		m.appList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.appList.Title = fmt.Sprintf("Applications (%d)", len(data.apps))
		m.resize()
		return m, nil

	case MsgResumeSaved:
		data := msg.data.(resumeSaved)
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not save resume: %v", data.err))
		} else {
			m.status = styles.ok.Render("Saved " + data.path)
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case ListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.appList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.appList, cmd = m.appList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchApplications()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.appList.SelectedItem().(applicationItem); ok {
			m.selected = item.app
			m.status = ""
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.appList, cmd = m.appList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.selected = nil
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.save):
		m.status = styles.warn.Render("Saving resume...")
		return m, m.saveResume(m.selected.ID)
	}
	return m, nil
}

func (m *Model) resize() {
	if m.width > 4 && m.height > 8 {
		m.appList.SetSize(m.width-4, m.height-8)
	}
}

func (m *Model) fetchApplications() tea.Cmd {
	return func() tea.Msg {
		apps, err := m.source.List(m.ctx, m.limit)
		return applicationsFetchedMsg(apps, err)
	}
}

func (m *Model) saveResume(id string) tea.Cmd {
	return func() tea.Msg {
		resume, err := m.source.Resume(m.ctx, id)
		if err != nil {
			return resumeSavedMsg("", err)
		}
		path, err := SaveResume(m.saveDir, resume)
		return resumeSavedMsg(path, err)
	}
}

// SaveResume writes resume into dir under its display name and returns the written path.
func SaveResume(dir string, resume *services.Resume) (string, error) {
	path := filepath.Join(dir, resume.DisplayName)
	if err := os.WriteFile(path, resume.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write resume: %w", err)
	}
	return path, nil
}

func (m *Model) renderList() string {
	if len(m.apps) == 0 {
		title := styles.title.Render("Applications")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.help.Render("No applications yet."), helpView)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.appList.View(), helpView)
}

func (m *Model) renderDetail() string {
	app := m.selected
	title := styles.title.Render(fmt.Sprintf("%s: %s", app.Name, app.Position()))

	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(label), value)
	}
	field("Email", app.Email)
	field("Submitted", app.CreatedAt.Local().Format(time.RFC1123))
	if app.JobID != nil {
		field("Job ID", *app.JobID)
	}
	field("Resume", app.ResumePath)
	if app.OriginalFilename != nil {
		field("Uploaded as", *app.OriginalFilename)
	}

	message := "N/A"
	if app.Message != nil && *app.Message != "" {
		message = *app.Message
	}
	fmt.Fprintf(&b, "\n%s\n%s\n", styles.label.Render("Message"), message)

	helpKeys := []key.Binding{m.keys.save, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	status := ""
	if m.status != "" {
		status = "\n" + m.status + "\n"
	}
	return fmt.Sprintf("%s\n%s%s\n%s", title, b.String(), status, helpView)
}
