package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jobboard/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgApplicationsFetched MsgKind = iota
	MsgResumeSaved
)

type applicationsFetched struct {
	apps []*models.Application
	err  error
}

type resumeSaved struct {
	path string
	err  error
}

// applicationsFetchedMsg is the constructor for [MsgApplicationsFetched]
func applicationsFetchedMsg(apps []*models.Application, err error) Msg {
	return Msg{kind: MsgApplicationsFetched, data: applicationsFetched{apps, err}}
}

// resumeSavedMsg is the constructor for [MsgResumeSaved]
func resumeSavedMsg(path string, err error) Msg {
	return Msg{kind: MsgResumeSaved, data: resumeSaved{path, err}}
}
