package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/jobboard/internal/models"
)

var _ list.Item = applicationItem{}

// applicationItem wraps [models.Application] to implement [list.Item].
type applicationItem struct {
	app *models.Application
}

func (i applicationItem) FilterValue() string { return i.app.Name + " " + i.app.Email }
func (i applicationItem) Title() string       { return i.app.Name }
func (i applicationItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.app.Position(), i.app.Email, i.app.CreatedAt.Local().Format(time.DateOnly))
}
