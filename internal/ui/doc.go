// Package ui implements the applications review console using bubbletea's Elm architecture.
//
// The console has two views:
//  1. [ListView] : Browse applications, newest first
//  2. [DetailView] : Read one application and save its resume
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Loading applications and saving resumes run as commands so the view never blocks on the database or the disk.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, s, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
