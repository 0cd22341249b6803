// Package editor is the edit/create screen: it collects a name for a new
// coordinate, or renames an existing location.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/service"
	"github.com/mmynk/geopins/internal/ui"
	"github.com/mmynk/geopins/internal/ui/listview"
)

const emptyNameMessage = "Please enter a name for the location"

// Saver is the subset of the location service the editor needs.
type Saver interface {
	Get(ctx context.Context, id int64) (*models.Location, error)
	Save(ctx context.Context, req models.EditRequest, name string) (service.SaveResult, error)
}

// Closed is sent when the editor finishes. Err is set only for storage failures.
type Closed struct {
	Saved   bool
	Message string
	Err     error
}

// Model is the edit/create screen.
type Model struct {
	ctx     context.Context
	saver   Saver
	req     models.EditRequest
	input   textinput.Model
	message string
	styles  ui.Styles
}

// New opens the editor for req. For an edit request the name field is
// pre-filled from the store.
func New(ctx context.Context, saver Saver, req models.EditRequest, styles ui.Styles) (Model, error) {
	input := textinput.New()
	input.Placeholder = "Location name"
	input.CharLimit = 120
	input.Width = 40
	input.Focus()

	if !req.IsCreate() {
		loc, err := saver.Get(ctx, req.LocationID)
		if err != nil {
			return Model{}, fmt.Errorf("load location %d: %w", req.LocationID, err)
		}
		if loc != nil {
			input.SetValue(loc.Name)
		}
	}

	return Model{
		ctx:    ctx,
		saver:  saver,
		req:    req,
		input:  input,
		styles: styles,
	}, nil
}

// Request returns the parameters the editor was opened with.
func (m Model) Request() models.EditRequest {
	return m.req
}

// Value returns the current contents of the name field.
func (m Model) Value() string {
	return m.input.Value()
}

// Message returns the transient validation message, if any.
func (m Model) Message() string {
	return m.message
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles save (enter), cancel (esc) and text input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m.save()
		case tea.KeyEsc:
			return m, closeWith(Closed{})
		}
		m.message = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) save() (Model, tea.Cmd) {
	name := m.input.Value()

	res, err := m.saver.Save(m.ctx, m.req, name)
	if errors.Is(err, service.ErrEmptyName) {
		m.message = emptyNameMessage
		return m, nil
	}
	if err != nil {
		return m, closeWith(Closed{Err: err})
	}

	msg := "Location updated"
	if res.Created {
		msg = "Location saved"
	}
	return m, closeWith(Closed{Saved: true, Message: msg})
}

func closeWith(c Closed) tea.Cmd {
	return func() tea.Msg { return c }
}

// View renders the form.
func (m Model) View() string {
	var sb strings.Builder

	title := "Edit location"
	if m.req.IsCreate() {
		title = "New location"
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Lat: %s  Lon: %s\n\n",
		listview.FormatCoordinate(m.req.Latitude),
		listview.FormatCoordinate(m.req.Longitude)))
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	if m.message != "" {
		sb.WriteString(m.styles.Error.Render(m.message))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Help.Render("enter save • esc cancel"))
	return sb.String()
}
