// Package app is the main screen. It owns the session copy of the locations,
// wires the map and list presenters together and dispatches every user action
// through Handle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/geopins/internal/geo"
	"github.com/mmynk/geopins/internal/metrics"
	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/service"
	"github.com/mmynk/geopins/internal/ui"
	"github.com/mmynk/geopins/internal/ui/editor"
	"github.com/mmynk/geopins/internal/ui/event"
	"github.com/mmynk/geopins/internal/ui/listview"
	"github.com/mmynk/geopins/internal/ui/mapview"
)

const noticeTTL = 3 * time.Second

// Locations is the location service as seen by the main screen.
type Locations interface {
	Bootstrap(ctx context.Context) ([]models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Get(ctx context.Context, id int64) (*models.Location, error)
	Delete(ctx context.Context, id int64) error
	Save(ctx context.Context, req models.EditRequest, name string) (service.SaveResult, error)
}

// State is the main screen's interaction state.
type State int

const (
	StateIdle State = iota
	StateAwaitingSaveConfirmation
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingSaveConfirmation:
		return "AwaitingSaveConfirmation"
	case StateEditing:
		return "Editing"
	default:
		return "Unknown"
	}
}

type focus int

const (
	focusMap focus = iota
	focusList
)

// Options tunes the camera behavior.
type Options struct {
	DefaultZoom     float64
	SelectZoom      float64
	HighlightRadius float64
	Metrics         *metrics.Metrics
}

// DefaultOptions mirrors the built-in configuration.
func DefaultOptions() Options {
	return Options{DefaultZoom: 17.0, SelectZoom: 18.0, HighlightRadius: 50.0}
}

type noticeExpired struct{ id int }

// Model is the main screen.
type Model struct {
	ctx  context.Context
	svc  Locations
	opts Options

	mapView mapview.Model
	list    listview.Model
	editor  *editor.Model

	state     State
	focus     focus
	locations []models.Location
	pending   geo.Point

	// highlighted is the id of the row whose circle is on the map.
	highlighted int64

	notice   string
	noticeID int
	err      error

	width  int
	height int
	styles ui.Styles
}

// New runs the first load: schema, seed, load, centre on the first row.
// A storage failure here is returned instead of starting the screen.
func New(ctx context.Context, svc Locations, opts Options) (*Model, error) {
	styles := ui.DefaultStyles()
	m := &Model{
		ctx:     ctx,
		svc:     svc,
		opts:    opts,
		mapView: mapview.New(geo.Point{}, opts.DefaultZoom, styles),
		list:    listview.New(styles),
		styles:  styles,

		highlighted: models.NoLocationID,
	}

	locations, err := svc.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("first load: %w", err)
	}
	m.apply(locations)
	if len(locations) > 0 {
		m.mapView.CenterOn(locations[0].Point(), opts.DefaultZoom)
	}

	m.setFocus(focusMap)
	m.layout(80, 24)
	return m, nil
}

// State returns the current interaction state.
func (m *Model) State() State {
	return m.state
}

// Locations returns the session copy of the stored locations.
func (m *Model) Locations() []models.Location {
	return append([]models.Location(nil), m.locations...)
}

// Map returns the map presenter.
func (m *Model) Map() mapview.Model {
	return m.mapView
}

// List returns the list presenter.
func (m *Model) List() listview.Model {
	return m.list
}

// Editor returns the open edit/create screen, if any.
func (m *Model) Editor() (editor.Model, bool) {
	if m.editor == nil {
		return editor.Model{}, false
	}
	return *m.editor, true
}

// Notice returns the transient notification text.
func (m *Model) Notice() string {
	return m.notice
}

// Err returns the storage failure that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Resume reloads every row and rebuilds both presenters from scratch.
func (m *Model) Resume() error {
	locations, err := m.svc.List(m.ctx)
	if err != nil {
		return err
	}
	m.apply(locations)
	return nil
}

func (m *Model) apply(locations []models.Location) {
	m.locations = locations
	m.mapView.RenderAll(locations)
	m.list.ReplaceAll(locations)
	m.opts.Metrics.SetLocations(len(locations))
}

// Handle dispatches one event. It is the only place main screen state changes
// in response to user actions.
func (m *Model) Handle(ev event.Event) tea.Cmd {
	m.opts.Metrics.CountEvent(ev.Kind.String())
	slog.Debug("Event", "kind", ev.Kind.String(), "state", m.state.String())

	switch ev.Kind {
	case event.MapTapped:
		if m.state != StateIdle {
			return nil
		}
		if id, ok := m.mapView.HitTest(ev.Point); ok {
			return m.Handle(event.Event{Kind: event.MarkerSelected, MarkerID: id})
		}
		m.mapView.PlaceTemporary(ev.Point)
		m.pending = ev.Point
		m.state = StateAwaitingSaveConfirmation

	case event.MarkerSelected:
		m.mapView.ShowInfo(ev.MarkerID)

	case event.SaveConfirmed:
		if m.state != StateAwaitingSaveConfirmation {
			return nil
		}
		return m.openEditor(models.NewCreateRequest(m.pending))

	case event.SaveCancelled:
		if m.state != StateAwaitingSaveConfirmation {
			return nil
		}
		m.mapView.ClearTemporary()
		m.state = StateIdle

	case event.RowSelected:
		if m.state != StateIdle {
			return nil
		}
		p := ev.Location.Point()
		m.mapView.CenterOn(p, m.opts.SelectZoom)
		m.mapView.Highlight(p, m.opts.HighlightRadius)
		m.highlighted = ev.Location.ID

	case event.RowEdited:
		if m.state != StateIdle {
			return nil
		}
		return m.openEditor(models.NewEditRequest(ev.Location))

	case event.RowDeleted:
		if m.state != StateIdle {
			return nil
		}
		if err := m.svc.Delete(m.ctx, ev.Location.ID); err != nil {
			return m.fail(err)
		}
		m.mapView.RemoveMarker(ev.Location.ID)
		if m.highlighted == ev.Location.ID {
			m.mapView.ClearHighlight()
			m.highlighted = models.NoLocationID
		}
		if err := m.Resume(); err != nil {
			return m.fail(err)
		}
		return m.notify("Location deleted")
	}
	return nil
}

func (m *Model) openEditor(req models.EditRequest) tea.Cmd {
	ed, err := editor.New(m.ctx, m.svc, req, m.styles)
	if err != nil {
		return m.fail(err)
	}
	m.editor = &ed
	m.state = StateEditing
	return ed.Init()
}

func (m *Model) closeEditor(c editor.Closed) tea.Cmd {
	m.editor = nil
	m.state = StateIdle
	m.mapView.ClearTemporary()

	if c.Err != nil {
		return m.fail(c.Err)
	}
	if err := m.Resume(); err != nil {
		return m.fail(err)
	}
	if c.Message != "" {
		return m.notify(c.Message)
	}
	return nil
}

func (m *Model) notify(text string) tea.Cmd {
	m.noticeID++
	m.notice = text
	id := m.noticeID
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpired{id: id}
	})
}

// fail records a storage failure and ends the program.
func (m *Model) fail(err error) tea.Cmd {
	slog.Error("Storage unavailable, closing", "error", err)
	m.err = err
	return tea.Quit
}
