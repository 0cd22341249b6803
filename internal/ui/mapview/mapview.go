// Package mapview is the map presenter: a terminal canvas showing one marker per
// saved location, at most one temporary marker and at most one highlight circle.
package mapview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/geopins/internal/geo"
	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/ui"
	"github.com/mmynk/geopins/internal/ui/event"
)

const (
	minZoom = 2.0
	maxZoom = 20.0
)

// Marker is a map overlay pinned to a coordinate. Persisted markers carry the
// id of the location they were rendered from.
type Marker struct {
	ID    int64
	Point geo.Point
	Title string
}

// Camera is the map's viewport centre and zoom level.
type Camera struct {
	Center geo.Point
	Zoom   float64
}

// Model is the map presenter.
type Model struct {
	camera Camera
	width  int
	height int // grid rows; the status line is extra

	markers   []Marker
	temporary *Marker
	highlight *geo.Circle
	info      string

	cursorCol int
	cursorRow int
	focused   bool

	styles ui.Styles
}

// New creates a map centred on center. SetSize must be called before rendering.
func New(center geo.Point, zoom float64, styles ui.Styles) Model {
	return Model{
		camera: Camera{Center: center, Zoom: zoom},
		styles: styles,
	}
}

// SetSize sets the canvas size in cells, including the status line, and
// moves the crosshair to the centre.
func (m *Model) SetSize(w, h int) {
	m.width = max(w, 1)
	m.height = max(h-1, 1)
	m.resetCursor()
}

// Size returns the grid size in cells, excluding the status line.
func (m Model) Size() (int, int) {
	return m.width, m.height
}

// SetFocused toggles keyboard handling.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// Camera returns the current camera.
func (m Model) Camera() Camera {
	return m.camera
}

// Projection returns the projection for the current camera and size.
func (m Model) Projection() geo.Projection {
	return geo.NewProjection(m.camera.Center, m.camera.Zoom, m.width, m.height)
}

// CenterOn moves the camera to p at the given zoom.
func (m *Model) CenterOn(p geo.Point, zoom float64) {
	m.camera = Camera{Center: p, Zoom: clampZoom(zoom)}
	m.resetCursor()
}

// RenderAll replaces every persisted marker with one per location.
func (m *Model) RenderAll(locations []models.Location) {
	m.markers = make([]Marker, 0, len(locations))
	for _, loc := range locations {
		m.markers = append(m.markers, Marker{ID: loc.ID, Point: loc.Point(), Title: loc.Name})
	}
	m.info = ""
}

// Markers returns a copy of the persisted markers.
func (m Model) Markers() []Marker {
	return append([]Marker(nil), m.markers...)
}

// PlaceTemporary creates or moves the temporary marker and recentres on it.
func (m *Model) PlaceTemporary(p geo.Point) {
	if m.temporary == nil {
		m.temporary = &Marker{}
	}
	m.temporary.Point = p
	m.temporary.Title = fmt.Sprintf("Temporary point at %v, %v", p.Lat, p.Lon)
	m.info = m.temporary.Title

	m.camera.Center = p
	m.resetCursor()
}

// Temporary returns the temporary marker, if any.
func (m Model) Temporary() (Marker, bool) {
	if m.temporary == nil {
		return Marker{}, false
	}
	return *m.temporary, true
}

// ClearTemporary removes the temporary marker.
func (m *Model) ClearTemporary() {
	if m.temporary != nil && m.info == m.temporary.Title {
		m.info = ""
	}
	m.temporary = nil
}

// Highlight draws a circle of radius metres around p, replacing any previous one.
func (m *Model) Highlight(p geo.Point, radius float64) {
	m.highlight = &geo.Circle{Center: p, Radius: radius}
}

// ClearHighlight removes the highlight circle.
func (m *Model) ClearHighlight() {
	m.highlight = nil
}

// HighlightCircle returns the current highlight, if any.
func (m Model) HighlightCircle() (geo.Circle, bool) {
	if m.highlight == nil {
		return geo.Circle{}, false
	}
	return *m.highlight, true
}

// HitTest reports the persisted marker whose on-screen footprint contains p.
// A marker is anchored centre/bottom and covers the single cell holding its
// point, so the test is done in cell space.
func (m Model) HitTest(p geo.Point) (int64, bool) {
	proj := m.Projection()
	tapCol, tapRow, ok := proj.ToCell(p)
	if !ok {
		return 0, false
	}
	for i := len(m.markers) - 1; i >= 0; i-- {
		mk := m.markers[i]
		col, row, ok := proj.ToCell(mk.Point)
		if ok && col == tapCol && row == tapRow {
			return mk.ID, true
		}
	}
	return 0, false
}

// ShowInfo shows the title of the marker with the given id.
func (m *Model) ShowInfo(id int64) bool {
	for _, mk := range m.markers {
		if mk.ID == id {
			m.info = mk.Title
			return true
		}
	}
	return false
}

// Info returns the current info label.
func (m Model) Info() string {
	return m.info
}

// RemoveMarker removes the persisted marker tagged with id.
func (m *Model) RemoveMarker(id int64) bool {
	for i, mk := range m.markers {
		if mk.ID == id {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return true
		}
	}
	return false
}

// MarkerNear reports whether a persisted marker lies within tolerance of p on both axes.
func (m Model) MarkerNear(p geo.Point, tolerance float64) bool {
	for _, mk := range m.markers {
		if mk.Point.Equal(p, tolerance) {
			return true
		}
	}
	return false
}

// CursorPoint returns the coordinate under the crosshair.
func (m Model) CursorPoint() geo.Point {
	return m.Projection().FromCell(m.cursorCol, m.cursorRow)
}

// MoveCursorTo puts the crosshair on a cell, clamped to the grid.
func (m *Model) MoveCursorTo(col, row int) {
	m.cursorCol = clamp(col, 0, m.width-1)
	m.cursorRow = clamp(row, 0, m.height-1)
}

func (m *Model) resetCursor() {
	m.cursorCol = m.width / 2
	m.cursorRow = m.height / 2
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles crosshair movement, zoom and taps. A tap emits event.MapTapped.
// Mouse coordinates must be relative to the canvas origin.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.X < 0 || msg.X >= m.width || msg.Y < 0 || msg.Y >= m.height {
			return m, nil
		}
		m.MoveCursorTo(msg.X, msg.Y)
		return m, m.tap()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.MoveCursorTo(m.cursorCol, m.cursorRow-1)
		case "down", "j":
			m.MoveCursorTo(m.cursorCol, m.cursorRow+1)
		case "left", "h":
			m.MoveCursorTo(m.cursorCol-1, m.cursorRow)
		case "right", "l":
			m.MoveCursorTo(m.cursorCol+1, m.cursorRow)
		case "c":
			// Pan so the crosshair becomes the centre.
			m.camera.Center = m.CursorPoint()
			m.resetCursor()
		case "+", "=":
			m.camera.Zoom = clampZoom(m.camera.Zoom + 1)
		case "-":
			m.camera.Zoom = clampZoom(m.camera.Zoom - 1)
		case "enter", " ":
			return m, m.tap()
		}
	}
	return m, nil
}

func (m Model) tap() tea.Cmd {
	return event.Emit(event.Event{Kind: event.MapTapped, Point: m.CursorPoint()})
}

// View renders the grid followed by a status line.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	proj := m.Projection()
	cells := make([][]cellKind, m.height)
	for row := range cells {
		cells[row] = make([]cellKind, m.width)
		for col := range cells[row] {
			if row%4 == 0 && col%8 == 0 {
				cells[row][col] = cellGrid
			}
			if m.highlight != nil && m.highlight.Contains(proj.FromCell(col, row)) {
				cells[row][col] = cellHighlight
			}
		}
	}
	for _, mk := range m.markers {
		if col, row, ok := proj.ToCell(mk.Point); ok {
			cells[row][col] = cellMarker
		}
	}
	if m.temporary != nil {
		if col, row, ok := proj.ToCell(m.temporary.Point); ok {
			cells[row][col] = cellTemporary
		}
	}

	var sb strings.Builder
	for row := range cells {
		for col, kind := range cells[row] {
			if m.focused && col == m.cursorCol && row == m.cursorRow {
				sb.WriteString(m.styles.Cursor.Render(kind.cursorGlyph()))
				continue
			}
			sb.WriteString(m.renderCell(kind))
		}
		sb.WriteString("\n")
	}

	status := fmt.Sprintf("center %.5f, %.5f  zoom %.1f", m.camera.Center.Lat, m.camera.Center.Lon, m.camera.Zoom)
	if m.info != "" {
		status = m.info + "  |  " + status
	}
	sb.WriteString(m.styles.Help.MaxWidth(m.width).Render(status))
	return sb.String()
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellGrid
	cellHighlight
	cellMarker
	cellTemporary
)

func (m Model) renderCell(kind cellKind) string {
	switch kind {
	case cellGrid:
		return m.styles.Grid.Render("·")
	case cellHighlight:
		return m.styles.Highlight.Render("░")
	case cellMarker:
		return m.styles.Marker.Render("V")
	case cellTemporary:
		return m.styles.Temporary.Render("+")
	default:
		return " "
	}
}

// cursorGlyph keeps markers visible under the crosshair.
func (k cellKind) cursorGlyph() string {
	switch k {
	case cellMarker:
		return "V"
	case cellTemporary:
		return "+"
	default:
		return "x"
	}
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
