// Package listview is the list presenter: a paged list of saved locations
// where each row can be selected, edited or deleted.
package listview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/ui"
	"github.com/mmynk/geopins/internal/ui/event"
)

const (
	editLabel   = "[edit]"
	deleteLabel = "[del]"
	// actionsWidth is the right-aligned "[edit] [del]" block.
	actionsWidth = len(editLabel) + 1 + len(deleteLabel)
)

// KeyMap holds the row action bindings. Navigation is handled by list.KeyMap.
type KeyMap struct {
	Select key.Binding
	Edit   key.Binding
	Delete key.Binding
}

// DefaultKeyMap returns the built-in row bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "show on map")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	}
}

// locationItem adapts models.Location to list.Item.
type locationItem struct {
	loc models.Location
}

func (i locationItem) FilterValue() string { return i.loc.Name }

// rowDelegate renders one location per line with its tap targets on the right.
type rowDelegate struct {
	styles ui.Styles
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(locationItem)
	if !ok {
		return
	}
	body := fmt.Sprintf("%s  Lat: %s  Lon: %s",
		it.loc.Name, FormatCoordinate(it.loc.Latitude), FormatCoordinate(it.loc.Longitude))

	bodyWidth := m.Width() - actionsWidth - 1
	style := d.styles.Row
	if index == m.Index() {
		style = d.styles.RowActive
	}
	body = style.Inline(true).MaxWidth(bodyWidth).Render(body)
	if pad := bodyWidth - lipgloss.Width(body); pad > 0 {
		body += strings.Repeat(" ", pad)
	}

	fmt.Fprint(w, body+" "+d.styles.Action.Render(editLabel)+" "+d.styles.Delete.Render(deleteLabel))
}

// Model is the list presenter.
type Model struct {
	list    list.Model
	keys    KeyMap
	focused bool
	styles  ui.Styles
}

// New creates an empty list.
func New(styles ui.Styles) Model {
	l := list.New(nil, rowDelegate{styles: styles}, 60, 5)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	// "d" and "f" belong to the row actions, not paging.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"))

	return Model{list: l, keys: DefaultKeyMap(), styles: styles}
}

// SetSize sets the number of columns and visible rows.
func (m *Model) SetSize(w, h int) {
	m.list.SetSize(max(w, actionsWidth+1), max(h, 1))
}

// SetFocused toggles keyboard handling.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// ReplaceAll clears the list and repopulates it with locations.
func (m *Model) ReplaceAll(locations []models.Location) {
	cursor := m.list.Index()
	items := make([]list.Item, 0, len(locations))
	for _, loc := range locations {
		items = append(items, locationItem{loc: loc})
	}
	m.list.SetItems(items)
	m.list.Select(clamp(cursor, 0, len(items)-1))
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Locations returns a copy of the rows.
func (m Model) Locations() []models.Location {
	items := m.list.Items()
	out := make([]models.Location, 0, len(items))
	for _, it := range items {
		out = append(out, it.(locationItem).loc)
	}
	return out
}

// Cursor returns the index of the highlighted row.
func (m Model) Cursor() int {
	return m.list.Index()
}

// Selected returns the highlighted row.
func (m Model) Selected() (models.Location, bool) {
	it, ok := m.list.SelectedItem().(locationItem)
	if !ok {
		return models.Location{}, false
	}
	return it.loc, true
}

// FormatCoordinate renders a latitude or longitude for display.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and row actions. Mouse coordinates must be relative
// to the list origin.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.list.CursorUp()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.list.CursorDown()
			return m, nil
		case tea.MouseButtonLeft:
			idx, ok := m.rowAt(msg.Y)
			if !ok {
				return m, nil
			}
			m.list.Select(idx)
			return m, m.action(m.targetAt(msg.X))
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			return m, m.action(event.RowSelected)
		case key.Matches(msg, m.keys.Edit):
			return m, m.action(event.RowEdited)
		case key.Matches(msg, m.keys.Delete):
			return m, m.action(event.RowDeleted)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// rowAt maps a line of the current page to an item index.
func (m Model) rowAt(y int) (int, bool) {
	p := m.list.Paginator
	if y < 0 || y >= p.ItemsOnPage(m.Len()) {
		return 0, false
	}
	return p.Page*p.PerPage + y, true
}

// targetAt maps a column to the tap target under it.
func (m Model) targetAt(x int) event.Kind {
	editStart := m.list.Width() - actionsWidth
	deleteStart := editStart + len(editLabel) + 1
	switch {
	case x >= deleteStart:
		return event.RowDeleted
	case x >= editStart && x < editStart+len(editLabel):
		return event.RowEdited
	default:
		return event.RowSelected
	}
}

func (m Model) action(kind event.Kind) tea.Cmd {
	loc, ok := m.Selected()
	if !ok {
		return nil
	}
	return event.Emit(event.Event{Kind: kind, Location: loc, Point: loc.Point()})
}

// View renders the current page.
func (m Model) View() string {
	if m.Len() == 0 {
		return m.styles.Help.Render("No saved locations. Tap the map to add one.")
	}
	return m.list.View()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
