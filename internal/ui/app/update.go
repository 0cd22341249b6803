package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/geopins/internal/ui/editor"
	"github.com/mmynk/geopins/internal/ui/event"
)

// Row offsets of the main screen regions.
const (
	titleRows  = 1
	footerRows = 1
)

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Presenter output arrives as event.Event and is
// routed to Handle; while the editor is open it receives all other input.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil

	case event.Event:
		return m, m.Handle(msg)

	case editor.Closed:
		return m, m.closeEditor(msg)

	case noticeExpired:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.state == StateEditing && m.editor != nil {
		ed, cmd := m.editor.Update(msg)
		m.editor = &ed
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	if m.state == StateAwaitingSaveConfirmation {
		switch key.String() {
		case "y", "enter":
			return m.Handle(event.Event{Kind: event.SaveConfirmed})
		case "n", "esc":
			return m.Handle(event.Event{Kind: event.SaveCancelled})
		}
		return nil
	}

	switch key.String() {
	case "q":
		return tea.Quit
	case "tab", "shift+tab":
		if m.focus == focusMap {
			m.setFocus(focusList)
		} else {
			m.setFocus(focusMap)
		}
		return nil
	case "r":
		if err := m.Resume(); err != nil {
			return m.fail(err)
		}
		return nil
	}

	var cmd tea.Cmd
	if m.focus == focusMap {
		m.mapView, cmd = m.mapView.Update(key)
	} else {
		m.list, cmd = m.list.Update(key)
	}
	return cmd
}

func (m *Model) handleMouse(mouse tea.MouseMsg) tea.Cmd {
	if m.state != StateIdle {
		return nil
	}

	mapTop, listTop := m.regions()
	_, mapRows := m.mapView.Size()

	var cmd tea.Cmd
	switch {
	case mouse.Y >= mapTop && mouse.Y < mapTop+mapRows:
		m.setFocus(focusMap)
		mouse.Y -= mapTop
		m.mapView, cmd = m.mapView.Update(mouse)
	case mouse.Y >= listTop:
		m.setFocus(focusList)
		mouse.Y -= listTop
		m.list, cmd = m.list.Update(mouse)
	}
	return cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.mapView.SetFocused(f == focusMap)
	m.list.SetFocused(f == focusList)
}

// layout splits the screen: title, map (grid + status line), list header,
// list rows, footer.
func (m *Model) layout(w, h int) {
	m.width = w
	m.height = h

	mapHeight := max((h-titleRows-footerRows-1)*3/5, 4)
	listHeight := max(h-titleRows-footerRows-1-mapHeight, 1)

	m.mapView.SetSize(w, mapHeight)
	m.list.SetSize(w, listHeight)
}

// regions returns the first screen row of the map grid and of the list rows.
func (m *Model) regions() (mapTop, listTop int) {
	_, mapRows := m.mapView.Size()
	mapTop = titleRows
	// grid rows, status line, list header
	listTop = mapTop + mapRows + 1 + 1
	return mapTop, listTop
}
