package app

import (
	"fmt"
	"strings"

	"github.com/mmynk/geopins/internal/ui/listview"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.state == StateEditing && m.editor != nil {
		return m.editor.View()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("geopins"))
	sb.WriteString(m.styles.Help.Render(fmt.Sprintf("  %d saved", len(m.locations))))
	sb.WriteString("\n")
	sb.WriteString(m.mapView.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Header.Render("Saved locations"))
	sb.WriteString("\n")
	sb.WriteString(m.list.View())
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m *Model) footer() string {
	if m.state == StateAwaitingSaveConfirmation {
		return m.styles.Prompt.Render(fmt.Sprintf("Save this point? (%s, %s)  [y] save  [n] cancel",
			listview.FormatCoordinate(m.pending.Lat), listview.FormatCoordinate(m.pending.Lon)))
	}
	if m.notice != "" {
		return m.styles.Notice.Render(m.notice)
	}
	if m.focus == focusMap {
		return m.styles.Help.Render("arrows move • enter tap • c centre • +/- zoom • tab list • r reload • q quit")
	}
	return m.styles.Help.Render("↑/↓ move • enter show • e edit • d delete • tab map • r reload • q quit")
}
