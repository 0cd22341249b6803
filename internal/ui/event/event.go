// Package event defines the messages the presenters send to the main screen.
// Each one is a tea.Msg; the main screen dispatches them in a single handler.
package event

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/geopins/internal/geo"
	"github.com/mmynk/geopins/internal/models"
)

// Kind enumerates the main screen events.
type Kind int

const (
	// MapTapped carries the tapped Point.
	MapTapped Kind = iota
	// MarkerSelected carries the MarkerID of a tapped persisted marker.
	MarkerSelected
	// RowSelected, RowEdited and RowDeleted carry the row's Location.
	RowSelected
	RowEdited
	RowDeleted
	// SaveConfirmed and SaveCancelled answer the save-this-point prompt.
	SaveConfirmed
	SaveCancelled
)

var kindNames = [...]string{
	MapTapped:      "MapTapped",
	MarkerSelected: "MarkerSelected",
	RowSelected:    "RowSelected",
	RowEdited:      "RowEdited",
	RowDeleted:     "RowDeleted",
	SaveConfirmed:  "SaveConfirmed",
	SaveCancelled:  "SaveCancelled",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Event is a single user action.
type Event struct {
	Kind     Kind
	Point    geo.Point
	MarkerID int64
	Location models.Location
}

// Emit wraps ev in a command.
func Emit(ev Event) tea.Cmd {
	return func() tea.Msg { return ev }
}
