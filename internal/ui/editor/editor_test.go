package editor

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/geopins/internal/geo"
	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/service"
	"github.com/mmynk/geopins/internal/storage"
	"github.com/mmynk/geopins/internal/ui"
)

type saveCall struct {
	req  models.EditRequest
	name string
}

// fakeSaver records calls and applies the same empty-name rule as the service.
type fakeSaver struct {
	locations map[int64]models.Location
	saves     []saveCall
	getErr    error
	saveErr   error
}

func (f *fakeSaver) Get(_ context.Context, id int64) (*models.Location, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	loc, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (f *fakeSaver) Save(_ context.Context, req models.EditRequest, name string) (service.SaveResult, error) {
	if name == "" {
		return service.SaveResult{}, service.ErrEmptyName
	}
	f.saves = append(f.saves, saveCall{req: req, name: name})
	if f.saveErr != nil {
		return service.SaveResult{}, f.saveErr
	}
	return service.SaveResult{ID: 42, Created: req.IsCreate()}, nil
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func closedFrom(t *testing.T, cmd tea.Cmd) Closed {
	t.Helper()
	require.NotNil(t, cmd)
	c, ok := cmd().(Closed)
	require.True(t, ok, "expected Closed message")
	return c
}

func TestCreateSavesNewLocation(t *testing.T) {
	saver := &fakeSaver{}
	req := models.NewCreateRequest(geo.Point{Lat: 19.25, Lon: -103.7})

	m, err := New(context.Background(), saver, req, ui.DefaultStyles())
	require.NoError(t, err)
	assert.Empty(t, m.Value())

	m = typeText(m, "X")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	c := closedFrom(t, cmd)
	assert.True(t, c.Saved)
	assert.Equal(t, "Location saved", c.Message)
	require.Len(t, saver.saves, 1)
	assert.Equal(t, saveCall{req: req, name: "X"}, saver.saves[0])
}

func TestEditPrefillsName(t *testing.T) {
	saver := &fakeSaver{locations: map[int64]models.Location{
		3: {ID: 3, Name: "Old", Latitude: 1, Longitude: 2},
	}}
	req := models.NewEditRequest(saver.locations[3])

	m, err := New(context.Background(), saver, req, ui.DefaultStyles())
	require.NoError(t, err)
	assert.Equal(t, "Old", m.Value())
	assert.Contains(t, m.View(), "Edit location")

	m.input.SetValue("Y")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	c := closedFrom(t, cmd)
	assert.True(t, c.Saved)
	assert.Equal(t, "Location updated", c.Message)
	assert.Equal(t, int64(3), saver.saves[0].req.LocationID)
}

func TestEmptyNameShowsMessageAndStaysOpen(t *testing.T) {
	saver := &fakeSaver{}
	m, err := New(context.Background(), saver, models.NewCreateRequest(geo.Point{}), ui.DefaultStyles())
	require.NoError(t, err)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, emptyNameMessage, m.Message())
	assert.Contains(t, m.View(), emptyNameMessage)
	assert.Empty(t, saver.saves)

	m = typeText(m, "a")
	assert.Empty(t, m.Message(), "typing clears the message")
}

func TestCancelDoesNotTouchStore(t *testing.T) {
	saver := &fakeSaver{}
	m, err := New(context.Background(), saver, models.NewCreateRequest(geo.Point{}), ui.DefaultStyles())
	require.NoError(t, err)

	m = typeText(m, "Unsaved")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	c := closedFrom(t, cmd)
	assert.False(t, c.Saved)
	assert.NoError(t, c.Err)
	assert.Empty(t, saver.saves)
}

func TestStorageFailures(t *testing.T) {
	boom := errors.Join(storage.ErrUnavailable, errors.New("disk gone"))

	_, err := New(context.Background(), &fakeSaver{getErr: boom}, models.EditRequest{LocationID: 1}, ui.DefaultStyles())
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	m, err := New(context.Background(), &fakeSaver{saveErr: boom}, models.NewCreateRequest(geo.Point{}), ui.DefaultStyles())
	require.NoError(t, err)
	m = typeText(m, "Z")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	c := closedFrom(t, cmd)
	assert.False(t, c.Saved)
	assert.ErrorIs(t, c.Err, storage.ErrUnavailable)
}
