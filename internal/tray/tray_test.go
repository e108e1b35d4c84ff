package tray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/app"
	"github.com/lokesh7385/mudra/internal/gesture"
)

func TestTray_Toggle(t *testing.T) {
	tr := New(true)

	var got []bool
	tr.OnToggle(func(enabled bool) error {
		got = append(got, enabled)
		return nil
	})

	tr.toggle()
	assert.False(t, tr.IsEnabled())
	tr.toggle()
	assert.True(t, tr.IsEnabled())
	assert.Equal(t, []bool{false, true}, got)
}

func TestTray_ToggleRevertsOnError(t *testing.T) {
	tr := New(false)
	tr.OnToggle(func(bool) error { return errors.New("disk full") })

	tr.toggle()
	assert.False(t, tr.IsEnabled())
}

func TestTray_Callbacks(t *testing.T) {
	tr := New(true)

	var dashboards, quits int
	tr.OnDashboard(func() { dashboards++ })
	tr.OnQuit(func() { quits++ })

	tr.dashboard()
	tr.quit()
	assert.Equal(t, 1, dashboards)
	assert.Equal(t, 1, quits)

	// Unset callbacks are fine.
	New(true).dashboard()
}

func TestTray_ShowEvent(t *testing.T) {
	tr := New(true)
	assert.Equal(t, "Last: none", tr.Last())

	tr.ShowEvent(app.Event{Gesture: gesture.Of(gesture.OpenPalm), Action: action.Of(action.PlayPause)})
	assert.Equal(t, "Last: open-palm → play-pause", tr.Last())

	// Frames without an action keep the previous line.
	tr.ShowEvent(app.Event{Gesture: gesture.Of(gesture.Unknown)})
	assert.Equal(t, "Last: open-palm → play-pause", tr.Last())

	tr.ShowEvent(app.Event{Gesture: gesture.NewTwoFingers(0.5, 0.5), Action: action.NewMoveMouse(0.5, 0.5)})
	assert.Equal(t, "Last: two-fingers → move-mouse", tr.Last())

	tr.ShowEvent(app.Event{Gesture: gesture.NewHandsDistance(0.3), Action: action.NewZoom(action.In)})
	assert.Equal(t, "Last: hands-distance → zoom(in)", tr.Last())
}

func TestTray_Watch(t *testing.T) {
	tr := New(true)
	events := make(chan app.Event, 2)
	events <- app.Event{Gesture: gesture.Of(gesture.Pinch), Action: action.Of(action.Click)}
	close(events)

	tr.Watch(events)
	assert.Equal(t, "Last: pinch → click", tr.Last())
}
