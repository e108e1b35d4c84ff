// Package tray provides the system tray menu for mudra: detection toggle,
// last gesture and action, dashboard link and quit.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/lokesh7385/mudra/internal/app"
	"github.com/lokesh7385/mudra/internal/gesture"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle    func(enabled bool) error
	onDashboard func()
	onQuit      func()
	enabled     bool
	last        string
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuLast   *systray.MenuItem
}

// New creates a Tray showing the given initial enabled state.
func New(enabled bool) *Tray {
	return &Tray{
		enabled: enabled,
		last:    lastLabel(nil),
	}
}

// OnToggle sets the callback run when the user flips detection. A
// returned error reverts the menu state.
func (t *Tray) OnToggle(fn func(enabled bool) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnDashboard sets the callback for the dashboard menu item.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback run before the tray exits.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit closes the tray from outside the menu.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra hand gesture control")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleLabel(t.enabled), "Toggle gesture detection")
	systray.AddSeparator()
	t.menuLast = systray.AddMenuItem(t.last, "Last gesture and action")
	t.menuLast.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.toggle()
			case <-menuDashboard.ClickedCh:
				t.dashboard()
			case <-menuQuit.ClickedCh:
				t.quit()
				systray.Quit()
				return
			}
		}
	}()
}

// toggle flips the enabled state and reports it to the callback.
func (t *Tray) toggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	callback := t.onToggle
	t.mu.Unlock()

	if callback != nil {
		if err := callback(enabled); err != nil {
			enabled = !enabled
			t.mu.Lock()
			t.enabled = enabled
			t.mu.Unlock()
		}
	}
	t.SetEnabled(enabled)
}

func (t *Tray) dashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) quit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// SetEnabled updates the toggle item, for changes made outside the tray.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleLabel(enabled))
	}
}

// ShowEvent displays ev as the last gesture and action. Events without an
// action are ignored so the line does not flicker every frame.
func (t *Tray) ShowEvent(ev app.Event) {
	if ev.Action.IsNone() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = lastLabel(&ev)
	if t.menuLast != nil {
		t.menuLast.SetTitle(t.last)
	}
}

// Watch shows every event from events until the channel closes.
func (t *Tray) Watch(events <-chan app.Event) {
	for ev := range events {
		t.ShowEvent(ev)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Last returns the text of the last gesture line.
func (t *Tray) Last() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

func lastLabel(ev *app.Event) string {
	if ev == nil {
		return "Last: none"
	}
	g := ev.Gesture.Kind.String()
	if ev.Gesture.Kind == gesture.TwoFingers {
		// Cursor coordinates change every frame.
		return "Last: " + g + " → " + ev.Action.Kind.String()
	}
	return fmt.Sprintf("Last: %s → %s", g, ev.Action)
}
