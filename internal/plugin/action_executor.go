package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/store"
)

// ErrUnbound is returned when an action has no binding at all.
var ErrUnbound = errors.New("action has no binding")

// BindingSource looks up stored bindings. *store.BindingRepository
// satisfies it.
type BindingSource interface {
	GetByAction(k action.Kind) (*store.Binding, error)
}

// ShortcutModifier returns the modifier browsers use for zoom and tab
// shortcuts on goos.
func ShortcutModifier(goos string) string {
	if goos == "darwin" {
		return "command"
	}
	return "ctrl"
}

// DefaultBindings maps every action kind to the bundled plugins for the
// running OS. Volume steps by 2%. Zoom params are keyed by direction.
func DefaultBindings() map[action.Kind]store.Binding {
	return defaultBindings(runtime.GOOS)
}

func defaultBindings(goos string) map[action.Kind]store.Binding {
	mod := ShortcutModifier(goos)
	shortcut := func(key string) string {
		return fmt.Sprintf(`{"key":%q,"modifiers":[%q]}`, key, mod)
	}
	bind := func(k action.Kind, plugin, pluginAction, params string) store.Binding {
		b := store.Binding{Action: k, PluginName: plugin, PluginAction: pluginAction, Enabled: true}
		if params != "" {
			b.Params = json.RawMessage(params)
		}
		return b
	}

	return map[action.Kind]store.Binding{
		action.PlayPause:  bind(action.PlayPause, "system-control", "media-play-pause", ""),
		action.VolumeUp:   bind(action.VolumeUp, "system-control", "volume-up", `{"step":2}`),
		action.VolumeDown: bind(action.VolumeDown, "system-control", "volume-down", `{"step":2}`),
		action.Click:      bind(action.Click, "pointer", "click", ""),
		action.MoveMouse:  bind(action.MoveMouse, "pointer", "move", ""),
		action.Zoom:       bind(action.Zoom, "keyboard", "shortcut", `{"in":`+shortcut("=")+`,"out":`+shortcut("-")+`}`),
		action.CloseTab:   bind(action.CloseTab, "keyboard", "shortcut", shortcut("w")),
	}
}

// ActionExecutor implements action.Executor by running the plugin bound to
// each action kind. Stored bindings override the defaults.
type ActionExecutor struct {
	manager  *Manager
	executor *Executor
	bindings BindingSource
	defaults map[action.Kind]store.Binding
	log      *slog.Logger
}

// NewActionExecutor creates an ActionExecutor. bindings may be nil to use
// only the defaults.
func NewActionExecutor(manager *Manager, executor *Executor, bindings BindingSource, log *slog.Logger) *ActionExecutor {
	if log == nil {
		log = slog.Default()
	}
	return &ActionExecutor{
		manager:  manager,
		executor: executor,
		bindings: bindings,
		defaults: DefaultBindings(),
		log:      log,
	}
}

// Resolve returns the effective binding for k.
func (e *ActionExecutor) Resolve(k action.Kind) (store.Binding, error) {
	if e.bindings != nil {
		b, err := e.bindings.GetByAction(k)
		if err != nil {
			return store.Binding{}, fmt.Errorf("look up binding for %s: %w", k, err)
		}
		if b != nil {
			return *b, nil
		}
	}
	if b, ok := e.defaults[k]; ok {
		return b, nil
	}
	return store.Binding{}, fmt.Errorf("%s: %w", k, ErrUnbound)
}

// Effective lists the resolved binding for every action kind.
func (e *ActionExecutor) Effective() ([]store.Binding, error) {
	out := make([]store.Binding, 0, len(action.Kinds))
	for _, k := range action.Kinds {
		b, err := e.Resolve(k)
		if errors.Is(err, ErrUnbound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Execute runs the plugin bound to a. Disabled bindings and None actions
// are skipped without error.
func (e *ActionExecutor) Execute(ctx context.Context, a action.Action) error {
	if a.IsNone() {
		return nil
	}

	b, err := e.Resolve(a.Kind)
	if err != nil {
		return err
	}
	if !b.Enabled {
		e.log.Debug("binding disabled", "action", a.Kind)
		return nil
	}

	p, err := e.manager.Get(b.PluginName)
	if err != nil {
		return fmt.Errorf("%s: plugin %q: %w", a.Kind, b.PluginName, err)
	}
	if !p.Manifest.Supports(b.PluginAction) {
		return fmt.Errorf("%s: plugin %q has no action %q", a.Kind, b.PluginName, b.PluginAction)
	}

	params, err := BuildParams(b.Params, a)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Kind, err)
	}

	req := &Request{
		Action:  b.PluginAction,
		Trigger: a.Kind.String(),
		Config:  p.Config,
		Params:  params,
	}

	resp, err := e.executor.Execute(ctx, p, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s %s: %s", b.PluginName, b.PluginAction, resp.Error)
	}

	e.log.Debug("action executed", "action", a, "plugin", b.PluginName, "plugin_action", b.PluginAction)
	return nil
}

// BuildParams merges the action payload into the binding params. MoveMouse
// adds x and y. Zoom selects the "in" or "out" object when present.
func BuildParams(base json.RawMessage, a action.Action) (json.RawMessage, error) {
	m := map[string]any{}
	if len(base) > 0 {
		if err := json.Unmarshal(base, &m); err != nil {
			return nil, fmt.Errorf("binding params: %w", err)
		}
	}

	switch a.Kind {
	case action.MoveMouse:
		m["x"] = a.X
		m["y"] = a.Y
	case action.Zoom:
		if sub, ok := m[string(a.Direction)].(map[string]any); ok {
			m = sub
		}
		m["direction"] = string(a.Direction)
	}

	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}
