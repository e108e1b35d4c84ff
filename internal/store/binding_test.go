package store

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh7385/mudra/internal/action"
)

func TestBindingRepository_CRUD(t *testing.T) {
	repo := newTestStore(t).Bindings()

	b := &Binding{
		Action:       action.PlayPause,
		PluginName:   "system-control",
		PluginAction: "media-play-pause",
		Enabled:      true,
	}
	require.NoError(t, repo.Create(b))

	_, err := uuid.Parse(b.ID)
	assert.NoError(t, err, "Create assigns a UUID")
	assert.False(t, b.CreatedAt.IsZero())

	got, err := repo.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, action.PlayPause, got.Action)
	assert.Equal(t, "system-control", got.PluginName)
	assert.Equal(t, "media-play-pause", got.PluginAction)
	assert.JSONEq(t, `{}`, string(got.Params))
	assert.True(t, got.Enabled)

	got.PluginAction = "volume-up"
	got.Params = json.RawMessage(`{"step":5}`)
	got.Enabled = false
	require.NoError(t, repo.Update(got))

	byAction, err := repo.GetByAction(action.PlayPause)
	require.NoError(t, err)
	require.NotNil(t, byAction)
	assert.Equal(t, "volume-up", byAction.PluginAction)
	assert.JSONEq(t, `{"step":5}`, string(byAction.Params))
	assert.False(t, byAction.Enabled)

	require.NoError(t, repo.Delete(b.ID))
	_, err = repo.GetByID(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBindingRepository_GetByAction_Missing(t *testing.T) {
	repo := newTestStore(t).Bindings()

	b, err := repo.GetByAction(action.Click)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestBindingRepository_UniqueAction(t *testing.T) {
	repo := newTestStore(t).Bindings()

	require.NoError(t, repo.Create(&Binding{Action: action.Click, PluginName: "pointer", PluginAction: "click"}))
	err := repo.Create(&Binding{Action: action.Click, PluginName: "keyboard", PluginAction: "shortcut"})
	assert.ErrorIs(t, err, ErrConflict)

	other := &Binding{Action: action.Zoom, PluginName: "keyboard", PluginAction: "zoom"}
	require.NoError(t, repo.Create(other))
	other.Action = action.Click
	assert.ErrorIs(t, repo.Update(other), ErrConflict)
}

func TestBindingRepository_List(t *testing.T) {
	repo := newTestStore(t).Bindings()

	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, k := range []action.Kind{action.Zoom, action.Click, action.CloseTab} {
		require.NoError(t, repo.Create(&Binding{Action: k, PluginName: "keyboard", PluginAction: "shortcut"}))
	}

	list, err = repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, action.Click, list[0].Action)
	assert.Equal(t, action.CloseTab, list[1].Action)
	assert.Equal(t, action.Zoom, list[2].Action)
}

func TestBindingRepository_MissingID(t *testing.T) {
	repo := newTestStore(t).Bindings()

	assert.ErrorIs(t, repo.Update(&Binding{ID: "nope", Action: action.Click}), ErrNotFound)
	assert.ErrorIs(t, repo.Delete("nope"), ErrNotFound)
}

func TestBinding_JSON(t *testing.T) {
	b := Binding{ID: "x", Action: action.VolumeUp, PluginName: "system-control", PluginAction: "volume-up", Enabled: true}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action":"volume-up"`)
}
