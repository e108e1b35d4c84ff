package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptPlugin writes a shell script plugin into a temp dir.
func scriptPlugin(t *testing.T, name, script string) *Plugin {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping shell plugin test on Windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, name+".sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))

	return &Plugin{
		Manifest:   Manifest{Name: name, Version: "1.0.0", Executable: name + ".sh"},
		Path:       dir,
		Executable: path,
	}
}

func TestExecutor_Execute(t *testing.T) {
	p := scriptPlugin(t, "hello", `cat >/dev/null
echo '{"success":true,"data":{"message":"hello world"}}'
`)

	resp, err := NewExecutor(5*time.Second).Execute(context.Background(), p, &Request{Action: "greet"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.JSONEq(t, `{"message":"hello world"}`, string(resp.Data))
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	p := scriptPlugin(t, "echo", `INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	req := &Request{
		Action:  "move",
		Trigger: "move-mouse",
		Params:  json.RawMessage(`{"x":0.25,"y":0.75}`),
	}

	resp, err := NewExecutor(5*time.Second).Execute(context.Background(), p, req)
	require.NoError(t, err)

	var data struct {
		Received Request `json:"received"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "move", data.Received.Action)
	assert.Equal(t, "move-mouse", data.Received.Trigger)
	assert.JSONEq(t, `{"x":0.25,"y":0.75}`, string(data.Received.Params))
}

func TestExecutor_Timeout(t *testing.T) {
	p := scriptPlugin(t, "slow", `sleep 10
echo '{"success":true}'
`)

	_, err := NewExecutor(100*time.Millisecond).Execute(context.Background(), p, &Request{Action: "slow"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestExecutor_ContextCancelled(t *testing.T) {
	p := scriptPlugin(t, "slow", `sleep 10
echo '{"success":true}'
`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecutor(5*time.Second).Execute(ctx, p, &Request{Action: "slow"})
	assert.Error(t, err)
}

func TestExecutor_Execute_ErrorResponse(t *testing.T) {
	p := scriptPlugin(t, "fail", `echo '{"success":false,"error":"something went wrong"}'
`)

	resp, err := NewExecutor(5*time.Second).Execute(context.Background(), p, &Request{Action: "fail"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestExecutor_Execute_InvalidJSON(t *testing.T) {
	p := scriptPlugin(t, "bad", `echo 'not valid json'
`)

	_, err := NewExecutor(5*time.Second).Execute(context.Background(), p, &Request{Action: "bad"})
	assert.Error(t, err)
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	p := scriptPlugin(t, "exit", `echo "Error: something failed" >&2
exit 1
`)

	_, err := NewExecutor(5*time.Second).Execute(context.Background(), p, &Request{Action: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "something failed")
}

func TestNewExecutor_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewExecutor(0).Timeout())
	assert.Equal(t, time.Second, NewExecutor(time.Second).Timeout())
}
