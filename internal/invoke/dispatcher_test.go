package invoke

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/log"
)

func echoHandler(_ context.Context, raw json.RawMessage) (any, error) {
	return string(raw), nil
}

func TestDispatcher_RegisterAndCommands(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(Command{Name: "b"}, echoHandler)
	d.Register(Command{Name: "a", Description: "first"}, echoHandler)

	assert.Equal(t, []string{"a", "b"}, d.Names())
	cmds := d.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "first", cmds[0].Description)
}

func TestDispatcher_RegisterPanics(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(Command{Name: "dup"}, echoHandler)

	assert.Panics(t, func() { d.Register(Command{Name: "dup"}, echoHandler) })
	assert.Panics(t, func() { d.Register(Command{Name: ""}, echoHandler) })
	assert.Panics(t, func() { d.Register(Command{Name: "nil"}, nil) })
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := NewDispatcher(nil)

	_, xe := d.Call(context.Background(), "nope", nil)
	require.NotNil(t, xe)
	assert.Equal(t, errors.CodeCfgInvalid, xe.Code)
	assert.Equal(t, "nope", xe.Details["command"])

	res, msg := d.Invoke(context.Background(), "nope", nil)
	assert.Nil(t, res)
	assert.Contains(t, msg, "unknown command")
}

func TestDispatcher_EmptyArgsBecomeObject(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(Command{Name: "echo"}, echoHandler)

	for _, raw := range []string{"", "  ", "null"} {
		res, xe := d.Call(context.Background(), "echo", json.RawMessage(raw))
		require.Nil(t, xe)
		assert.Equal(t, "{}", res)
	}
}

func TestDispatcher_HandlerErrorsAreNormalized(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(Command{Name: "plain"}, func(context.Context, json.RawMessage) (any, error) {
		return nil, stderrors.New("boom")
	})
	d.Register(Command{Name: "coded"}, func(context.Context, json.RawMessage) (any, error) {
		return nil, errors.New(errors.CodeSecretNotFound, "secret not found", nil)
	})

	_, xe := d.Call(context.Background(), "plain", nil)
	require.NotNil(t, xe)
	assert.Equal(t, errors.CodeInternal, xe.Code)

	_, msg := d.Invoke(context.Background(), "coded", nil)
	assert.Equal(t, "NOVELKEY_SECRET_NOT_FOUND: secret not found", msg)
}

func TestRender_IncludesCause(t *testing.T) {
	xe := errors.Wrap(errors.CodeSecretFailed, "set failed", nil, stderrors.New("exotic platform failure: quota 42"))
	assert.Equal(t, "NOVELKEY_SECRET_FAILED: set failed: exotic platform failure: quota 42", Render(xe))
}

func TestDispatcher_LogsCommandAndOutcome(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(log.New(&buf))
	d.Register(Command{Name: "echo"}, echoHandler)

	_, _ = d.Call(context.Background(), "echo", json.RawMessage(`{"value":"hunter2"}`))
	_, _ = d.Call(context.Background(), "missing", nil)

	out := buf.String()
	assert.Contains(t, out, "command=echo")
	assert.Contains(t, out, "code=NOVELKEY_CFG_INVALID")
	assert.False(t, strings.Contains(out, "hunter2"), "arguments must not be logged")
}
