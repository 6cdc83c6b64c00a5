package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
	"github.com/five82/logdesk/internal/registry"
	"github.com/five82/logdesk/internal/server"
)

func logLine(sec int, level, component, msg string) string {
	ts := time.Date(2024, 5, 1, 8, 0, sec, 0, time.UTC).Format(logentry.TimeLayout)
	return fmt.Sprintf("[%s] NIO [%s] [%s] %s", ts, level, component, msg)
}

func logDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.Join([]string{
		logLine(1, "INFO", "core", "first"),
		logLine(3, "ERROR", "router", "third"),
		"  at frame 1",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.log"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "worker.log"),
		[]byte(logLine(2, "WARNING", "pool", "second")+"\n"), 0o644))
	return dir
}

// execute runs the command tree with a config path that does not exist, so
// only flags and the environment apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.toml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEntries_TextOldestFirst(t *testing.T) {
	dir := logDir(t)

	out, err := execute(t, "--log-dir", dir, "entries", "main")
	require.NoError(t, err)

	first := strings.Index(out, "first")
	third := strings.Index(out, "third")
	require.GreaterOrEqual(t, first, 0, out)
	require.Greater(t, third, first, out)
	assert.Contains(t, out, "[router]")
	assert.Contains(t, out, "      at frame 1")
	assert.NotContains(t, out, "second")
}

func TestEntries_MergedJSON(t *testing.T) {
	dir := logDir(t)

	out, err := execute(t, "--log-dir", dir, "entries", "--json", "-n", "2")
	require.NoError(t, err)

	var entries []logentry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "third\n  at frame 1", entries[1].Message)
}

func TestEntries_Filters(t *testing.T) {
	dir := logDir(t)

	out, err := execute(t, "--log-dir", dir, "entries", "--json", "--level", "warn")
	require.NoError(t, err)
	var entries []logentry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "WARNING", entries[0].Level)
	assert.Equal(t, "ERROR", entries[1].Level)

	out, err = execute(t, "--log-dir", dir, "entries", "--json", "--component", "nobody")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestEntries_Errors(t *testing.T) {
	dir := logDir(t)

	_, err := execute(t, "--log-dir", dir, "entries", "missing")
	assert.ErrorIs(t, err, catalog.ErrUnknownSource)

	_, err = execute(t, "--log-dir", dir, "entries", "--level", "loud")
	assert.ErrorIs(t, err, logentry.ErrInvalidLevel)

	_, err = execute(t, "--log-dir", dir, "entries", "a", "b")
	assert.Error(t, err)
}

func TestSources_EnvSuppliesLogDir(t *testing.T) {
	t.Setenv("LOGDESK_LOG_DIR", logDir(t))

	out, err := execute(t, "sources")
	require.NoError(t, err)
	assert.Equal(t, "main\nworker\n", out)
}

func TestSources_FlagBeatsEnv(t *testing.T) {
	t.Setenv("LOGDESK_LOG_DIR", t.TempDir())
	dir := logDir(t)

	out, err := execute(t, "--log-dir", dir, "sources", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `["main","worker"]`, out)
}

func newRemote(t *testing.T) (*httptest.Server, *registry.Hclog) {
	t.Helper()
	reg := registry.New(io.Discard, "INFO")
	cat := catalog.New(logDir(t), catalog.Options{Logger: reg.Logger("catalog")})
	ts := httptest.NewServer(server.New(cat, reg, reg.Logger("server"), "").Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func TestEntries_Remote(t *testing.T) {
	ts, _ := newRemote(t)

	out, err := execute(t, "--api-bind", ts.URL, "--remote", "entries", "worker", "--json")
	require.NoError(t, err)
	var entries []logentry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "second", entries[0].Message)

	_, err = execute(t, "--api-bind", ts.URL, "--remote", "entries", "missing")
	assert.ErrorIs(t, err, catalog.ErrUnknownSource)
}

func TestLoggers_ListAndSet(t *testing.T) {
	ts, reg := newRemote(t)

	out, err := execute(t, "--api-bind", ts.URL, "loggers", "--level")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog")
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "INFO")

	out, err = execute(t, "--api-bind", ts.URL, "loggers", "set", "debug", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog set to debug")

	levels := map[string]string{}
	for _, info := range reg.List(true) {
		levels[info.Name] = info.Level
	}
	assert.Equal(t, "DEBUG", levels["catalog"])
	assert.Equal(t, "INFO", levels["server"])

	_, err = execute(t, "--api-bind", ts.URL, "loggers", "set", "loud")
	assert.ErrorIs(t, err, registry.ErrInvalidLevel)

	_, err = execute(t, "--api-bind", ts.URL, "loggers", "set", "info", "nobody")
	assert.ErrorIs(t, err, registry.ErrUnknownLogger)
}

func TestLoggers_JSONNamesOnly(t *testing.T) {
	ts, _ := newRemote(t)

	out, err := execute(t, "--api-bind", ts.URL, "loggers", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"catalog"},{"name":"server"}]`, out)
}

func TestWriteEntries_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	entries := []logentry.Entry{
		{Message: "orphan"},
		{Time: "2024-05-01T08:00:01.000000Z", Level: "INFO", Message: "no component"},
	}
	require.NoError(t, writeEntries(&buf, entries, ""))
	assert.Equal(t, "orphan\n2024-05-01T08:00:01.000000Z INFO     no component\n", buf.String())
}
