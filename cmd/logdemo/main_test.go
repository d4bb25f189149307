package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DefaultSinks(t *testing.T) {
	dir := t.TempDir()

	err := createApp().Run(context.Background(), []string{
		"logdemo", "--dir", dir, "--interval", "10ms", "--duration", "50ms",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Test.log"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "[NOTICE   ] test : aaa\n")
	assert.Contains(t, out, "account : \naccount : tester\nnickname : player1\n")
	assert.Contains(t, out, "thread : end\n")
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drainlog.yaml")
	doc := "level: debug\nflush_interval: 10ms\nsinks:\n  audit:\n    type: file\n    level: notice\n    directory: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	err := createApp().Run(context.Background(), []string{
		"logdemo", "--config", path, "--watch", "--duration", "50ms",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Equal(t, "test : aaa\naccount : \naccount : tester\nnickname : player1\nthread : end\n", string(data))
}

func TestRun_BadConfig(t *testing.T) {
	err := createApp().Run(context.Background(), []string{
		"logdemo", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
	})
	assert.Error(t, err)
}
