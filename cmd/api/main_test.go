package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MentalHealthSentiment_WebProject/internal/sentiment"
)

const fixtureDir = "../../internal/sentiment/testdata"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspectModel(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, inspectModel(&out, fixtureDir))

	assert.Contains(t, out.String(), "features:   6")
	assert.Contains(t, out.String(), "classes:    [-1 0 1]")
	assert.Contains(t, out.String(), " -1 -> negative")
	assert.Contains(t, out.String(), "Positive Mental State 😊")

	err := inspectModel(&out, t.TempDir())
	assert.ErrorIs(t, err, sentiment.ErrModelUnavailable)
}

func TestCommands(t *testing.T) {
	abs, err := filepath.Abs(fixtureDir)
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("HISTORY_RETENTION_DAYS", "0")
	t.Setenv("MODEL_STORE_ENDPOINT", "")
	t.Setenv("MODEL_STORE_BUCKET", "")

	out, err := run(t, "model", "inspect", abs)
	require.NoError(t, err)
	assert.Contains(t, out, "features:   6")

	out, err = run(t, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: none")

	_, err = run(t, "migrate", "up")
	require.NoError(t, err)

	out, err = run(t, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1")

	out, err = run(t, "history", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "retention disabled")

	out, err = run(t, "history", "prune", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 0 analyses")

	_, err = run(t, "history", "prune", "--days", "200000")
	assert.ErrorContains(t, err, "--days must be between")

	_, err = run(t, "migrate", "down", "zero")
	assert.Error(t, err)

	_, err = run(t, "model", "fetch")
	assert.ErrorContains(t, err, "model store is not configured")
}
