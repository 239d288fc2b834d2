package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	require.NoError(t, Setup(&Settings{Level: "warn"}))
	Info("hidden")
	Warnf("shown %d", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown 1")

	require.Error(t, Setup(&Settings{Level: "loud"}))
	require.NoError(t, Setup(&Settings{Level: "info"}))
}

func TestSetupFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Setup(&Settings{Path: dir, Name: "test.log", MaxSize: 1}))
	defer SetOutput(os.Stdout)
	Info("to file")
	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "to file")
}
