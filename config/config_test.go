package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `# comment
bind 0.0.0.0
port 7000
dbfilename dump.rdb
requirepass "secret"
databases 4
`
	p, err := parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", p.Bind)
	require.Equal(t, 7000, p.Port)
	require.Equal(t, "dump.rdb", p.RDBFilename)
	require.Equal(t, "secret", p.RequirePass)
	require.Equal(t, 4, p.Databases)
	require.Equal(t, "info", p.LogLevel)
	require.Equal(t, "0.0.0.0:7000", p.Address())
}

func TestParseBadInt(t *testing.T) {
	_, err := parse(strings.NewReader("port abc\n"))
	require.Error(t, err)
}

func TestSetupConfig(t *testing.T) {
	old := Properties
	defer func() { Properties = old }()

	file := filepath.Join(t.TempDir(), "chaindis.conf")
	require.NoError(t, os.WriteFile(file, []byte("port 6500\nmaxclients 10\n"), 0644))
	require.NoError(t, SetupConfig(file))
	require.Equal(t, 6500, Properties.Port)
	require.Equal(t, 10, Properties.MaxClients)
	require.Equal(t, "127.0.0.1", Properties.Bind)

	require.Error(t, SetupConfig(filepath.Join(t.TempDir(), "missing.conf")))
}
