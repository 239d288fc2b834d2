package main

import (
	"bytes"
	"chaindict/config"
	"chaindict/redis/server"
	"chaindict/tcp"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeFlagsOverrideConfig(t *testing.T) {
	old := *config.Properties
	defer func() {
		*config.Properties = old
	}()
	filename := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(filename, []byte("bind 0.0.0.0\nport 7000\nrequirepass fromfile\n"), 0644))

	cmd := serveCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filename, "--port", "7100"}))
	opts := &serveOptions{}
	opts.configFile, _ = cmd.Flags().GetString("config")
	opts.port, _ = cmd.Flags().GetInt("port")
	require.NoError(t, opts.loadConfig(cmd))
	require.Equal(t, "0.0.0.0:7100", config.Properties.Address())
	require.Equal(t, "fromfile", config.Properties.RequirePass)
}

func TestServeMissingConfig(t *testing.T) {
	cmd := serveCommand()
	opts := &serveOptions{configFile: filepath.Join(t.TempDir(), "absent.conf")}
	require.Error(t, opts.loadConfig(cmd))
}

func TestFill(t *testing.T) {
	old := *config.Properties
	config.Properties.RDBFilename = ""
	config.Properties.RequirePass = ""
	lr, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closeChan := make(chan struct{})
	done := make(chan struct{})
	go func() {
		tcp.ListenAndServe(lr, server.MakeHandler(), closeChan)
		close(done)
	}()
	defer func() {
		close(closeChan)
		<-done
		*config.Properties = old
	}()

	root := rootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"fill", "--addr", lr.Addr().String(), "--keys", "500", "--workers", "4"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "wrote 500 keys")
	require.Regexp(t, `size\s+500\n`, out.String())
	require.Regexp(t, `capacity\s+\d+\n`, out.String())
}
