package main

import (
	"chaindict/config"
	"chaindict/lib/logger"
	"chaindict/redis/server"
	"chaindict/tcp"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "redis.conf"

type serveOptions struct {
	configFile  string
	bind        string
	port        int
	dbFilename  string
	requirePass string
}

func serveCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.loadConfig(cmd); err != nil {
				return err
			}
			if err := logger.Setup(&logger.Settings{
				Level:      config.Properties.LogLevel,
				Path:       config.Properties.LogDir,
				Name:       config.Properties.LogFile,
				MaxSize:    100,
				MaxBackups: 5,
				MaxAge:     7,
			}); err != nil {
				return err
			}
			return tcp.ListenAndServeWithSignal(&tcp.Config{
				Address: config.Properties.Address(),
			}, server.MakeHandler())
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file, defaults to ./"+defaultConfigFile+" when present")
	flags.StringVar(&opts.bind, "bind", "", "listen address")
	flags.IntVarP(&opts.port, "port", "p", 0, "listen port")
	flags.StringVar(&opts.dbFilename, "dbfilename", "", "rdb file loaded at startup and written by SAVE")
	flags.StringVar(&opts.requirePass, "requirepass", "", "password required by AUTH")
	return cmd
}

// loadConfig 先读取配置文件，再用命令行中显式给出的参数覆盖
func (opts *serveOptions) loadConfig(cmd *cobra.Command) error {
	filename := opts.configFile
	if filename == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			filename = defaultConfigFile
		}
	}
	if filename != "" {
		if err := config.SetupConfig(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("config file %s not found", filename)
			}
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("bind") {
		config.Properties.Bind = opts.bind
	}
	if flags.Changed("port") {
		config.Properties.Port = opts.port
	}
	if flags.Changed("dbfilename") {
		config.Properties.RDBFilename = opts.dbFilename
	}
	if flags.Changed("requirepass") {
		config.Properties.RequirePass = opts.requirePass
	}
	return nil
}
