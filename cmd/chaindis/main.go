package main

import (
	"os"

	"github.com/spf13/cobra"
)

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chaindis",
		Short:         "A redis compatible key-value server backed by chained hash tables",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(serveCommand())
	cmd.AddCommand(fillCommand())
	return cmd
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
