package main

import (
	"chaindict/lib/utils"
	"chaindict/redis/client"
	"chaindict/redis/protocol"
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type fillOptions struct {
	addr      string
	password  string
	keys      int
	workers   int
	valueSize int
	timeout   time.Duration
}

func fillCommand() *cobra.Command {
	opts := &fillOptions{}
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Write random keys into a running server and print its hash table stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			return opts.run(ctx, cmd)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", "127.0.0.1:6399", "server address")
	flags.StringVar(&opts.password, "password", "", "password sent with AUTH")
	flags.IntVar(&opts.keys, "keys", 10000, "number of keys to write")
	flags.IntVar(&opts.workers, "workers", 8, "number of concurrent connections")
	flags.IntVar(&opts.valueSize, "value-size", 16, "length of each random value")
	flags.DurationVar(&opts.timeout, "timeout", time.Minute, "give up after this long")
	return cmd
}

func (opts *fillOptions) run(ctx context.Context, cmd *cobra.Command) error {
	if opts.workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", opts.workers)
	}
	p := client.NewPool(opts.addr, opts.password, opts.workers)
	defer p.Close()

	start := time.Now()
	errs := make(chan error, opts.workers)
	var wg sync.WaitGroup
	for w := 0; w < opts.workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < opts.keys; i += opts.workers {
				line := utils.StringsToLine("SET", "key:"+strconv.Itoa(i), utils.AlnumString(opts.valueSize))
				reply, err := p.Exec(ctx, line)
				if err == nil && !protocol.IsOKReply(reply) {
					err = fmt.Errorf("set key:%d: %s", i, reply.GetBytes())
				}
				if err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return err
	}

	reply, err := p.Exec(ctx, utils.StringsToLine("DEBUG", "HTSTATS"))
	if err != nil {
		return err
	}
	stats, ok := protocol.FetchMultiBulk(reply)
	if !ok {
		return fmt.Errorf("unexpected reply: %s", reply.GetBytes())
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "wrote %d keys in %s\n", opts.keys, time.Since(start).Round(time.Millisecond))
	for i := 0; i+1 < len(stats); i += 2 {
		_, _ = fmt.Fprintf(out, "%-14s %s\n", stats[i], stats[i+1])
	}
	return nil
}
