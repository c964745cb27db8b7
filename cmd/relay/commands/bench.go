package commands

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/relay/pkg/config"
	"github.com/arthur-debert/relay/pkg/events"
)

func newBenchCmd() *cobra.Command {
	var goroutines int
	var registrations int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: MsgBenchShort,
		Long:  MsgBenchLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			if goroutines == 0 {
				goroutines = cfg.Bench.Goroutines
			}
			if registrations == 0 {
				registrations = cfg.Bench.Registrations
			}
			return runBench(cmd, goroutines, registrations)
		},
	}

	cmd.Flags().IntVarP(&goroutines, "goroutines", "g", 0, "Number of registering goroutines (default from config)")
	cmd.Flags().IntVarP(&registrations, "registrations", "r", 0, "Registrations per goroutine (default from config)")
	return cmd
}

func runBench(cmd *cobra.Command, goroutines, registrations int) error {
	out := cmd.OutOrStdout()
	reg := events.New[string, int]()

	fmt.Fprintf(out, "%s\n", formatBoldUpper("registration"))
	fmt.Fprintf(out, "  %d goroutines x %d registrations\n", goroutines, registrations)

	var delivered atomic.Int64
	handles := make([][]*events.Registration, goroutines)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			handles[goroutineID] = make([]*events.Registration, 0, registrations)
			for i := 0; i < registrations; i++ {
				key := fmt.Sprintf("g%d_h%d", goroutineID, i)
				handle := reg.Register(key, func(int) error {
					delivered.Add(1)
					return nil
				})
				handles[goroutineID] = append(handles[goroutineID], handle)
			}
		}(g)
	}
	wg.Wait()
	registerDuration := time.Since(start)

	total := goroutines * registrations
	fmt.Fprintf(out, "  %d live registrations in %s (%.0f/s)\n",
		reg.Len(), registerDuration, float64(total)/registerDuration.Seconds())

	fmt.Fprintf(out, "\n%s\n", formatBoldUpper("publish"))
	start = time.Now()
	if err := reg.Publish(1); err != nil {
		return err
	}
	publishDuration := time.Since(start)
	fmt.Fprintf(out, "  %d deliveries in %s (%.0f/s)\n",
		delivered.Load(), publishDuration, float64(delivered.Load())/publishDuration.Seconds())

	if delivered.Load() != int64(total) {
		return fmt.Errorf("delivered %d events, expected %d", delivered.Load(), total)
	}

	fmt.Fprintf(out, "\n%s\n", formatBoldUpper("cancel"))
	start = time.Now()
	for _, list := range handles {
		for _, handle := range list {
			handle.Cancel()
		}
	}
	cancelDuration := time.Since(start)
	fmt.Fprintf(out, "  %d cancellations in %s, %d registrations left\n",
		total, cancelDuration, reg.Len())

	return nil
}
