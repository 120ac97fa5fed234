package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sched-sim/sched-sim/sim"
	"github.com/sched-sim/sched-sim/sim/workload"
)

var (
	// CLI flags for scheduler configs
	cores        int    // Number of CPU cores
	model        string // Threading model label (cosmetic)
	tickMS       int    // Autonomous loop interval in milliseconds
	configPath   string // Optional scheduler config YAML
	logLevel     string // Log verbosity level
	workloadPath string // Optional workload spec YAML

	// CLI flags for random workload generation
	seed       int64 // Seed for random burst generation
	numThreads int   // Number of threads
	numBursts  int   // Bursts per thread
	maxLength  int   // Max CPU/IO segment length
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Discrete-time CPU scheduler simulator",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		// Layer config: defaults <- YAML file <- explicit flags
		cfg, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Unable to load config: %v", err)
		}
		if cmd.Flags().Changed("cores") {
			cfg.Cores = cores
		}
		if cmd.Flags().Changed("model") {
			cfg.Model = model
		}
		if cmd.Flags().Changed("tick-ms") {
			cfg.TickMS = tickMS
		}

		sched, err := sim.NewScheduler(cfg)
		if err != nil {
			logrus.Fatalf("Unable to create scheduler: %v", err)
		}

		threads, err := buildWorkload()
		if err != nil {
			logrus.Fatalf("Unable to build workload: %v", err)
		}
		for _, t := range threads {
			if err := sched.AddThread(t); err != nil {
				logrus.Fatalf("Unable to add thread %s: %v", t.ID, err)
			}
		}

		logrus.Infof("Starting simulation: %d threads, %d cores, model=%s, tick=%dms",
			len(threads), cfg.Cores, cfg.Model, cfg.TickMS)

		interval := time.Duration(cfg.TickMS) * time.Millisecond
		drained := drainEvents(sched.Sink())

		sched.Run(context.Background(), interval)

		close(drained.stop)
		drained.wg.Wait()

		sim.CollectMetrics(sched.Snapshot()).Print()
		logrus.Info("Simulation complete.")
	},
}

// buildWorkload produces the thread population, either from a YAML spec
// or synthesized from the random-generation flags.
func buildWorkload() ([]*sim.Thread, error) {
	if workloadPath != "" {
		spec, err := workload.LoadSpec(workloadPath)
		if err != nil {
			return nil, err
		}
		return workload.BuildThreads(spec)
	}

	spec := &workload.Spec{
		Seed: seed,
		Threads: []workload.ThreadSpec{
			{ID: "T", Copies: numThreads, Count: numBursts, MaxLength: maxLength},
		},
	}
	return workload.BuildThreads(spec)
}

// drainer polls the event sink concurrently with the tick loop and logs
// every event in emission order.
type drainer struct {
	stop chan struct{}
	wg   sync.WaitGroup
}

func drainEvents(sink *sim.Sink) *drainer {
	d := &drainer{stop: make(chan struct{})}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			if ev, ok := sink.Poll(); ok {
				logrus.Infof("%s", ev)
				continue
			}
			select {
			case <-d.stop:
				// Final drain: the loop has stopped, nothing else is produced.
				for _, ev := range sink.Drain() {
					logrus.Infof("%s", ev)
				}
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}()
	return d
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&cores, "cores", 2, "Number of CPU cores")
	runCmd.Flags().StringVar(&model, "model", "many-to-many", "Threading model label (many-to-one, one-to-many, many-to-many)")
	runCmd.Flags().IntVar(&tickMS, "tick-ms", 200, "Tick interval in milliseconds")
	runCmd.Flags().StringVar(&configPath, "config", "", "Scheduler config YAML path")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Workload spec YAML path (overrides random generation flags)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random burst generation")
	runCmd.Flags().IntVar(&numThreads, "threads", 5, "Number of threads to simulate")
	runCmd.Flags().IntVar(&numBursts, "bursts", 3, "Bursts per generated thread")
	runCmd.Flags().IntVar(&maxLength, "max-length", 5, "Max CPU/IO segment length per burst")

	rootCmd.AddCommand(runCmd)
}
