package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/datacenter-sim/datacenter-sim/sim"
	"github.com/datacenter-sim/datacenter-sim/sim/workload"
)

var (
	// CLI flags shared by the run and compare subcommands
	logLevel    string // Log verbosity level
	seed        int64  // Seed for workload generation
	pricingFile string // YAML pricing table path ("" = built-in table)

	// run-only flags
	strategy     string // Built-in strategy preset name
	scenarioFile string // YAML scenario path (overrides --strategy)
	showTasks    bool   // Print the per-task detail table

	// synthetic workload flags (replace the scenario's task list when set)
	genTasks     int
	lengthDist   string
	lengthMean   float64
	lengthStdDev float64
	lengthMin    float64
	lengthMax    float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "datacenter-sim",
	Short: "Discrete-event simulator for datacenter resource allocation and cost",
}

func setupLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", logLevel)
	}
	logrus.SetLevel(level)
	return nil
}

func loadPricing() ([]sim.VMType, error) {
	if pricingFile == "" {
		return sim.DefaultVMTypes(), nil
	}
	return GetVMTypes(pricingFile)
}

func loadScenario() (*workload.Scenario, error) {
	var sc *workload.Scenario
	if scenarioFile != "" {
		loaded, err := GetScenario(scenarioFile)
		if err != nil {
			return nil, err
		}
		sc = loaded
	} else {
		sc = workload.PresetByName(strategy)
		if sc == nil {
			return nil, fmt.Errorf("unknown strategy %q; built-ins are Cheapest-First, Performance-First, Balanced", strategy)
		}
	}

	if genTasks > 0 {
		rng := sim.NewPartitionedRNG(seed)
		tasks, err := workload.GenerateTasks(workload.GeneratorConfig{
			Count:         genTasks,
			LengthDist:    lengthDist,
			LengthMean:    lengthMean,
			LengthStdDev:  lengthStdDev,
			LengthMin:     lengthMin,
			LengthMax:     lengthMax,
			PERequirement: 1,
			FileSize:      300,
			OutputSize:    300,
			Seed:          rng.SeedFor(sim.SubsystemWorkload),
		})
		if err != nil {
			return nil, err
		}
		sc.Tasks = tasks
	}
	return sc, nil
}

// runCmd executes one scenario and prints its summary.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one allocation scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		types, err := loadPricing()
		if err != nil {
			return err
		}
		sc, err := loadScenario()
		if err != nil {
			return err
		}

		s, err := sc.Build()
		if err != nil {
			return err
		}
		if err := s.Run(context.Background()); err != nil {
			return err
		}

		summary := sim.Summarize(sc.Name, types, s.Broker().VMs(), s.Broker().ReceivedTasks(), s.Clock())
		fmt.Printf("=== Strategy: %s ===\n", sc.Name)
		summary.Print()
		if showTasks {
			sim.PrintTaskDetails(s.Broker().ReceivedTasks())
		}
		return nil
	},
}

// compareCmd runs every built-in strategy in parallel isolated simulations
// and prints the cost/latency comparison table.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all built-in strategies and compare cost against latency",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		types, err := loadPricing()
		if err != nil {
			return err
		}

		scenarios := workload.Presets()
		summaries := make([]sim.Summary, len(scenarios))
		runErrs := make([]error, len(scenarios))

		ctx := context.Background()
		var wg sync.WaitGroup
		for i, sc := range scenarios {
			wg.Add(1)
			go func(i int, sc *workload.Scenario) {
				defer wg.Done()
				s, err := sc.Build()
				if err != nil {
					runErrs[i] = err
					return
				}
				if err := s.Run(ctx); err != nil {
					runErrs[i] = err
					return
				}
				summaries[i] = sim.Summarize(sc.Name, types, s.Broker().VMs(), s.Broker().ReceivedTasks(), s.Clock())
			}(i, sc)
		}
		wg.Wait()

		fmt.Printf("%-20s %12s %14s %6s\n", "Strategy", "Cost ($)", "Avg Time (s)", "VMs")
		for i, sc := range scenarios {
			if runErrs[i] != nil {
				fmt.Printf("%-20s failed: %v\n", sc.Name, runErrs[i])
				continue
			}
			sum := summaries[i]
			fmt.Printf("%-20s %12.4f %14.2f %6d\n", sum.Strategy, sum.TotalCost, sum.AvgCompletionTime, sum.VMsUsed)
		}
		return errors.Join(runErrs...)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for synthetic workload generation")
		c.Flags().StringVar(&pricingFile, "pricing-file", "", "YAML pricing table (default: built-in Small/Medium/Large)")
	}

	runCmd.Flags().StringVar(&strategy, "strategy", "Cheapest-First", "Built-in strategy preset")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML scenario file (overrides --strategy)")
	runCmd.Flags().BoolVar(&showTasks, "show-tasks", false, "Print the per-task detail table")

	runCmd.Flags().IntVar(&genTasks, "tasks", 0, "Generate this many synthetic tasks instead of the scenario's list")
	runCmd.Flags().StringVar(&lengthDist, "task-length-dist", "uniform", "Task length distribution (uniform, normal, exponential)")
	runCmd.Flags().Float64Var(&lengthMean, "task-length-mean", 1500, "Mean task length (normal, exponential)")
	runCmd.Flags().Float64Var(&lengthStdDev, "task-length-stdev", 400, "Task length standard deviation (normal)")
	runCmd.Flags().Float64Var(&lengthMin, "task-length-min", 1000, "Minimum task length")
	runCmd.Flags().Float64Var(&lengthMax, "task-length-max", 2000, "Maximum task length")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
