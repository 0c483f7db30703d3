package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"justbench/internal/benchmark"
	"justbench/internal/config"
	"justbench/internal/runner"
	"justbench/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// pipeline is the part of the driver the command needs; split out so
// tests can substitute it.
type pipeline interface {
	Run(ctx context.Context) (*benchmark.Run, error)
}

var newDriverFunc = func(exec benchmark.Executor, out io.Writer, cfg *config.Config) pipeline {
	return benchmark.NewDriver(exec, out, cfg)
}

var newStoreFunc = func(path string) (benchmark.Store, error) {
	return benchmark.NewFileStore(path)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "justbench",
		Short: "Benchmark driver for the JustAct prototype examples",
		Long: `justbench compiles the paper examples of the JustAct prototype in
release mode, runs each compiled binary a configurable number of times,
and reports the mean duration and standard deviation per example. It can
keep a JSON history of runs and flag regressions against the previous
recorded run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
		RunE: runRoot,
	}

	cmd.Flags().StringSliceP("examples", "e", config.DefaultExamples, "The examples to benchmark; any example in the prototype is accepted")
	cmd.Flags().IntP("times", "t", 10, "The number of times to benchmark each example")
	cmd.Flags().StringP("cargo", "C", "cargo", "The command used to invoke cargo (shell-quoted string)")
	cmd.Flags().StringP("target", "T", "", "The target folder for compiled artifacts (default \"<root>/target\")")
	cmd.Flags().StringP("root", "R", ".", "The prototype checkout to build from")
	cmd.Flags().Duration("timeout", 0, "Per-command timeout (0 disables)")
	cmd.Flags().Bool("save", false, "Save results to history")
	cmd.Flags().Bool("compare", false, "Compare results with the previous saved run")
	cmd.Flags().Float64("threshold", 10.0, "Percentage threshold for regression warning")
	cmd.Flags().String("file", ".justbench/history.json", "File to store benchmark history")
	cmd.Flags().Int("metrics-port", 0, "Expose Prometheus metrics on this port (0 disables)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	viper.BindPFlag("examples", cmd.Flags().Lookup("examples"))
	viper.BindPFlag("times", cmd.Flags().Lookup("times"))
	viper.BindPFlag("cargo", cmd.Flags().Lookup("cargo"))
	viper.BindPFlag("target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("save", cmd.Flags().Lookup("save"))
	viper.BindPFlag("compare", cmd.Flags().Lookup("compare"))
	viper.BindPFlag("threshold", cmd.Flags().Lookup("threshold"))
	viper.BindPFlag("history_file", cmd.Flags().Lookup("file"))
	viper.BindPFlag("metrics_port", cmd.Flags().Lookup("metrics-port"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.MetricsPort > 0 {
		go func() {
			if err := telemetry.StartMetricsServer(cfg.MetricsPort); err != nil {
				slog.Warn("Failed to start metrics server", "port", cfg.MetricsPort, "error", err)
			}
		}()
	}

	out := cmd.OutOrStdout()
	driver := newDriverFunc(runner.New(cfg.Timeout), out, cfg)

	run, err := driver.Run(cmd.Context())
	if err != nil {
		return err
	}

	if !cfg.Compare && !cfg.Save {
		return nil
	}

	store, err := newStoreFunc(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	if cfg.Compare {
		prev, err := store.LoadLatest()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load history: %v\n", err)
		} else if prev != nil {
			fmt.Fprintln(out)
			benchmark.PrintComparison(out, benchmark.Compare(*prev, *run, cfg.Threshold))
		}
	}

	if cfg.Save {
		if commit, err := benchmark.GitCommit(); err == nil {
			run.Commit = commit
		}
		if err := store.Save(*run); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Fprintf(out, "\nResults saved to %s\n", cfg.HistoryFile)
	}

	return nil
}

// Execute runs the root command. This is called by main.main(). It makes
// the single exit-code decision for the whole program: 0 on completion,
// 1 on any failure, with the failing command's full diagnostics printed
// last.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Diagnostic())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// explicit .env loading, missing files are fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("JUSTBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
