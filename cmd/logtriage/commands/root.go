package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moolen/logtriage/internal/config"
	"github.com/moolen/logtriage/internal/logging"
)

const Version = "0.1.0"

var (
	logLevelFlag string
	configFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "logtriage",
	Short: "Logtriage - AI-assisted incident analysis for application logs",
	Long: `Logtriage ingests unstructured application log files and produces an
incident report: recurring error patterns, a reconstructed cascade
timeline, and a probable root cause with remediation suggestions.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"Path to a YAML configuration file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(demoCmd)
}

// loadConfig builds the effective configuration: defaults, then the
// optional config file, then flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFlag != "" {
		loaded, err := config.LoadFile(configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cmdContext returns a context cancelled on SIGINT/SIGTERM so the AI
// call can be interrupted cleanly.
func cmdContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

// HandleError prints error and exits
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}
