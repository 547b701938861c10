// Package cli implements the privlabel command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/privlabel/internal/analyzer"
	"github.com/usestring/privlabel/internal/config"
	"github.com/usestring/privlabel/internal/logging"
	"github.com/usestring/privlabel/internal/store"
)

var (
	cfg    *config.Config
	loader *store.CachingLoader
)

var rootCmd = &cobra.Command{
	Use:   "privlabel",
	Short: "Privacy analysis of logged HTTP traffic",
	Long: `privlabel analyzes traffic logs produced by instrumented HTTP
clients and generates a quantitative privacy label: what data leaves
the device, who has access, and at what risk.

Point it at a JSONL traffic log (or an exported summary document) to
produce a report, or at two logs to compare a local system against a
cloud one.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "application log file (default: stderr)")
}

func initConfig() {
	cfg = config.Load()

	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	if level == "" {
		level = cfg.LogLevel
	}
	logFile, _ := rootCmd.PersistentFlags().GetString("log-file")
	if logFile == "" {
		logFile = cfg.LogFile
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.FilePath = logFile
	logCfg.MaxSizeMB = cfg.LogMaxSizeMB
	logCfg.MaxBackups = cfg.LogMaxBackups
	logCfg.MaxAgeDays = cfg.LogMaxAgeDays
	logCfg.Compress = cfg.LogCompress
	if _, err := logging.Setup(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up logging: %v\n", err)
	}

	var err error
	loader, err = store.NewCachingLoader(cfg.StoreCacheMaxItems)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: store cache disabled: %v\n", err)
	}
}

// loadStore loads a traffic log through the cache when available.
func loadStore(path string) (*store.Store, error) {
	if loader != nil {
		return loader.Load(path)
	}
	return store.Load(path)
}

// analysisConfig is the rule set used by all CLI analysis commands.
func analysisConfig() analyzer.Config {
	return analyzer.DefaultConfig()
}
