package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "graphstat",
	Short: "Structural analytics for large undirected graphs",
	Long: "graphstat loads an edge-list file and reports degree, closeness, and betweenness\n" +
		"centrality along with a sampled estimate of the average shortest-path length.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .graphstat.yaml)")
	pf.Int("top", 5, "number of ranked nodes to show per metric")
	pf.Int("samples", 1000, "node pairs drawn for the average path estimate")
	pf.Int64("seed", 42, "seed for pair sampling")
	pf.Int("workers", 0, "goroutines for betweenness (default: number of CPUs)")
	pf.String("format", "text", "output format: text, json, or toml")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("metrics-file", "", "write Prometheus metrics to this file after the run")
	pf.String("telemetry-file", "", "append JSONL telemetry events to this file")

	bindFlag("top", "top")
	bindFlag("samples", "samples")
	bindFlag("seed", "seed")
	bindFlag("workers", "workers")
	bindFlag("format", "format")
	bindFlag("log_level", "log-level")
	bindFlag("log_format", "log-format")
	bindFlag("metrics_file", "metrics-file")
	bindFlag("telemetry_file", "telemetry-file")
}

// bindFlag binds a persistent flag to a viper key. Flags only override
// config values when they are set explicitly.
func bindFlag(key, flag string) {
	_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".graphstat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GRAPHSTAT")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
