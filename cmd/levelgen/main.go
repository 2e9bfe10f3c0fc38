// levelgen generates procedural platformer levels whose main path is always
// reachable under the player's jump model.
//
// Usage:
//
//	levelgen generate <world> <level>  - Generate one level and export it
//	levelgen view [world] [level]      - Browse levels in an interactive viewer
//	levelgen serve                     - Start SSH server hosting the viewer
//	levelgen worlds                    - List the world rule table
//	levelgen history                   - Browse recorded generations
//	levelgen batch                     - Generate many levels and verify them
//
// Global flags:
//
//	--seed <value>       - Fix the RNG seed (0 = derive or use config/time)
//	--config <path>      - Custom generator config YAML
//	--db <path>          - Generation log path (default: ~/.levelgen/levels.db)
//	--log-level <level>  - debug, info, warn, error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/generator"
	"github.com/vovakirdan/levelgen/internal/storage"

	// Import exporters to register them
	_ "github.com/vovakirdan/levelgen/internal/export"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "levelgen"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelgen",
	Short: "levelgen - Procedural platformer level generator",
	Long: `levelgen builds 2D platformer levels for ten themed worlds.
Every level has a main path from spawn to goal in which each jump is
reachable; branches, collectibles, hazards and enemies are layered on top.

Available commands:
  generate - Generate one level and export it
  view     - Browse levels in an interactive viewer
  serve    - Start SSH server hosting the viewer
  worlds   - List the world rule table
  history  - Browse recorded generations
  batch    - Generate many levels and verify them

Examples:
  levelgen generate 1 1
  levelgen generate 3 10 --format ascii
  levelgen view 2 5
  levelgen serve --ssh :2222
  levelgen history --world 4
  levelgen batch --variants 5`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(lvl)
		logger.SetReportTimestamp(lvl == log.DebugLevel)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = derived, configured or time-based)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom generator config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.levelgen/levels.db", "Path to generation log database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(worldsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(batchCmd)
}

// loadGenerator builds a generator from the configured search path and
// reports which file it came from.
func loadGenerator() (*generator.Generator, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return nil, "", err
	}
	gen, err := generator.New(cfg, generatorOptions()...)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("generator ready", "config", source)
	return gen, source, nil
}

func generatorOptions() []generator.Option {
	return []generator.Option{generator.WithLogger(logger.WithPrefix("levelgen/generator"))}
}

// openStore opens the generation log. Failures are logged and recording is
// skipped, generation itself never depends on the database.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("generation log unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// seedFlag returns the --seed value when it was given explicitly.
func seedFlag(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	seed := flagSeed
	return &seed
}

// difficultyFlag resolves a --difficulty preset into an override.
func difficultyFlag(name string) (*float64, error) {
	preset, err := config.ParsePreset(name)
	if err != nil {
		return nil, err
	}
	d, ok := preset.Override()
	if !ok {
		return nil, nil
	}
	return &d, nil
}
