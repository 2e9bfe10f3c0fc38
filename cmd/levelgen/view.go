package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/generator"
	"github.com/vovakirdan/levelgen/internal/platform/tui"
	"github.com/vovakirdan/levelgen/internal/storage"
)

var (
	flagViewVariant    int
	flagViewDifficulty string
	flagTickRate       int
	flagScale          float64
	flagNoWatch        bool
)

var viewCmd = &cobra.Command{
	Use:   "view [world] [level]",
	Short: "Browse levels in an interactive viewer",
	Long: `Open an interactive terminal viewer starting at the given level.
Moving and blinking platforms animate; the config file is watched and the
level is rebuilt whenever it changes.

Controls:
  Arrows/hjkl  - Pan
  +/-          - Zoom
  F            - Fit the whole level
  N/P          - Next/previous level
  V            - Next variant
  R            - Reseed
  Space        - Pause motion
  Q/Ctrl+C     - Quit

Examples:
  levelgen view
  levelgen view 3 10
  levelgen view 2 4 --seed 42
  levelgen view --config ./generator.yaml`,
	Args: cobra.MaximumNArgs(2),
	Run:  runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagViewVariant, "variant", 0, "Level variant")
	viewCmd.Flags().StringVar(&flagViewDifficulty, "difficulty", "", "Difficulty preset: auto, easy, normal, hard")
	viewCmd.Flags().IntVar(&flagTickRate, "fps", 30, "Motion tick rate (frames per second)")
	viewCmd.Flags().Float64Var(&flagScale, "scale", 16, "World units per terminal column")
	viewCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload the config file on change")
}

func runView(cmd *cobra.Command, args []string) {
	world, lvl, err := parseSlot(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	override, err := difficultyFlag(flagViewDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen, source, err := loadGenerator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var watcher *config.Watcher
	if !flagNoWatch {
		watcher, err = config.WatchConfig(source)
		if err != nil {
			logger.Warn("config watch disabled", "source", source, "error", err)
		}
		if watcher != nil {
			defer watcher.Close()
		}
	}

	// The viewer owns the terminal, so it gets no stderr logger.
	view := viewConfig()
	if seed := seedFlag(cmd); seed != nil {
		view.Seed = *seed
	}

	err = tui.RunViewer(gen, tui.ViewerOptions{
		View:               view,
		World:              world,
		Level:              lvl,
		Variant:            flagViewVariant,
		DifficultyOverride: override,
		Store:              store,
		Source:             storage.SourceViewer,
		Watcher:            watcher,
		GeneratorOptions:   generatorOptions(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// viewConfig sizes the viewer to the terminal.
func viewConfig() core.ViewConfig {
	view := core.DefaultViewConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		view.ScreenW = w
		view.ScreenH = h
	}
	if flagTickRate > 0 {
		view.TickRate = flagTickRate
	}
	if flagScale > 0 {
		view.Scale = flagScale
	}
	return view
}

// openViewer starts the viewer on a recorded generation.
func openViewer(gen *generator.Generator, store *storage.Store, g storage.Generation) error {
	view := viewConfig()
	view.Seed = g.Seed
	return tui.RunViewer(gen, tui.ViewerOptions{
		View:             view,
		World:            g.World,
		Level:            g.Level,
		Variant:          g.Variant,
		Store:            store,
		Source:           storage.SourceViewer,
		GeneratorOptions: generatorOptions(),
	})
}
