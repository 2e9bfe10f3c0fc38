package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelgen/internal/platform/tui"
	"github.com/vovakirdan/levelgen/internal/storage"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

var (
	flagHistoryWorld int
	flagHistoryLimit int
	flagPlain        bool
	flagStats        bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded generations",
	Long: `Browse the generation log. Opening an entry starts the viewer on that
level with the recorded seed, which reproduces it exactly.

Outside a terminal, or with --plain, the most recent generations are
printed instead.

Examples:
  levelgen history
  levelgen history --plain --world 3
  levelgen history --stats
  levelgen history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryWorld, "world", 0, "Only show this world (0 = all)")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries for --plain")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the browser")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Print per-world statistics")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded generation")
}

func runHistory(cmd *cobra.Command, args []string) {
	// Open generation storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening generation database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearGenerations(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Generation history cleared.")
		return
	case flagStats:
		err = printStats(store)
	case flagPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		err = printHistory(store, flagHistoryWorld, flagHistoryLimit)
	default:
		err = browseHistory(store)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func browseHistory(store *storage.Store) error {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	selected, err := tui.RunHistory(store, width, height)
	if err != nil || selected == nil {
		return err
	}

	gen, _, err := loadGenerator()
	if err != nil {
		return err
	}
	return openViewer(gen, store, *selected)
}

func printHistory(store *storage.Store, world, limit int) error {
	var (
		gens []storage.Generation
		err  error
	)
	if world > 0 {
		gens, err = store.GenerationsForWorld(world, limit)
	} else {
		gens, err = store.RecentGenerations(limit)
	}
	if err != nil {
		return err
	}

	if world > 0 {
		fmt.Printf("Generation History - world %d: %s\n", world, worlds.For(world).Name)
	} else {
		fmt.Println("Generation History")
	}
	fmt.Println()

	if len(gens) == 0 {
		fmt.Println("No generations recorded yet.")
		fmt.Println()
		fmt.Println("Run 'levelgen generate <world> <level>' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-5s  %-3s  %-20s  %-7s  %-5s  %-4s  %-6s  %s\n",
		"World", "Level", "Var", "Seed", "Mode", "Diff", "Plat", "Source", "Date")
	fmt.Printf("  %-5s  %-5s  %-3s  %-20s  %-7s  %-5s  %-4s  %-6s  %s\n",
		"-----", "-----", "---", "----", "----", "----", "----", "------", "----")

	for _, g := range gens {
		fmt.Printf("  %-5d  %-5d  %-3d  %-20d  %-7s  %-5.2f  %-4d  %-6s  %s\n",
			g.World, g.Level, g.Variant, g.Seed, g.Mode, g.Difficulty, g.Platforms, g.Source,
			g.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Reproduce one with 'levelgen generate <world> <level> --seed <seed>'.")
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.AllWorldStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No generations recorded yet.")
		return nil
	}

	ids := make([]int, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Println("Generation Statistics")
	fmt.Println()
	fmt.Printf("  %-5s  %-16s  %-5s  %-8s  %-8s  %-7s  %s\n",
		"World", "Name", "Count", "Avg Diff", "Avg Plat", "Hazards", "Last")
	fmt.Printf("  %-5s  %-16s  %-5s  %-8s  %-8s  %-7s  %s\n",
		"-----", "----", "-----", "--------", "--------", "-------", "----")

	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-5d  %-16s  %-5d  %-8.2f  %-8.1f  %-7d  %s\n",
			s.World, worlds.For(s.World).Name, s.Generations, s.AvgDifficulty, s.AvgPlatforms,
			s.TotalHazards, s.LastGenerated.Format("2006-01-02 15:04"))
	}
	return nil
}
