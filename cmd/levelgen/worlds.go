package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/worlds"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List the world rule table",
	Long: `Shows every authored world with its gap and object multipliers,
vertical bias, moving-platform speed and hazard pool. Worlds outside
1-10 use the fallback rule.`,
	Run: runWorlds,
}

func runWorlds(cmd *cobra.Command, args []string) {
	rules := worlds.All()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, r := range rules {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	fmt.Println("Worlds:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-2s  %-*s  %-5s  %-5s  %-5s  %-5s  %s\n", "ID", maxNameLen, "Name", "Gap", "Obj", "Bias", "Speed", "Hazards")
	fmt.Printf("  %-2s  %-*s  %-5s  %-5s  %-5s  %-5s  %s\n", "--", maxNameLen, "----", "---", "---", "----", "-----", "-------")

	// Print rules
	for _, r := range rules {
		fmt.Printf("  %-2d  %-*s  %-5.2f  %-5.2f  %-5.2f  %-5.2f  %s\n",
			r.ID, maxNameLen, r.Name, r.GapMultiplier, r.ObjectMultiplier, r.VerticalBias,
			worlds.MovingSpeedFactor(r.ID), strings.Join(r.HazardKeys, ", "))
	}

	// The fallback keeps the speed curve of the requested world.
	fb := worlds.Default()
	fmt.Printf("  %-2d  %-*s  %-5.2f  %-5.2f  %-5.2f  %-5s  %s\n",
		fb.ID, maxNameLen, fb.Name, fb.GapMultiplier, fb.ObjectMultiplier, fb.VerticalBias,
		"-", strings.Join(fb.HazardKeys, ", "))

	fmt.Println()
	fmt.Println("Run 'levelgen generate <world> <level>' to build a level.")
}
