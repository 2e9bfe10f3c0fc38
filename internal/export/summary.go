package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/registry"
)

func init() {
	registry.Register("summary", func() registry.Exporter { return summaryExporter{} })
}

// Stats are the headline numbers of a level.
type Stats struct {
	Platforms   int
	PathLength  int
	Branches    int
	Moving      int
	Blinking    int
	Enemies     int
	Coins       int
	BonusCoins  int
	Hazards     int
	Specials    int
	Checkpoints int
}

// Collect counts the live entities of a level.
func Collect(c *level.Content) Stats {
	s := Stats{
		Platforms:   c.Count(level.KindPlatform),
		PathLength:  len(c.Path),
		Branches:    len(c.Branches),
		Enemies:     c.Count(level.KindEnemy),
		Coins:       c.Count(level.KindCoin),
		Hazards:     c.Count(level.KindHazard),
		Specials:    c.Count(level.KindSpecial),
		Checkpoints: c.Count(level.KindCheckpoint),
	}
	for i := range c.Platforms {
		p := &c.Platforms[i]
		switch {
		case p.Moves():
			s.Moving++
		case p.Motion != nil && p.Motion.Kind() == level.MotionBlinking:
			s.Blinking++
		}
	}
	for _, coin := range c.Coins {
		if coin.Bonus && !coin.Removed {
			s.BonusCoins++
		}
	}
	return s
}

type summaryExporter struct{}

func (summaryExporter) ID() string          { return "summary" }
func (summaryExporter) Description() string { return "Short human-readable overview" }

func (summaryExporter) Export(w io.Writer, c *level.Content) error {
	s := Collect(c)

	var sb strings.Builder
	fmt.Fprintf(&sb, "World %d, level %d (variant %d)\n", c.World, c.Level, c.Variant)
	fmt.Fprintf(&sb, "  %-12s %s\n", "Rule", ruleLabel(c))
	fmt.Fprintf(&sb, "  %-12s %s\n", "Mode", c.Mode)
	fmt.Fprintf(&sb, "  %-12s %d\n", "Seed", c.Seed)
	fmt.Fprintf(&sb, "  %-12s %.2f\n", "Difficulty", c.Difficulty)
	fmt.Fprintf(&sb, "  %-12s %d (path %d, branches %d, moving %d, blinking %d)\n",
		"Platforms", s.Platforms, s.PathLength, s.Branches, s.Moving, s.Blinking)
	fmt.Fprintf(&sb, "  %-12s %d (bonus %d)\n", "Coins", s.Coins, s.BonusCoins)
	fmt.Fprintf(&sb, "  %-12s %d\n", "Hazards", s.Hazards)
	fmt.Fprintf(&sb, "  %-12s %d\n", "Specials", s.Specials)
	fmt.Fprintf(&sb, "  %-12s %d\n", "Enemies", s.Enemies)
	fmt.Fprintf(&sb, "  %-12s %d\n", "Checkpoints", s.Checkpoints)
	fmt.Fprintf(&sb, "  %-12s %s\n", "Goal", goalLabel(c))
	if c.Boss != nil {
		fmt.Fprintf(&sb, "  %-12s %s\n", "Boss", c.Boss.Key)
	}
	b := c.Bounds
	fmt.Fprintf(&sb, "  %-12s x [%.0f, %.0f]  y [%.0f, %.0f]\n", "Bounds", b.MinX, b.MaxX, b.MinY, b.MaxY)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("export: summary: %w", err)
	}
	return nil
}

func ruleLabel(c *level.Content) string {
	if c.Rule.ID == 0 {
		return "fallback (world 0)"
	}
	return c.Rule.Name
}

func goalLabel(c *level.Content) string {
	switch {
	case c.Goal == nil:
		return "none"
	case c.Goal.Active:
		return c.Goal.PortalType + " portal"
	default:
		return c.Goal.PortalType + " portal (locked)"
	}
}
