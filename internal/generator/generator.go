// Package generator builds platformer levels. Every level it produces has a
// main path whose consecutive steps are reachable under the player's jump
// model; decoration, branches and motion are layered on top of that chain
// without ever breaking it.
package generator

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/physics"
	"github.com/vovakirdan/levelgen/internal/skin"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

// LevelsPerWorld is the number of levels in a world. The last one is a tower.
const LevelsPerWorld = 10

// Generator produces levels from immutable settings. It is safe for
// concurrent use.
type Generator struct {
	settings config.GeneratorSettings
	jump     physics.Jump
	provider skin.Provider
	logger   *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithProvider sets the skin provider used for cosmetic keys.
func WithProvider(p skin.Provider) Option {
	return func(g *Generator) {
		if p != nil {
			g.provider = p
		}
	}
}

// New validates cfg and returns a generator for it.
func New(cfg config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		settings: cfg.Generator,
		jump:     cfg.Player.Jump(),
		provider: skin.NewTiered(cfg.Assets),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Settings returns the generator settings.
func (g *Generator) Settings() config.GeneratorSettings {
	return g.settings
}

// Jump returns the jump model levels are designed against.
func (g *Generator) Jump() physics.Jump {
	return g.jump
}

// Request selects a level. Seed and DifficultyOverride are optional.
type Request struct {
	World              int
	Level              int
	Variant            int
	Seed               *int64
	DifficultyOverride *float64
}

// Generate builds the requested level. Without an explicit seed it falls
// back to the configured seed and then to a time-based one, in which case
// the result is not reproducible. Out-of-range worlds and levels fall back
// to defaults; Generate never fails.
func (g *Generator) Generate(req Request) *level.Content {
	mode := g.ModeFor(req.Level)
	rule := worlds.For(req.World)

	difficulty := DifficultyFor(req.World, req.Level, mode, rule)
	if req.DifficultyOverride != nil {
		difficulty = core.ClampF(*req.DifficultyOverride, 0, 1)
	}

	seed := g.resolveSeed(req.Seed)
	c := g.GenerateLevel(req.World, difficulty, mode, req.Variant, seed)
	c.Level = req.Level
	return c
}

// GenerateSeeded is the reproducible entry point.
func (g *Generator) GenerateSeeded(world, lvl, variant int, seed int64) *level.Content {
	return g.Generate(Request{World: world, Level: lvl, Variant: variant, Seed: &seed})
}

func (g *Generator) resolveSeed(explicit *int64) int64 {
	if explicit != nil {
		return *explicit
	}
	if g.settings.Seed != nil {
		return *g.settings.Seed
	}
	return int64(splitmix64(uint64(time.Now().UnixNano())) & math.MaxInt64)
}

// ModeFor returns the layout mode of a level number.
func (g *Generator) ModeFor(lvl int) level.Mode {
	switch {
	case lvl > 0 && lvl%LevelsPerWorld == 0:
		return level.ModeTower
	case g.settings.IsBossLevel(lvl):
		return level.ModeBoss
	default:
		return level.ModeDefault
	}
}

// DifficultyFor maps a world and level to a difficulty in [0, 1]. Towers
// are always 1 and the first level of a world is always 0. Otherwise the
// score is progress through the ten worlds scaled by the world's gap
// multiplier, blended 90/10 with the unscaled progress.
func DifficultyFor(world, lvl int, mode level.Mode, rule worlds.Rule) float64 {
	if mode == level.ModeTower {
		return 1.0
	}
	if lvl <= 1 {
		return 0.0
	}
	w := core.Clamp(world, 1, worlds.Count)
	l := core.Clamp(lvl, 1, LevelsPerWorld)

	steps := float64(worlds.Count-1) + float64(LevelsPerWorld-1)/LevelsPerWorld
	raw := (float64(w-1) + float64(l-1)/LevelsPerWorld) / steps
	return core.ClampF(0.9*raw*rule.GapMultiplier+0.1*raw, 0, 1)
}

// GenerateLevel builds a level from fully resolved inputs. Identical inputs
// always produce identical content.
func (g *Generator) GenerateLevel(world int, difficulty float64, mode level.Mode, variant int, seed int64) *level.Content {
	rule := worlds.For(world)
	difficulty = core.ClampF(difficulty, 0, 1)

	c := level.New(rule, g.jump)
	c.World = world
	c.Variant = variant
	c.Seed = seed
	c.Mode = mode
	c.Difficulty = difficulty

	r := &run{
		rng:      NewRNG(mixSeed(seed, variant)),
		tuning:   g.settings.At(difficulty),
		jump:     g.jump,
		rule:     rule,
		mode:     mode,
		world:    world,
		content:  c,
		provider: g.provider,
		logger:   g.logger,
	}
	r.generate()
	return c
}
