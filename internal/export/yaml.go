// Package export provides pluggable output formats for generated levels.
// Each format registers itself with the registry in init().
package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/registry"
)

func init() {
	registry.Register("yaml", func() registry.Exporter { return yamlExporter{} })
}

// Document is the YAML structure written for a level.
type Document struct {
	World       int            `yaml:"world"`
	Level       int            `yaml:"level"`
	Variant     int            `yaml:"variant"`
	Seed        int64          `yaml:"seed"`
	Mode        string         `yaml:"mode"`
	Difficulty  float64        `yaml:"difficulty"`
	Rule        string         `yaml:"rule"`
	Physics     YAMLPhysics    `yaml:"physics"`
	Spawn       YAMLPoint      `yaml:"spawn,flow"`
	Bounds      YAMLRect       `yaml:"bounds,flow"`
	Platforms   []YAMLPlatform `yaml:"platforms"`
	Path        []int          `yaml:"path,flow"`
	Branches    []YAMLBranch   `yaml:"branches,omitempty"`
	Enemies     []YAMLEnemy    `yaml:"enemies,omitempty"`
	Coins       []YAMLCoin     `yaml:"coins,omitempty"`
	Hazards     []YAMLHazard   `yaml:"hazards,omitempty"`
	Specials    []YAMLHazard   `yaml:"specials,omitempty"`
	Checkpoints []YAMLRect     `yaml:"checkpoints,omitempty,flow"`
	Goal        *YAMLGoal      `yaml:"goal,omitempty"`
	Boss        *YAMLBoss      `yaml:"boss,omitempty"`
}

// YAMLPhysics holds the jump envelope the level was built for.
type YAMLPhysics struct {
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MaxRise   float64 `yaml:"max_rise"`
	MaxStep   float64 `yaml:"max_step"`
}

// YAMLPoint is a position in world units.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLRect is an axis-aligned rectangle in world units.
type YAMLRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLMotion describes how a platform moves. Unused fields are omitted.
type YAMLMotion struct {
	Kind      string      `yaml:"kind"`
	Axis      string      `yaml:"axis,omitempty"`
	Amplitude float64     `yaml:"amplitude,omitempty"`
	Speed     float64     `yaml:"speed,omitempty"`
	Phase     float64     `yaml:"phase,omitempty"`
	OnFrames  int         `yaml:"on_frames,omitempty"`
	OffFrames int         `yaml:"off_frames,omitempty"`
	SpeedMod  float64     `yaml:"speed_mod,omitempty"`
	Waypoints []YAMLPoint `yaml:"waypoints,omitempty,flow"`
}

// YAMLPlatform is a platform at its generated position.
type YAMLPlatform struct {
	Rect    YAMLRect   `yaml:"rect,flow"`
	Skin    string     `yaml:"skin"`
	Motion  YAMLMotion `yaml:"motion"`
	Carried int        `yaml:"carried,omitempty"`
}

// YAMLBranch links a branch platform to the path platform it hangs off.
type YAMLBranch struct {
	From     int `yaml:"from"`
	Platform int `yaml:"platform"`
}

// YAMLEnemy is a patrolling enemy.
type YAMLEnemy struct {
	Rect     YAMLRect   `yaml:"rect,flow"`
	Platform int        `yaml:"platform"`
	Patrol   [2]float64 `yaml:"patrol,flow"`
	Speed    float64    `yaml:"speed"`
}

// YAMLCoin is a collectible.
type YAMLCoin struct {
	Rect  YAMLRect `yaml:"rect,flow"`
	Bonus bool     `yaml:"bonus,omitempty"`
}

// YAMLHazard is a hazard or special tile.
type YAMLHazard struct {
	Key      string   `yaml:"key"`
	Effect   string   `yaml:"effect"`
	Rect     YAMLRect `yaml:"rect,flow"`
	Skin     string   `yaml:"skin"`
	Platform int      `yaml:"platform"`
}

// YAMLGoal is the level exit.
type YAMLGoal struct {
	Rect     YAMLRect `yaml:"rect,flow"`
	Portal   string   `yaml:"portal"`
	Active   bool     `yaml:"active"`
	Platform int      `yaml:"platform"`
}

// YAMLBoss marks the boss spawn.
type YAMLBoss struct {
	Rect     YAMLRect `yaml:"rect,flow"`
	Key      string   `yaml:"key"`
	Platform int      `yaml:"platform"`
}

// NewDocument converts content into its YAML document. Platforms are
// written at their generated origin; removed entities are skipped.
func NewDocument(c *level.Content) Document {
	doc := Document{
		World:      c.World,
		Level:      c.Level,
		Variant:    c.Variant,
		Seed:       c.Seed,
		Mode:       string(c.Mode),
		Difficulty: c.Difficulty,
		Rule:       c.Rule.Name,
		Physics: YAMLPhysics{
			JumpSpeed: c.Physics.JumpSpeed,
			Gravity:   c.Physics.Gravity,
			MaxSpeed:  c.Physics.MaxSpeed,
			MaxRise:   c.Physics.MaxRise(),
			MaxStep:   c.Physics.MaxStep(),
		},
		Spawn:  YAMLPoint{X: c.Spawn.X, Y: c.Spawn.Y},
		Bounds: toRect(c.Bounds.Rect()),
		Path:   append([]int{}, c.Path...),
	}

	doc.Platforms = make([]YAMLPlatform, len(c.Platforms))
	for i := range c.Platforms {
		p := &c.Platforms[i]
		doc.Platforms[i] = YAMLPlatform{
			Rect:    toRect(p.Origin),
			Skin:    p.Skin,
			Motion:  toMotion(p.Motion),
			Carried: len(p.Carried),
		}
	}
	for _, b := range c.Branches {
		doc.Branches = append(doc.Branches, YAMLBranch{From: b.From, Platform: b.Platform})
	}
	for _, e := range c.Enemies {
		if e.Removed {
			continue
		}
		doc.Enemies = append(doc.Enemies, YAMLEnemy{
			Rect:     toRect(e.Rect),
			Platform: e.Platform,
			Patrol:   [2]float64{e.PatrolMinX, e.PatrolMaxX},
			Speed:    e.Speed,
		})
	}
	for _, coin := range c.Coins {
		if !coin.Removed {
			doc.Coins = append(doc.Coins, YAMLCoin{Rect: toRect(coin.Rect), Bonus: coin.Bonus})
		}
	}
	doc.Hazards = toHazards(c.Hazards)
	doc.Specials = toHazards(c.Specials)
	for _, cp := range c.Checkpoints {
		if !cp.Removed {
			doc.Checkpoints = append(doc.Checkpoints, toRect(cp.Rect))
		}
	}
	if c.Goal != nil {
		doc.Goal = &YAMLGoal{
			Rect:     toRect(c.Goal.Rect),
			Portal:   c.Goal.PortalType,
			Active:   c.Goal.Active,
			Platform: c.Goal.Platform,
		}
	}
	if c.Boss != nil {
		doc.Boss = &YAMLBoss{Rect: toRect(c.Boss.Rect), Key: c.Boss.Key, Platform: c.Boss.Platform}
	}
	return doc
}

func toRect(r core.Rect) YAMLRect {
	return YAMLRect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func toHazards(hs []level.Hazard) []YAMLHazard {
	var out []YAMLHazard
	for _, h := range hs {
		if h.Removed {
			continue
		}
		out = append(out, YAMLHazard{
			Key:      h.Key,
			Effect:   h.Effect.String(),
			Rect:     toRect(h.Rect),
			Skin:     h.Skin,
			Platform: h.Platform,
		})
	}
	return out
}

func toMotion(m level.Motion) YAMLMotion {
	switch m := m.(type) {
	case level.Static:
		return YAMLMotion{Kind: string(m.Kind()), SpeedMod: m.SpeedMod}
	case level.Moving:
		return YAMLMotion{Kind: string(m.Kind()), Axis: m.Axis.String(), Amplitude: m.Amplitude, Speed: m.Speed, Phase: m.Phase}
	case level.Blinking:
		return YAMLMotion{Kind: string(m.Kind()), OnFrames: m.OnFrames, OffFrames: m.OffFrames, Phase: float64(m.Phase)}
	case level.PathFollowing:
		pts := make([]YAMLPoint, len(m.Waypoints))
		for i, w := range m.Waypoints {
			pts[i] = YAMLPoint{X: w.X, Y: w.Y}
		}
		return YAMLMotion{Kind: string(m.Kind()), Speed: m.Speed, Waypoints: pts}
	case nil:
		return YAMLMotion{Kind: string(level.MotionStatic)}
	default:
		return YAMLMotion{Kind: string(m.Kind())}
	}
}

type yamlExporter struct{}

func (yamlExporter) ID() string          { return "yaml" }
func (yamlExporter) Description() string { return "Full level document as YAML" }

func (yamlExporter) Export(w io.Writer, c *level.Content) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(c)); err != nil {
		return fmt.Errorf("export: yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: yaml flush: %w", err)
	}
	return nil
}
