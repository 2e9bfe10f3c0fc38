package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/preview"
	"github.com/vovakirdan/levelgen/internal/registry"
)

// Default ASCII canvas size, used when no terminal size is known.
const (
	DefaultASCIIWidth  = 120
	DefaultASCIIHeight = 30
)

func init() {
	registry.Register("ascii", func() registry.Exporter {
		return &asciiExporter{width: DefaultASCIIWidth, height: DefaultASCIIHeight}
	})
}

// Sizer is implemented by exporters whose output depends on a canvas size.
type Sizer interface {
	SetSize(width, height int)
}

// Legend lists the glyphs used by the ASCII preview.
const Legend = "= platform  ~ moving  : blinking  o coin  $ bonus  ^ hazard  * special  " +
	"E enemy  F checkpoint  O exit  # locked  B boss  @ spawn"

type asciiExporter struct {
	width, height int
}

func (e *asciiExporter) ID() string          { return "ascii" }
func (e *asciiExporter) Description() string { return "Whole-level text preview" }

func (e *asciiExporter) SetSize(width, height int) {
	if width > 0 {
		e.width = width
	}
	if height > 0 {
		e.height = height
	}
}

func (e *asciiExporter) Export(w io.Writer, c *level.Content) error {
	screen := preview.Snapshot(c, e.width, e.height)

	var sb strings.Builder
	fmt.Fprintf(&sb, "world %d level %d  mode=%s  seed=%d  difficulty=%.2f\n",
		c.World, c.Level, c.Mode, c.Seed, c.Difficulty)
	for y := range screen.Height() {
		sb.WriteString(strings.TrimRight(screen.Row(y), " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(Legend)
	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("export: ascii: %w", err)
	}
	return nil
}
