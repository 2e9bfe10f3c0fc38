package core

// Color represents a foreground color for a preview cell.
// Values map onto ANSI 256-color codes in the terminal renderer.
type Color uint8

// Palette used by the level preview.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// WorldColor returns the accent color used for a world's platforms.
func WorldColor(world int) Color {
	switch world {
	case 1:
		return ColorGreen
	case 2:
		return ColorCyan
	case 3:
		return ColorYellow
	case 4:
		return ColorBrightWhite
	case 5:
		return ColorOrange
	case 6:
		return ColorBrightBlue
	case 7:
		return ColorBrightGreen
	case 8:
		return ColorMagenta
	case 9:
		return ColorBrightMagenta
	case 10:
		return ColorBrightRed
	default:
		return ColorWhite
	}
}
