package core

// Color is a foreground color for a screen cell. The simulation core
// only tags cells with palette entries; the platform layer maps them to
// actual terminal colors.
type Color uint8

// Palette entries. The runner leans on a handful of them: green terrain,
// bright red spikes, yellow blocks, bright magenta for the plane, bright
// cyan for the player (gray when dead, bright yellow while invincible).
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
