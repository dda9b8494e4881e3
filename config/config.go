package config

import "image/color"

// Config contains the viewer window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

var C *Config

// DebugConfig contains debug/developer options
type DebugConfig struct {
	DrawPlazaBounds bool
	DrawHeading     bool
}

var Debug DebugConfig

// NetworkConfig contains client network defaults
type NetworkConfig struct {
	DefaultAddress string
	DefaultPort    uint
	ResendMillis   int // keepalive resend interval for avatar updates
}

var Network NetworkConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue   = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Magenta     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	DarkGray    = color.RGBA{R: 40, G: 44, B: 48, A: 255}
)

// AvatarColors cycles across remote avatars in the top-down view.
var AvatarColors = []color.RGBA{LightBlue, Orange, Magenta, LightGreen}

func init() {
	C = &Config{
		Width:  640,
		Height: 480,
		Title:  "plaza viewer",
	}

	Debug = DebugConfig{
		DrawPlazaBounds: true,
		DrawHeading:     true,
	}

	Network = NetworkConfig{
		DefaultAddress: "localhost",
		DefaultPort:    7474,
		ResendMillis:   250,
	}
}
