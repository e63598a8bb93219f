package render

import "image/color"

// RingSpec is one concentric ring outline: the outer radius of the stroke
// and its alpha. Rings are listed outermost first, with alpha increasing as
// radius decreases.
type RingSpec struct {
	Radius int
	Alpha  uint8
}

// IconConfig collects every constant of the icon composition so rendering is
// a pure function of these values plus which candidate font resolves.
type IconConfig struct {
	Size       int
	Background color.NRGBA

	RingColor  color.NRGBA // ring hue; per-ring alpha comes from Rings
	Rings      []RingSpec
	RingStroke int

	WaveColor  color.NRGBA
	WaveAmp    float64
	WaveInset  int // horizontal margin on each side
	WaveStep   int // polyline sample spacing in px
	WaveCycles float64
	WaveStroke float64

	Text        string
	TextColor   color.NRGBA
	TextSize    float64
	TextVCenter float64 // vertical center of the glyph box as a height fraction

	GlowColor     color.NRGBA // glow hue; alpha comes from the pass number
	GlowPasses    int
	GlowAlphaUnit uint8 // pass r of GlowPasses..1 is drawn at alpha r*GlowAlphaUnit

	FontPaths []string
}

// DefaultIconConfig returns the app icon composition: dark background, three
// rings, three wave periods, glowing title at 0.68 height.
func DefaultIconConfig() IconConfig {
	return IconConfig{
		Size:       1024,
		Background: color.NRGBA{R: 15, G: 20, B: 35, A: 255},

		RingColor: color.NRGBA{R: 80, G: 140, B: 255},
		Rings: []RingSpec{
			{Radius: 380, Alpha: 40},
			{Radius: 330, Alpha: 60},
			{Radius: 280, Alpha: 80},
		},
		RingStroke: 10,

		WaveColor:  color.NRGBA{R: 120, G: 200, B: 255, A: 255},
		WaveAmp:    120,
		WaveInset:  120,
		WaveStep:   4,
		WaveCycles: 3,
		WaveStroke: 16,

		Text:        "40Hz",
		TextColor:   color.NRGBA{R: 235, G: 245, B: 255, A: 255},
		TextSize:    180,
		TextVCenter: 0.68,

		GlowColor:     color.NRGBA{R: 120, G: 200, B: 255},
		GlowPasses:    8,
		GlowAlphaUnit: 18,

		FontPaths: DefaultFontPaths(),
	}
}

// DefaultFontPaths lists candidate title fonts in preference order. The first
// file that exists and parses is used; otherwise rendering falls back to the
// built-in bitmap face.
func DefaultFontPaths() []string {
	return []string{
		"/System/Library/Fonts/Supplemental/Helvetica.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Verdana.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	}
}
