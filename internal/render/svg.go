package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVGIcon renders the icon as scalable vector markup mirroring the raster
// composition: background, ring outlines, wave polyline, then the title with
// a soft stroke underlay standing in for the glow passes. Ring circles use
// the stroke centerline, so the painted band matches the raster annulus.
func SVGIcon(cfg IconConfig) []byte {
	var buf bytes.Buffer
	s := svg.New(&buf)
	s.Start(cfg.Size, cfg.Size)
	s.Rect(0, 0, cfg.Size, cfg.Size, "fill:"+hexColor(cfg.Background))

	c := cfg.Size / 2
	for _, ring := range cfg.Rings {
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-opacity:%.3f",
			hexColor(cfg.RingColor), cfg.RingStroke, float64(ring.Alpha)/255)
		s.Circle(c, c, ring.Radius-cfg.RingStroke/2, style)
	}

	pts := wavePoints(cfg)
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = int(math.Round(p[0]))
		ys[i] = int(math.Round(p[1]))
	}
	s.Polyline(xs, ys, fmt.Sprintf(
		"fill:none;stroke:%s;stroke-width:%.0f;stroke-linecap:round;stroke-linejoin:round",
		hexColor(cfg.WaveColor), cfg.WaveStroke))

	if cfg.Text != "" {
		textY := int(math.Round(cfg.TextVCenter*float64(cfg.Size) + cfg.TextSize*0.36))
		base := fmt.Sprintf("font-family:Helvetica, Arial, Verdana, sans-serif;font-size:%.0fpx;text-anchor:middle", cfg.TextSize)
		s.Text(c, textY, cfg.Text,
			base+fmt.Sprintf(";fill:none;stroke:%s;stroke-width:12;stroke-opacity:0.28", hexColor(cfg.GlowColor)))
		s.Text(c, textY, cfg.Text, base+";fill:"+hexColor(cfg.TextColor))
	}

	s.End()
	return buf.Bytes()
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
