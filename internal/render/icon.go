package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Icon renders the full composition onto an opaque canvas and returns it.
// Layers go down in a fixed order: background, rings outermost first, wave,
// title glow, solid title. The output is deterministic for a given config
// and resolved font.
func Icon(cfg IconConfig) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, cfg.Size, cfg.Size))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: cfg.Background}, image.Point{}, draw.Src)

	drawRings(canvas, cfg)
	drawWave(canvas, cfg)
	drawTitle(canvas, cfg)

	return canvas
}

// drawRings strokes each ring as an annulus band whose outer edge sits at
// the ring radius and whose inner edge sits RingStroke px further in.
func drawRings(canvas *image.RGBA, cfg IconConfig) {
	center := float64(cfg.Size) / 2
	stroke := float64(cfg.RingStroke)

	for _, ring := range cfg.Rings {
		col := color.NRGBA{R: cfg.RingColor.R, G: cfg.RingColor.G, B: cfg.RingColor.B, A: ring.Alpha}
		outer := float64(ring.Radius)
		inner := outer - stroke

		lo := int(center - outer - 1)
		hi := int(center + outer + 1)
		for y := lo; y <= hi; y++ {
			dy := float64(y) + 0.5 - center
			for x := lo; x <= hi; x++ {
				dx := float64(x) + 0.5 - center
				dist := math.Hypot(dx, dy)
				cov := coverage(math.Min(outer-dist, dist-inner))
				if cov > 0 {
					blendOver(canvas, x, y, col, cov)
				}
			}
		}
	}
}

// drawWave strokes the sine polyline with round joints by taking, per pixel,
// the distance to the nearest segment. Segments advance a fixed step in x,
// so only the few segments within the stroke radius of a pixel's column need
// testing.
func drawWave(canvas *image.RGBA, cfg IconConfig) {
	pts := wavePoints(cfg)
	if len(pts) < 2 {
		return
	}
	half := cfg.WaveStroke / 2
	pad := half + 1
	step := float64(cfg.WaveStep)
	inset := float64(cfg.WaveInset)
	center := float64(cfg.Size) / 2
	nseg := len(pts) - 1

	x0 := int(math.Floor(pts[0][0] - pad))
	x1 := int(math.Ceil(pts[nseg][0] + pad))
	y0 := int(math.Floor(center - cfg.WaveAmp - pad))
	y1 := int(math.Ceil(center + cfg.WaveAmp + pad))

	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5

			first := int((px-inset-pad)/step) - 1
			last := int((px-inset+pad)/step) + 1
			if first < 0 {
				first = 0
			}
			if last > nseg-1 {
				last = nseg - 1
			}
			if first > last {
				continue
			}

			best := math.MaxFloat64
			for i := first; i <= last; i++ {
				d := pointSegmentDist(px, py, pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1])
				if d < best {
					best = d
				}
			}
			cov := coverage(half - best)
			if cov > 0 {
				blendOver(canvas, x, y, cfg.WaveColor, cov)
			}
		}
	}
}

// wavePoints samples the polyline: x advances by WaveStep across
// [WaveInset, Size-WaveInset), the phase completes WaveCycles periods over
// the inset span, and y swings WaveAmp around the vertical center.
func wavePoints(cfg IconConfig) [][2]float64 {
	span := float64(cfg.Size - 2*cfg.WaveInset)
	center := float64(cfg.Size) / 2
	pts := make([][2]float64, 0, (cfg.Size-2*cfg.WaveInset)/cfg.WaveStep+1)
	for x := cfg.WaveInset; x < cfg.Size-cfg.WaveInset; x += cfg.WaveStep {
		t := float64(x-cfg.WaveInset) / span * 2 * math.Pi * cfg.WaveCycles
		pts = append(pts, [2]float64{float64(x), center + math.Sin(t)*cfg.WaveAmp})
	}
	return pts
}

// drawTitle draws the glow passes widest first, then the solid title on top,
// all at the same ink-box-centered origin.
func drawTitle(canvas *image.RGBA, cfg IconConfig) {
	if cfg.Text == "" {
		return
	}
	face, _ := ResolveFace(cfg.FontPaths, cfg.TextSize)

	bounds, _ := font.BoundString(face, cfg.Text)
	glyphW := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	originX := (cfg.Size-glyphW)/2 - bounds.Min.X.Floor()
	vCenter := int(math.Round(cfg.TextVCenter * float64(cfg.Size)))
	originY := vCenter - glyphH/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{Dst: canvas, Face: face}

	for pass := cfg.GlowPasses; pass >= 1; pass-- {
		a := pass * int(cfg.GlowAlphaUnit)
		if a > 255 {
			a = 255
		}
		d.Src = image.NewUniform(color.NRGBA{R: cfg.GlowColor.R, G: cfg.GlowColor.G, B: cfg.GlowColor.B, A: uint8(a)})
		d.Dot = fixed.P(originX, originY)
		d.DrawString(cfg.Text)
	}

	d.Src = image.NewUniform(cfg.TextColor)
	d.Dot = fixed.P(originX, originY)
	d.DrawString(cfg.Text)
}

// coverage converts a signed distance inside a stroke band to pixel coverage
// with a one-pixel feathered edge.
func coverage(d float64) float64 {
	c := d + 0.5
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 1
	}
	return c
}

// blendOver composites col source-over at the given coverage. The canvas is
// opaque, so the result alpha stays 255 and the channel math is exact.
func blendOver(canvas *image.RGBA, x, y int, col color.NRGBA, cov float64) {
	a := float64(col.A) / 255 * cov
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	p := canvas.RGBAAt(x, y)
	canvas.SetRGBA(x, y, color.RGBA{
		R: uint8(math.Round(float64(col.R)*a + float64(p.R)*(1-a))),
		G: uint8(math.Round(float64(col.G)*a + float64(p.G)*(1-a))),
		B: uint8(math.Round(float64(col.B)*a + float64(p.B)*(1-a))),
		A: 255,
	})
}

// pointSegmentDist returns the distance from (px, py) to the closed segment
// from a to b.
func pointSegmentDist(px, py, ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
