package render

import (
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"

	"github.com/pnassound/fortyhz/internal/render/layout"
)

// Preview blits a finished canvas to the Linux framebuffer so generated
// artwork can be inspected on a bare console without a graphical session.
type Preview struct {
	dev    *fb.Device
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// Open opens the framebuffer device.
func (p *Preview) Open() error {
	dev, err := fb.Open("/dev/fb0")
	if err != nil {
		return err
	}
	p.dev = dev
	if p.Logger != nil {
		b := dev.Bounds()
		p.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", b.Dx(), b.Dy())
	}
	return nil
}

// Close releases the framebuffer device.
func (p *Preview) Close() error {
	if p.dev != nil {
		p.dev.Close()
	}
	return nil
}

// Show clears the framebuffer to black and blits canvas into the largest
// centered square, nearest-neighbor sampled.
func (p *Preview) Show(canvas *image.RGBA) {
	if p.dev == nil || canvas == nil {
		return
	}
	bounds := p.dev.Bounds()
	black := color.RGBA{A: 0xFF}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p.dev.Set(x, y, black)
		}
	}

	target := layout.CenterSquare(bounds)
	srcBounds := canvas.Bounds()
	dstW := target.Dx()
	dstH := target.Dy()
	if dstW == 0 || dstH == 0 {
		return
	}
	for y := 0; y < dstH; y++ {
		sy := srcBounds.Min.Y + (y*srcBounds.Dy())/dstH
		for x := 0; x < dstW; x++ {
			sx := srcBounds.Min.X + (x*srcBounds.Dx())/dstW
			pix := canvas.RGBAAt(sx, sy)
			p.dev.Set(target.Min.X+x, target.Min.Y+y, color.RGBA{R: pix.R, G: pix.G, B: pix.B, A: 0xFF})
		}
	}
	if p.Logger != nil {
		p.Logger.Infof("fb", "preview blit done, target=%dx%d", dstW, dstH)
	}
}
