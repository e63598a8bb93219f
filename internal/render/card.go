package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/pnassound/fortyhz/internal/render/layout"
)

// Card geometry. Cards share the icon palette so the asset set reads as one
// family.
const (
	CardWidth  = 1200
	CardHeight = 675

	cardPadding = 48
	cardHeaderH = 132
	cardFooterH = 84
	qrColumnW   = 360
	qrCodePx    = 280

	spectrumHeaderH = 90
	spectrumMaxHz   = 1200.0
)

var (
	cardBackground = color.NRGBA{R: 15, G: 20, B: 35, A: 255}
	cardInk        = color.NRGBA{R: 235, G: 245, B: 255, A: 255}
	cardAccent     = color.NRGBA{R: 120, G: 200, B: 255, A: 255}
	cardDim        = color.NRGBA{R: 80, G: 140, B: 255, A: 255}
)

// CardParam is one label/value row on the reference card.
type CardParam struct {
	Label string
	Value string
}

// CardInfo is the content of the reference card. The caller fills it from
// the stimulus parameters, keeping this package a pure renderer.
type CardInfo struct {
	Title     string
	Subtitle  string
	Params    []CardParam
	Footer    []string
	QRPayload string
	QRCaption string
}

// ReferenceCard renders a printable parameter card: title and subtitle in
// the header, parameter rows on the left, QR code on the right, footer
// lines at the bottom.
func ReferenceCard(info CardInfo) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	fillRect(canvas, canvas.Bounds(), cardBackground)

	titleFace, _ := ResolveFace(DefaultFontPaths(), 54)
	labelFace, _ := ResolveFace(DefaultFontPaths(), 28)
	smallFace, _ := ResolveFace(DefaultFontPaths(), 20)

	content := layout.Inset(canvas.Bounds(), cardPadding)
	header, rest := layout.SplitHorizontal(content, cardHeaderH)
	body, footer := layout.SplitHorizontal(rest, rest.Dy()-cardFooterH)
	params, qrColumn := layout.SplitVertical(body, body.Dx()-qrColumnW)

	titleAscent := titleFace.Metrics().Ascent.Ceil()
	drawText(canvas, titleFace, info.Title, header.Min.X, header.Min.Y+titleAscent, cardInk)
	if info.Subtitle != "" {
		subBaseline := header.Min.Y + titleAscent + 14 + labelFace.Metrics().Ascent.Ceil()
		drawText(canvas, labelFace, info.Subtitle, header.Min.X, subBaseline, cardAccent)
	}
	fillRect(canvas, image.Rect(header.Min.X, header.Max.Y-4, header.Max.X, header.Max.Y-2), cardDim)

	labelAscent := labelFace.Metrics().Ascent.Ceil()
	maxLabelW := 0
	for _, p := range info.Params {
		if w := measureText(labelFace, p.Label); w > maxLabelW {
			maxLabelW = w
		}
	}
	valueX := params.Min.X + maxLabelW + 32
	rowH := labelFace.Metrics().Height.Ceil() + 18
	y := params.Min.Y + 16 + labelAscent
	for _, p := range info.Params {
		if y > params.Max.Y {
			break
		}
		drawText(canvas, labelFace, p.Label, params.Min.X, y, cardAccent)
		drawText(canvas, labelFace, p.Value, valueX, y, cardInk)
		y += rowH
	}

	smallHeight := smallFace.Metrics().Height.Ceil() + 6
	fy := footer.Min.Y + smallFace.Metrics().Ascent.Ceil()
	for _, line := range info.Footer {
		drawText(canvas, smallFace, line, footer.Min.X, fy, cardDim)
		fy += smallHeight
	}

	qrImg, err := QRCode(info.QRPayload, qrCodePx)
	if err != nil {
		return nil, fmt.Errorf("reference card qr: %w", err)
	}
	if qrImg != nil {
		qrArea, captionArea := layout.SplitHorizontal(qrColumn, qrColumn.Dy()-48)
		qrRect := layout.Center(qrArea, qrCodePx, qrCodePx)
		draw.Draw(canvas, qrRect, qrImg, qrImg.Bounds().Min, draw.Over)
		if info.QRCaption != "" {
			capBaseline := captionArea.Min.Y + smallFace.Metrics().Ascent.Ceil() + 8
			drawTextCenteredIn(canvas, smallFace, info.QRCaption, captionArea, capBaseline, cardAccent)
		}
	}

	return canvas, nil
}

// SpectrumCard renders a magnitude plot of the stimulus spectrum up to
// spectrumMaxHz, with the dominant bin called out in the header. mags and
// binHz come straight from the spectrum analysis of the rendered samples.
func SpectrumCard(mags []float64, binHz float64) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	fillRect(canvas, canvas.Bounds(), cardBackground)

	titleFace, _ := ResolveFace(DefaultFontPaths(), 44)
	labelFace, _ := ResolveFace(DefaultFontPaths(), 22)

	content := layout.Inset(canvas.Bounds(), cardPadding)
	header, plotArea := layout.SplitHorizontal(content, spectrumHeaderH)

	drawText(canvas, titleFace, "Stimulus Spectrum", header.Min.X, header.Min.Y+titleFace.Metrics().Ascent.Ceil(), cardInk)

	plot := layout.Inset(plotArea, 8)
	fillRect(canvas, image.Rect(plot.Min.X, plot.Max.Y-1, plot.Max.X, plot.Max.Y), cardDim)

	limit := len(mags)
	if binHz > 0 {
		if n := int(spectrumMaxHz/binHz) + 1; n < limit {
			limit = n
		}
	}
	if limit < 2 || plot.Dx() < 2 || plot.Dy() < 4 {
		return canvas
	}

	peakBin := 1
	norm := 0.0
	for i := 1; i < limit; i++ {
		if mags[i] > norm {
			norm = mags[i]
			peakBin = i
		}
	}
	if norm <= 0 {
		return canvas
	}

	peakLabel := fmt.Sprintf("peak %.0f Hz", float64(peakBin)*binHz)
	drawText(canvas, labelFace, peakLabel,
		header.Max.X-measureText(labelFace, peakLabel),
		header.Min.Y+labelFace.Metrics().Ascent.Ceil(), cardAccent)

	accent := color.RGBA{R: cardAccent.R, G: cardAccent.G, B: cardAccent.B, A: 255}
	maxBarH := plot.Dy() - 2
	for x := 0; x < plot.Dx(); x++ {
		binLo := 1 + x*(limit-1)/plot.Dx()
		binHi := 1 + (x+1)*(limit-1)/plot.Dx()
		if binHi <= binLo {
			binHi = binLo + 1
		}
		v := 0.0
		for i := binLo; i < binHi && i < limit; i++ {
			if mags[i] > v {
				v = mags[i]
			}
		}
		barH := int(v / norm * float64(maxBarH))
		for yy := 0; yy < barH; yy++ {
			canvas.SetRGBA(plot.Min.X+x, plot.Max.Y-2-yy, accent)
		}
	}

	return canvas
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func measureText(face font.Face, text string) int {
	d := &font.Drawer{Face: face}
	return d.MeasureString(text).Ceil()
}

func drawText(img *image.RGBA, face font.Face, text string, x, baselineY int, fg color.Color) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face, Dot: fixed.P(x, baselineY)}
	d.DrawString(text)
}

func drawTextCenteredIn(img *image.RGBA, face font.Face, text string, rect image.Rectangle, baselineY int, fg color.Color) {
	w := measureText(face, text)
	drawText(img, face, text, rect.Min.X+(rect.Dx()-w)/2, baselineY, fg)
}
