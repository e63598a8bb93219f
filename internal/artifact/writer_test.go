package artifact

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/pnassound/fortyhz/internal/render"
)

// TestWritePNGCreatesDirectories verifies nested parent directories are
// created and the file decodes back to the same image.
func TestWritePNGCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "icon.png")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill := color.RGBA{R: 15, G: 20, B: 35, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("Expected 8x8 image, got %v", decoded.Bounds())
	}
	r, g, b, a := decoded.At(0, 0).RGBA()
	if r>>8 != 15 || g>>8 != 20 || b>>8 != 35 || a>>8 != 255 {
		t.Errorf("Expected fill color back, got %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

// TestWritePNGOverwrites verifies a second write replaces the first file.
func TestWritePNGOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	small := image.NewRGBA(image.Rect(0, 0, 2, 2))
	large := image.NewRGBA(image.Rect(0, 0, 16, 16))

	if err := WritePNG(path, large); err != nil {
		t.Fatalf("first WritePNG: %v", err)
	}
	if err := WritePNG(path, small); err != nil {
		t.Fatalf("second WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.Bounds().Dx() != 2 {
		t.Errorf("Expected the overwritten 2x2 image, got %v", decoded.Bounds())
	}
}

// TestWriteRenderedIcon verifies the full pipeline: render the icon, write
// it, decode it back, and check size and the background pixel.
func TestWriteRenderedIcon(t *testing.T) {
	cfg := render.DefaultIconConfig()
	path := filepath.Join(t.TempDir(), "Assets", "AppIcon-1024.png")

	if err := WritePNG(path, render.Icon(cfg)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.Bounds().Dx() != cfg.Size || decoded.Bounds().Dy() != cfg.Size {
		t.Fatalf("Expected %dx%d image, got %v", cfg.Size, cfg.Size, decoded.Bounds())
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 15 || g>>8 != 20 || b>>8 != 35 {
		t.Errorf("Expected the background pixel at the corner, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

// TestWriteSVG verifies the markup lands on disk byte for byte.
func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vector", "AppIcon.svg")
	markup := []byte(`<svg width="8" height="8"></svg>`)

	if err := WriteSVG(path, markup); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(got, markup) {
		t.Errorf("Expected markup round trip, got %q", got)
	}
}

// TestWriteWAVRoundTrip verifies the PCM encoding: sample rate, mono layout,
// frame count and 16-bit quantization.
func TestWriteWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio", "stimulus.wav")
	samples := make([]float64, 64)
	for i := range samples {
		samples[i] = float64(i-32) / 64
	}

	if err := WriteWAV(path, samples, 44100); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		t.Fatal("Expected a valid wav file")
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if buf.Format.SampleRate != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", buf.Format.SampleRate)
	}
	if buf.Format.NumChannels != 1 {
		t.Errorf("Expected mono output, got %d channels", buf.Format.NumChannels)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("Expected %d frames, got %d", len(samples), len(buf.Data))
	}
	for i, s := range samples {
		if want := int(s * 32767); buf.Data[i] != want {
			t.Errorf("Expected frame %d to be %d, got %d", i, want, buf.Data[i])
		}
	}
}

// TestWriteWAVClamps verifies out-of-range samples clamp to full scale.
func TestWriteWAVClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clamp.wav")
	if err := WriteWAV(path, []float64{2, -2}, 44100); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		t.Fatal("Expected a valid wav file")
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(buf.Data) != 2 || buf.Data[0] != 32767 || buf.Data[1] != -32767 {
		t.Errorf("Expected full scale frames, got %v", buf.Data)
	}
}
