package render

import (
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// BuiltinFaceName identifies the bitmap fallback face in the return value of
// ResolveFace.
const BuiltinFaceName = "builtin"

// ResolveFace probes the candidate font paths in order and returns a face at
// the requested point size for the first file that exists and parses.
// Unreadable or malformed files are skipped. When no candidate works it
// returns the built-in 7x13 bitmap face, so rendering always has a face to
// draw with. The second return value is the chosen path, or BuiltinFaceName
// for the fallback.
func ResolveFace(paths []string, size float64) (font.Face, string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		face := truetype.NewFace(parsed, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		return face, path
	}
	return basicfont.Face7x13, BuiltinFaceName
}
