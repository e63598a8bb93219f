package render

import (
	"strings"
	"testing"
)

// TestSVGIconStructure verifies the vector icon carries the expected
// elements: sized root, background rect, three ring circles, wave polyline
// and the title text.
func TestSVGIconStructure(t *testing.T) {
	out := string(SVGIcon(DefaultIconConfig()))

	if !strings.Contains(out, `width="1024"`) || !strings.Contains(out, `height="1024"`) {
		t.Error("Expected a 1024x1024 root element")
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("Expected a closed svg document")
	}
	if !strings.Contains(out, "fill:#0f1423") {
		t.Error("Expected the background fill color")
	}
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("Expected 3 ring circles, got %d", got)
	}
	if !strings.Contains(out, "<polyline") || !strings.Contains(out, "stroke:#78c8ff") {
		t.Error("Expected the wave polyline with its stroke color")
	}
	if !strings.Contains(out, ">40Hz</text>") {
		t.Error("Expected the title text element")
	}
}

// TestSVGIconRingOpacity verifies per-ring alpha becomes stroke opacity.
func TestSVGIconRingOpacity(t *testing.T) {
	out := string(SVGIcon(DefaultIconConfig()))
	for _, opacity := range []string{"stroke-opacity:0.157", "stroke-opacity:0.235", "stroke-opacity:0.314"} {
		if !strings.Contains(out, opacity) {
			t.Errorf("Expected ring opacity %q in the output", opacity)
		}
	}
}

// TestSVGIconNoText verifies the text elements are omitted when the title is
// empty.
func TestSVGIconNoText(t *testing.T) {
	cfg := DefaultIconConfig()
	cfg.Text = ""
	out := string(SVGIcon(cfg))
	if strings.Contains(out, "<text") {
		t.Error("Expected no text elements for an empty title")
	}
}
