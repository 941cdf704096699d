package images

import (
	"bytes"
	"encoding/base64"

	"github.com/fogleman/gg"
)

// Default placeholder size, matching the default size of a replaced
// element with no intrinsic dimensions.
const (
	defaultPlaceholderWidth  = 300
	defaultPlaceholderHeight = 150
)

// Placeholder renders a neutral box of the given pixel size and returns it
// as a base64 PNG data URL, used to reserve layout space before the real
// content arrives. Non-positive dimensions fall back to the defaults.
func Placeholder(width, height int) string {
	if width <= 0 {
		width = defaultPlaceholderWidth
	}
	if height <= 0 {
		height = defaultPlaceholderHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB255(0xee, 0xee, 0xee)
	dc.Clear()
	dc.SetRGB255(0xd0, 0xd0, 0xd0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(width)-1, float64(height)-1)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
