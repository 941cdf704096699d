// Package images holds the pixel-level primitives behind deferred image
// loading: decoding, cheap intrinsic-size probing, data-URL handling, and
// placeholder generation.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// ProbeSize reads just enough of the encoded image to report its intrinsic
// dimensions, without decoding pixel data. This is the cheap "natural size
// known before the image is ready" step of eager showing.
func ProbeSize(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("probing image size: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Decode fully decodes an encoded image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// IsDataURL reports whether s is an inline data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL extracts the raw bytes of a base64 data URL such as
// "data:image/png;base64,....".
func DecodeDataURL(s string) ([]byte, error) {
	if !IsDataURL(s) {
		return nil, fmt.Errorf("not a data URL: %q", s)
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URL: no comma")
	}
	meta, payload := s[len("data:"):comma], s[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding in %q", meta)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URL payload: %w", err)
	}
	return data, nil
}
