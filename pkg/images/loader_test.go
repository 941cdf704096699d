package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG encodes a solid-color PNG of the given size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, red)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestProbeSize(t *testing.T) {
	data := testPNG(t, 6, 4)
	w, h, err := ProbeSize(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 6 || h != 4 {
		t.Errorf("expected 6x4, got %dx%d", w, h)
	}
}

func TestProbeSize_Invalid(t *testing.T) {
	if _, _, err := ProbeSize([]byte("not an image")); err == nil {
		t.Error("expected error for junk bytes")
	}
}

func TestDecode(t *testing.T) {
	data := testPNG(t, 2, 2)
	img, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Errorf("expected 2x2 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestIsDataURL(t *testing.T) {
	if !IsDataURL("data:image/png;base64,abc") {
		t.Error("expected true for data URL")
	}
	if IsDataURL("/path/to/file.png") {
		t.Error("expected false for file path")
	}
	if IsDataURL("") {
		t.Error("expected false for empty string")
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw := testPNG(t, 2, 2)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	data, err := DecodeDataURL(uri)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, raw) {
		t.Error("round-tripped bytes differ")
	}
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	tests := []string{
		"not-a-data-url",
		"data:image/png;base64", // no comma
		"data:image/png;base64,!!!invalid-base64!!!",
		"data:image/png,rawpayload", // not base64-encoded
	}
	for _, uri := range tests {
		if _, err := DecodeDataURL(uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}

func TestPlaceholder_ReportedSize(t *testing.T) {
	uri := Placeholder(40, 30)
	data, err := DecodeDataURL(uri)
	if err != nil {
		t.Fatalf("placeholder is not a valid data URL: %v", err)
	}
	w, h, err := ProbeSize(data)
	if err != nil {
		t.Fatalf("placeholder is not a decodable image: %v", err)
	}
	if w != 40 || h != 30 {
		t.Errorf("expected 40x30 placeholder, got %dx%d", w, h)
	}
}

func TestPlaceholder_Defaults(t *testing.T) {
	uri := Placeholder(0, -5)
	data, err := DecodeDataURL(uri)
	if err != nil {
		t.Fatalf("placeholder is not a valid data URL: %v", err)
	}
	w, h, err := ProbeSize(data)
	if err != nil {
		t.Fatalf("placeholder is not a decodable image: %v", err)
	}
	if w != defaultPlaceholderWidth || h != defaultPlaceholderHeight {
		t.Errorf("expected default %dx%d, got %dx%d",
			defaultPlaceholderWidth, defaultPlaceholderHeight, w, h)
	}
}
