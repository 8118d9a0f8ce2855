package screener

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestAddURLFooter(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 200))

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("Failed to encode source image: %v", err)
	}

	stamped, err := Image(buf.Bytes()).AddURLFooter("https://example.com")
	if err != nil {
		t.Fatalf("Failed to add URL footer: %v", err)
	}

	out, err := png.Decode(bytes.NewReader(stamped))
	if err != nil {
		t.Fatalf("Stamped image is not a valid PNG: %v", err)
	}

	if out.Bounds().Dx() != 320 {
		t.Errorf("Expected width to stay 320, got %d", out.Bounds().Dx())
	}

	wantHeight := 200 + footerPadding*2 + footerBorder
	if out.Bounds().Dy() != wantHeight {
		t.Errorf("Expected height %d, got %d", wantHeight, out.Bounds().Dy())
	}
}

func TestAddURLFooterInvalidImage(t *testing.T) {
	if _, err := Image([]byte("not a png")).AddURLFooter("https://example.com"); err == nil {
		t.Error("Expected an error for non-PNG input")
	}
}
