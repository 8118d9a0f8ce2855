package screener

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/root4loot/goutils/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Image is a captured screenshot in PNG form.
type Image []byte

const (
	footerPadding = 20
	footerBorder  = 1
)

// AddURLFooter extends the image with a white footer strip carrying the URL
// text. Failure captures use it instead of the in-page overlay, which cannot
// be injected once navigation has gone wrong.
func (imgB Image) AddURLFooter(rawURL string) (Image, error) {
	img, err := png.Decode(bytes.NewReader(imgB))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy() + footerPadding*2 + footerBorder
	dc := gg.NewContext(w, h)

	dc.DrawImage(img, 0, 0)

	yLine := float64(img.Bounds().Dy())
	dc.SetColor(color.Black)
	dc.DrawLine(0, yLine, float64(w), yLine)
	dc.SetLineWidth(float64(footerBorder))
	dc.Stroke()
	dc.SetColor(color.White)
	dc.DrawRectangle(0, yLine, float64(w), float64(footerPadding*2))
	dc.Fill()
	dc.SetColor(color.Black)
	dc.SetFontFace(footerFont())
	dc.DrawStringAnchored(rawURL, float64(w)/2, yLine+float64(footerPadding), 0.5, 0.3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}

func footerFont() font.Face {
	ttFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to parse font: %v", err)
	}

	return truetype.NewFace(ttFont, &truetype.Options{
		Size: 14,
	})
}
