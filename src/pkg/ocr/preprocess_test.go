package ocr

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

func TestNormalizePageDoublesSize(t *testing.T) {
	page := uniformImage(30, 20, color.White)

	normalized := NormalizePage(page)

	assert.Equal(t, 60, normalized.Bounds().Dx())
	assert.Equal(t, 40, normalized.Bounds().Dy())
}

func TestNormalizePageUniformPages(t *testing.T) {
	tests := []struct {
		name string
		fill color.Color
		want uint8
	}{
		{"white stays white", color.White, 255},
		{"light gray becomes white", color.NRGBA{R: 200, G: 200, B: 200, A: 255}, 255},
		{"dark gray becomes black", color.NRGBA{R: 100, G: 100, B: 100, A: 255}, 0},
		{"black stays black", color.Black, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := NormalizePage(uniformImage(16, 16, tt.fill))

			for y := 0; y < normalized.Bounds().Dy(); y++ {
				for x := 0; x < normalized.Bounds().Dx(); x++ {
					c := normalized.NRGBAAt(x, y)
					require.Equal(t, tt.want, c.R, "pixel (%d,%d)", x, y)
					require.Equal(t, c.R, c.G)
					require.Equal(t, c.R, c.B)
				}
			}
		})
	}
}

func TestNormalizePageSeparatesInkFromPaper(t *testing.T) {
	page := uniformImage(40, 40, color.NRGBA{R: 230, G: 230, B: 230, A: 255})
	// dark block standing in for a glyph
	ink := uniformImage(10, 10, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	page = imaging.Paste(page, ink, image.Pt(15, 15))

	normalized := NormalizePage(page)

	assert.Equal(t, uint8(0), normalized.NRGBAAt(40, 40).R)
	assert.Equal(t, uint8(255), normalized.NRGBAAt(4, 4).R)
}

func TestEnhanceContrastAroundMean(t *testing.T) {
	img := imaging.New(2, 1, color.Black)
	img.SetNRGBA(0, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 140, G: 140, B: 140, A: 255})

	enhanced := enhanceContrast(img, 2.0)

	// mean 120: 100 -> 80, 140 -> 160
	assert.Equal(t, uint8(80), enhanced.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(160), enhanced.NRGBAAt(1, 0).R)
}

func TestEnhanceContrastClamps(t *testing.T) {
	img := imaging.New(2, 1, color.Black)
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 250, G: 250, B: 250, A: 255})

	enhanced := enhanceContrast(img, 2.0)

	assert.Equal(t, uint8(0), enhanced.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(255), enhanced.NRGBAAt(1, 0).R)
}

func TestSaveNormalizedPage(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "page-1.png")

	e := SaveNormalizedPage(NormalizePage(uniformImage(8, 8, color.White)), destination)
	require.Nil(t, e)

	saved, openErr := imaging.Open(destination)
	require.NoError(t, openErr)
	assert.Equal(t, 16, saved.Bounds().Dx())
}

func TestRasterizePDFMissingFile(t *testing.T) {
	pages, e := RasterizePDF(filepath.Join(t.TempDir(), "missing.pdf"), 0)
	assert.NotNil(t, e)
	assert.Nil(t, pages)
}
