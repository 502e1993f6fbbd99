package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"transcript-ocr/src/pkg/util"
)

const (
	contrastFactor    = 2.0
	binarizeThreshold = uint8(150)
	upscaleFactor     = 2
)

// sharpenKernel is the classic 3x3 sharpen filter, normalized by its sum (16).
var sharpenKernel = [9]float64{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

/*
NormalizePage prepares a rasterized transcript page for OCR.

The steps are applied in this order, always:
  - Convert to grayscale.
  - Sharpen with a 3x3 kernel.
  - Double the contrast around the mean gray level of the page.
  - Binarize: gray levels below 150 become black, everything else white.
  - Upscale 2x in both dimensions with a Lanczos filter.
*/
func NormalizePage(page image.Image) *image.NRGBA {
	grayscaleImage := imaging.Grayscale(page)

	sharpenedImage := imaging.Convolve3x3(grayscaleImage, sharpenKernel, &imaging.ConvolveOptions{Normalize: true})

	highContrastImage := enhanceContrast(sharpenedImage, contrastFactor)

	binarizedImage := imaging.AdjustFunc(highContrastImage, func(c color.NRGBA) color.NRGBA {
		// Grayscale, so the red channel is the brightness.
		if c.R < binarizeThreshold {
			return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
		}
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	})

	bounds := binarizedImage.Bounds()
	return imaging.Resize(binarizedImage, bounds.Dx()*upscaleFactor, bounds.Dy()*upscaleFactor, imaging.Lanczos)
}

// enhanceContrast scales every gray level away from the image mean by factor.
func enhanceContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	mean := meanGrayLevel(img)

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		level := uint8(util.Clamp(mean+(float64(c.R)-mean)*factor+0.5, 0, 255))
		return color.NRGBA{R: level, G: level, B: level, A: c.A}
	})
}

func meanGrayLevel(img *image.NRGBA) float64 {
	bounds := img.Bounds()
	pixelCount := bounds.Dx() * bounds.Dy()
	if pixelCount == 0 {
		return 0
	}

	var total uint64
	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			total += uint64(row[x])
		}
	}

	return float64(total) / float64(pixelCount)
}

/*
SaveNormalizedPage writes a normalized page to destinationPath (format picked
from the extension, PNG recommended). Only used for debugging OCR quality.
*/
func SaveNormalizedPage(page image.Image, destinationPath string) (e *xerr.Error) {
	saveErr := imaging.Save(page, destinationPath)
	if saveErr != nil {
		e = xerr.NewError(saveErr, "save normalized page image", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved normalized page to '%s'",
		destinationPath,
	)

	return e
}
