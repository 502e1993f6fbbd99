package ocr

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const DefaultDPI = 200.0

// Rasterizer renders PDF pages with MuPDF at a fixed resolution.
type Rasterizer struct {
	DPI float64
}

func (r Rasterizer) Pages(pdfPath string) ([]image.Image, *xerr.Error) {
	return RasterizePDF(pdfPath, r.DPI)
}

/*
RasterizePDF renders every page of the PDF at pdfPath into an image, in
document order.

An unreadable path or a corrupt document is returned as a *xerr.Error so the
caller can report it instead of crashing. A dpi of zero or less falls back to
DefaultDPI.
*/
func RasterizePDF(pdfPath string, dpi float64) (pages []image.Image, e *xerr.Error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	tl.Log(tl.Info1, palette.Blue, "Rasterizing PDF '%s' at %s DPI", pdfPath, fmt.Sprintf("%.0f", dpi))

	doc, openErr := fitz.New(pdfPath)
	if openErr != nil {
		e = xerr.NewError(openErr, "open PDF document", pdfPath)
		return nil, e
	}
	defer func() {
		_ = doc.Close()
	}()

	pageCount := doc.NumPage()
	pages = make([]image.Image, 0, pageCount)

	for pageIndex := 0; pageIndex < pageCount; pageIndex++ {
		pageImage, renderErr := doc.ImageDPI(pageIndex, dpi)
		if renderErr != nil {
			e = xerr.NewError(renderErr, "render PDF page", fmt.Sprintf("%s (page %d)", pdfPath, pageIndex+1))
			return nil, e
		}
		pages = append(pages, pageImage)
	}

	tl.Log(
		tl.Info1, palette.Green, "Rasterized %s pages from '%s'",
		fmt.Sprintf("%d", len(pages)), pdfPath,
	)

	return pages, nil
}
