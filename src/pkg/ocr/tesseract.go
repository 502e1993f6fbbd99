package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const DefaultLanguage = "eng"

/*
TesseractSettings holds the per-run OCR options.

The engine and page segmentation modes are not configurable: the client
keeps Tesseract's default engine mode (OEM 3, LSTM plus legacy) and is
always switched to PSM 6, a single uniform block of text, which suits the
tabular transcript layout.
*/
type TesseractSettings struct {
	Language string `json:"language"`
	// When set, every normalized page is also saved here as page-N.png.
	DebugImageDir string `json:"debug_image_dir,omitempty"`
}

// TesseractRecognizer runs gosseract on rasterized pages.
type TesseractRecognizer struct {
	Settings TesseractSettings
}

func (r TesseractRecognizer) PageText(page image.Image, pageIndex int) (string, *xerr.Error) {
	settings := r.Settings
	if settings.DebugImageDir != "" {
		normalizedPage := NormalizePage(page)
		debugPath := filepath.Join(settings.DebugImageDir, fmt.Sprintf("page-%d.png", pageIndex+1))
		e := SaveNormalizedPage(normalizedPage, debugPath)
		if e != nil {
			return "", e
		}
		return runOcrOnNormalizedPage(normalizedPage, settings)
	}
	return ExtractPageText(page, settings)
}

/*
ExtractPageText normalizes a raw page image and runs OCR on it.

It returns the raw OCR text (newlines preserved) or a *xerr.Error if
something goes wrong (for example, Tesseract missing, language data missing,
or an encode failure). OCR misreads are passed through untouched.
*/
func ExtractPageText(page image.Image, settings TesseractSettings) (ocrText string, e *xerr.Error) {
	return runOcrOnNormalizedPage(NormalizePage(page), settings)
}

func runOcrOnNormalizedPage(normalizedPage image.Image, settings TesseractSettings) (ocrText string, e *xerr.Error) {
	language := strings.TrimSpace(settings.Language)
	if language == "" {
		language = DefaultLanguage
	}

	var encoded bytes.Buffer
	encodeErr := png.Encode(&encoded, normalizedPage)
	if encodeErr != nil {
		return "", xerr.NewError(encodeErr, "encode normalized page as PNG", language)
	}

	tl.Log(tl.Info1, palette.Cyan, "Running OCR on normalized page (%s bytes, language '%s')", fmt.Sprintf("%d", encoded.Len()), language)

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	err := client.SetLanguage(strings.Split(language, "+")...)
	if err != nil {
		return "", xerr.NewError(err, fmt.Sprintf("unable to client.SetLanguage(%q)", language), language)
	}

	// Match CLI: `--psm 6` (single uniform block of text).
	err = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	if err != nil {
		e = xerr.NewError(err, "unable to client.SetPageSegMode(PSM_SINGLE_BLOCK)", language)
		return
	}

	err = client.SetImageFromBytes(encoded.Bytes())
	if err != nil {
		return "", xerr.NewError(err, "unable to client.SetImageFromBytes(page)", language)
	}

	ocrText, ocrErr := client.Text()
	if ocrErr != nil {
		return "", xerr.NewError(ocrErr, "unable to run OCR on page", language)
	}

	tl.Log(
		tl.Info1, palette.Green, "OCR completed (text length: %s)",
		fmt.Sprintf("%d", len(ocrText)),
	)

	return ocrText, e
}
