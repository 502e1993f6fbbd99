package pipeline

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"transcript-ocr/src/pkg/report"
	"transcript-ocr/src/pkg/transcript"
	"transcript-ocr/src/pkg/util"
)

// Status tells how a run ended when no *xerr.Error was returned.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusFileNotFound Status = "file_not_found"
	StatusNoSubjects   Status = "no_subjects"
)

const (
	MessageFileNotFound = "Error: File not found!"
	MessageNoSubjects   = "Error: Failed to extract some data. Check OCR accuracy."
)

// PageSource turns a PDF into page images, in document order.
type PageSource interface {
	Pages(pdfPath string) ([]image.Image, *xerr.Error)
}

// TextRecognizer runs OCR on one page image.
type TextRecognizer interface {
	PageText(page image.Image, pageIndex int) (string, *xerr.Error)
}

type Options struct {
	OutputDir string `json:"output_dir"`
	// Save the raw OCR text and the parsed transcript next to the spreadsheet.
	SaveOcrText bool `json:"save_ocr_text"`
	// Where the raw OCR dump is printed. Nil means stdout.
	OcrDump io.Writer `json:"-"`
}

type Result struct {
	Status     Status                `json:"status"`
	Transcript transcript.Transcript `json:"transcript"`
	RawText    string                `json:"-"`
	PageCount  int                   `json:"page_count"`
	ReportPath string                `json:"report_path"`
}

/*
ProcessTranscript runs the whole flow for one PDF:
  1. Checks that pdfPath exists (StatusFileNotFound otherwise).
  2. Rasterizes it and OCRs every page, in order.
  3. Prints the joined raw OCR text for diagnostics.
  4. Parses registration number, SGPA/CGPA and subject rows.
  5. Writes the spreadsheet, unless no subject rows were found (StatusNoSubjects).

A missing file and an empty parse are reported through result.Status with a
nil error; they are expected outcomes, not failures. Rasterizer, OCR and
spreadsheet failures come back as a *xerr.Error. No spreadsheet is written
unless result.Status is StatusSaved.
*/
func ProcessTranscript(pdfPath string, source PageSource, recognizer TextRecognizer, options Options) (result Result, e *xerr.Error) {
	trimmedPath := strings.TrimSpace(pdfPath)
	if trimmedPath == "" || !util.FileExists(trimmedPath) {
		tl.Log(tl.Warning, palette.PurpleBold, "%s '%s'", MessageFileNotFound, trimmedPath)
		result.Status = StatusFileNotFound
		return result, nil
	}

	outputDir := strings.TrimSpace(options.OutputDir)
	if outputDir == "" {
		outputDir = report.DefaultOutputDir
	}

	tl.Log(tl.Notice, palette.BlueBold, "%s: '%s'", "Processing", trimmedPath)

	result.RawText, result.PageCount, e = ExtractDocumentText(trimmedPath, source, recognizer)
	if e != nil {
		return result, e
	}

	dump := options.OcrDump
	if dump == nil {
		dump = os.Stdout
	}
	_, _ = fmt.Fprintf(dump, "\nOCR Extracted Text:\n%s\n", result.RawText)

	result.Transcript = transcript.ParseDocument(result.RawText)
	regNo := result.Transcript.RegistrationNumber

	if options.SaveOcrText {
		e = saveDebugArtifacts(outputDir, regNo, result)
		if e != nil {
			return result, e
		}
	}

	if len(result.Transcript.Subjects) == 0 {
		tl.Log(tl.Warning, palette.PurpleBold, "%s", MessageNoSubjects)
		result.Status = StatusNoSubjects
		return result, nil
	}

	result.ReportPath, e = report.WriteReport(
		result.Transcript.Subjects, regNo, result.Transcript.SGPA, result.Transcript.CGPA, outputDir,
	)
	if e != nil {
		return result, e
	}

	result.Status = StatusSaved
	tl.Log(tl.Notice1, palette.GreenBold, "Results saved as: '%s'", result.ReportPath)

	return result, nil
}

/*
ExtractDocumentText rasterizes the PDF and recognizes each page in turn.
Page texts are joined with a newline.
*/
func ExtractDocumentText(pdfPath string, source PageSource, recognizer TextRecognizer) (text string, pageCount int, e *xerr.Error) {
	pages, e := source.Pages(pdfPath)
	if e != nil {
		return "", 0, e
	}

	pageTexts := make([]string, 0, len(pages))
	for pageIndex, page := range pages {
		tl.Log(tl.Info, palette.Cyan, "OCR page %s/%s", fmt.Sprintf("%d", pageIndex+1), fmt.Sprintf("%d", len(pages)))

		pageText, pageErr := recognizer.PageText(page, pageIndex)
		if pageErr != nil {
			return "", 0, pageErr
		}
		pageTexts = append(pageTexts, pageText)
	}

	return strings.Join(pageTexts, "\n"), len(pages), nil
}

func saveDebugArtifacts(outputDir string, regNo string, result Result) (e *xerr.Error) {
	e = util.EnsureOutputDirectory(outputDir)
	if e != nil {
		return e
	}

	e = util.SaveTextToFile(filepath.Join(outputDir, regNo+"_ocr.txt"), result.RawText)
	if e != nil {
		return e
	}

	return util.SaveJSONToFile(filepath.Join(outputDir, regNo+"_transcript.json"), result.Transcript)
}
