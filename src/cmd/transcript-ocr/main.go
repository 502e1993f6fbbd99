package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"transcript-ocr/src/pkg/config"
	"transcript-ocr/src/pkg/ocr"
	"transcript-ocr/src/pkg/pipeline"
	"transcript-ocr/src/pkg/util"
)

/*
main reads a transcript PDF path (from -pdf, or interactively from stdin),
OCRs it and writes <reg_no>_result.xlsx into the output directory.

A missing file or a transcript with no readable subject rows is reported
and the program returns normally. Rasterizer, OCR and write failures exit
with a non-zero status.
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	pdfPath := flag.String("pdf", "", "Path to the transcript PDF. Prompted for when empty.")
	outputDirPath := flag.String("out", "", "Directory for the result spreadsheet (default: output_dir from config, \"results\").")
	language := flag.String("language", "", "Tesseract language(s), e.g. eng or eng+hin. \"tesseract --list-langs\"")

	flag.Parse()
	config.InitializeConfig(*configPath)

	options := pipeline.Options{
		OutputDir:   firstNonEmpty(*outputDirPath, config.Cfg.OutputDir),
		SaveOcrText: config.Cfg.SaveOcrText,
	}
	settings := ocr.TesseractSettings{
		Language: firstNonEmpty(*language, config.Cfg.Language),
	}
	if config.Cfg.SaveDebugImages {
		settings.DebugImageDir = filepath.Join(options.OutputDir, "pages")
	}

	inputPath := strings.TrimSpace(*pdfPath)
	if inputPath == "" {
		var e *xerr.Error
		inputPath, e = promptForPath(os.Stdin, "Enter the path of the PDF file: ")
		e.QuitIf(xerr.ErrorTypeError)
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s transcript OCR. Config path: '%s'",
		"Running", *configPath,
	)

	if settings.DebugImageDir != "" {
		e := util.EnsureOutputDirectory(settings.DebugImageDir)
		e.QuitIf(xerr.ErrorTypeError)
	}

	result, e := pipeline.ProcessTranscript(
		inputPath,
		ocr.Rasterizer{DPI: config.Cfg.DPI},
		ocr.TesseractRecognizer{Settings: settings},
		options,
	)
	e.QuitIf(xerr.ErrorTypeError)

	switch result.Status {
	case pipeline.StatusFileNotFound:
		tl.Log(tl.Error, palette.Red, "%s", pipeline.MessageFileNotFound)
	case pipeline.StatusNoSubjects:
		tl.Log(tl.Error, palette.Red, "%s", pipeline.MessageNoSubjects)
	default:
		tl.Log(tl.Notice1, palette.GreenBold, "%s. Results saved as: '%s'", "Transcript processed", result.ReportPath)
	}
}

func promptForPath(input *os.File, prompt string) (path string, e *xerr.Error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(input)
	line, readErr := reader.ReadString('\n')
	if readErr != nil && line == "" {
		e = xerr.NewError(readErr, "read PDF path from stdin", prompt)
		return "", e
	}

	return strings.TrimSpace(line), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
