// Package intake serves the transcript pipeline over HTTP, one PDF per request.
package intake

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	echomw "transcript-ocr/src/pkg/echo-middleware"
	"transcript-ocr/src/pkg/pipeline"
)

const (
	uploadFieldName = "file"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	Source     pipeline.PageSource
	Recognizer pipeline.TextRecognizer
	// Upper bound for the request body; zero means no limit.
	MaxUploadBytes int64
}

/*
NewServer builds the echo instance with every route and middleware in place.

	GET  /healthz      liveness, no auth
	POST /transcripts  multipart upload (field "file"), responds with the xlsx
*/
func NewServer(handler *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RouteAccessLoggerMiddleware)

	e.GET("/healthz", handler.Health)
	e.POST("/transcripts", handler.ProcessUpload, echomw.RequireBearerToken, echomw.RateLimiterMiddleware)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

/*
ProcessUpload stores the uploaded PDF in a scratch directory, runs the
pipeline on it and streams the produced spreadsheet back.

Responses:
  - 200 with the xlsx attachment named <reg_no>_result.xlsx;
  - 400 when the "file" field is missing;
  - 422 when no subject rows could be parsed;
  - 500 when rasterization, OCR or writing fails.
*/
func (h *Handler) ProcessUpload(c echo.Context) error {
	if h.MaxUploadBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.MaxUploadBytes)
	}

	fileHeader, formErr := c.FormFile(uploadFieldName)
	if formErr != nil {
		tl.Log(tl.Warning, palette.YellowBold, "Upload rejected: '%s'", formErr)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "missing multipart field 'file'",
		})
	}

	scratchDir, tempErr := os.MkdirTemp("", "transcript-intake-")
	if tempErr != nil {
		return h.internalError(c, xerr.NewError(tempErr, "create scratch directory", os.TempDir()))
	}
	defer func() {
		_ = os.RemoveAll(scratchDir)
	}()

	pdfPath := filepath.Join(scratchDir, "upload.pdf")
	e := saveUpload(fileHeader, pdfPath)
	if e != nil {
		return h.internalError(c, e)
	}

	tl.Log(tl.Notice, palette.BlueBold, "Received transcript '%s' (%s bytes)", fileHeader.Filename, fileHeader.Size)

	result, e := pipeline.ProcessTranscript(pdfPath, h.Source, h.Recognizer, pipeline.Options{
		OutputDir: filepath.Join(scratchDir, "results"),
		OcrDump:   io.Discard,
	})
	if e != nil {
		return h.internalError(c, e)
	}
	tl.Log(tl.Verbose, palette.CyanDim, "OCR Extracted Text:\n%s", result.RawText)

	switch result.Status {
	case pipeline.StatusSaved:
		c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
		return c.Attachment(result.ReportPath, filepath.Base(result.ReportPath))
	case pipeline.StatusNoSubjects:
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"error":               pipeline.MessageNoSubjects,
			"registration_number": result.Transcript.RegistrationNumber,
		})
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": pipeline.MessageFileNotFound,
		})
	}
}

func (h *Handler) internalError(c echo.Context, e *xerr.Error) error {
	tl.Log(tl.Error, palette.RedBold, "Failed processing upload: '%s'", e)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "transcript processing failed",
	})
}

// saveUpload copies the multipart file to destinationPath.
func saveUpload(fileHeader *multipart.FileHeader, destinationPath string) (e *xerr.Error) {
	uploaded, openErr := fileHeader.Open()
	if openErr != nil {
		return xerr.NewError(openErr, "open uploaded file", destinationPath)
	}
	defer func() {
		_ = uploaded.Close()
	}()

	destinationFile, createErr := os.Create(destinationPath)
	if createErr != nil {
		return xerr.NewError(createErr, "create upload file", destinationPath)
	}
	defer func() {
		_ = destinationFile.Close()
	}()

	_, copyErr := io.Copy(destinationFile, uploaded)
	if copyErr != nil {
		return xerr.NewError(copyErr, "copy uploaded file", destinationPath)
	}

	return nil
}
