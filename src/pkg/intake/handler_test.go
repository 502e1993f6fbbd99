package intake

import (
	"bytes"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuumbleweed/xerr"

	echomw "transcript-ocr/src/pkg/echo-middleware"
)

const testToken = "secret-token"

type stubSource struct {
	err *xerr.Error
}

func (s stubSource) Pages(pdfPath string) ([]image.Image, *xerr.Error) {
	if s.err != nil {
		return nil, s.err
	}
	return []image.Image{image.NewGray(image.Rect(0, 0, 2, 2))}, nil
}

type stubRecognizer struct {
	text string
}

func (r stubRecognizer) PageText(page image.Image, pageIndex int) (string, *xerr.Error) {
	return r.text, nil
}

func newTestServer(t *testing.T, source stubSource, text string) http.Handler {
	t.Helper()
	t.Setenv(echomw.EnvIntakeBearerToken, testToken)
	echomw.UpdateRateLimits(100, 100)

	return NewServer(&Handler{
		Source:         source,
		Recognizer:     stubRecognizer{text: text},
		MaxUploadBytes: 1 << 20,
	})
}

func uploadRequest(t *testing.T, token string, withFile bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if withFile {
		part, err := writer.CreateFormFile("file", "transcript.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("note", "no file"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcripts", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, stubSource{}, "")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestProcessUploadReturnsSpreadsheet(t *testing.T) {
	server := newTestServer(t, stubSource{}, "RA221100301\n1 Nov2022 ZiIMABIOIT Calculus 4 oO\nSGPA 8.5 CGPA 8.7")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, uploadRequest(t, testToken, true))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "RA221100301_result.xlsx")
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestProcessUploadNoSubjects(t *testing.T) {
	server := newTestServer(t, stubSource{}, "RA221100301\nnothing else")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, uploadRequest(t, testToken, true))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "RA221100301")
}

func TestProcessUploadMissingFile(t *testing.T) {
	server := newTestServer(t, stubSource{}, "")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, uploadRequest(t, testToken, false))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessUploadRasterizerFailure(t *testing.T) {
	source := stubSource{err: xerr.NewError(fmt.Errorf("broken"), "open PDF document", "upload.pdf")}
	server := newTestServer(t, source, "")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, uploadRequest(t, testToken, true))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProcessUploadRequiresToken(t *testing.T) {
	server := newTestServer(t, stubSource{}, "")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, uploadRequest(t, "", true))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, uploadRequest(t, "wrong", true))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
