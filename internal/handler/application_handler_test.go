package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-enroll-api/internal/middleware"
	"github.com/noah-isme/edu-enroll-api/internal/service"
	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
	"github.com/noah-isme/edu-enroll-api/pkg/response"
)

func institutionRouter(t *testing.T, uploads service.UploadLimits) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	selection := service.NewSelectionService(time.Hour, nil)
	svc := service.NewApplicationService(nil, nil, selection, nil, nil, nil, nil, service.PaymentOptions{}, uploads)
	h := NewApplicationHandler(svc, uploads)

	r := gin.New()
	r.Use(middleware.Session())
	r.POST("/applications/institution", h.SubmitInstitution)
	return r
}

func institutionMultipart(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("institutionName", "Green Valley School"))
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitInstitutionRejectsOversizedAttachmentWithoutBuffering(t *testing.T) {
	uploads := service.UploadLimits{StudentListMaxBytes: 64, LogoMaxBytes: 64}
	r := institutionRouter(t, uploads)

	body, contentType := institutionMultipart(t, map[string][]byte{
		"studentList": bytes.Repeat([]byte("x"), 200),
	})
	req := httptest.NewRequest(http.MethodPost, "/applications/institution", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Fields["studentList"], "File must be less than")
}

func TestSubmitInstitutionRejectsBodyBeyondTotalCap(t *testing.T) {
	uploads := service.UploadLimits{StudentListMaxBytes: 64, LogoMaxBytes: 64}
	r := institutionRouter(t, uploads)

	// The combined cap is the two file limits plus the form-field slack.
	oversized := bytes.Repeat([]byte("x"), 64+64+(1<<20)+1024)
	body, contentType := institutionMultipart(t, map[string][]byte{
		"studentList": oversized,
	})
	req := httptest.NewRequest(http.MethodPost, "/applications/institution", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestReadAttachmentChecksDeclaredSizeBeforeReading(t *testing.T) {
	// The header carries no backing content, so any attempt to open it would
	// fail. A validation error here proves the size check runs first.
	header := &multipart.FileHeader{Filename: "list.xlsx", Size: 25 << 20}

	att, err := readAttachment("studentList", header, 10<<20)
	require.Error(t, err)
	assert.Nil(t, att)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "File must be less than 10 MB", appErr.Fields["studentList"])
}

func TestReadAttachmentWithinLimitBuffersContent(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("institutionLogo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll() //nolint:errcheck

	header := form.File["institutionLogo"][0]
	att, err := readAttachment("institutionLogo", header, 1024)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", att.FileName)
	assert.Equal(t, []byte("png-bytes"), att.Content)
	assert.Equal(t, int64(len("png-bytes")), att.Size)
}
