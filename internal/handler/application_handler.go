package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-enroll-api/internal/middleware"
	"github.com/noah-isme/edu-enroll-api/internal/models"
	"github.com/noah-isme/edu-enroll-api/internal/service"
	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
	"github.com/noah-isme/edu-enroll-api/pkg/response"
)

// formFieldSlack bounds the non-file portion of an institution submission.
const formFieldSlack = 1 << 20

// ApplicationHandler exposes the individual and institution application flows.
type ApplicationHandler struct {
	applications *service.ApplicationService
	uploads      service.UploadLimits
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService, uploads service.UploadLimits) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, uploads: uploads.WithDefaults()}
}

// SubmitIndividual godoc
// @Summary Submit a single-course application
// @Tags Applications
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param payload body models.IndividualApplication true "Application form"
// @Success 200 {object} response.Envelope
// @Router /applications/individual/{courseId} [post]
func (h *ApplicationHandler) SubmitIndividual(c *gin.Context) {
	var form models.IndividualApplication
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.applications.SubmitIndividual(c.Request.Context(), middleware.SessionID(c), c.Param("courseId"), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

type confirmPaymentRequest struct {
	Confirmation models.PaymentConfirmation   `json:"confirmation"`
	Form         models.IndividualApplication `json:"form"`
}

// ConfirmPayment godoc
// @Summary Verify a payment-widget callback
// @Tags Applications
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param payload body confirmPaymentRequest true "Gateway callback + original form"
// @Success 200 {object} response.Envelope
// @Router /applications/individual/{courseId}/confirm [post]
func (h *ApplicationHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.applications.ConfirmPayment(c.Request.Context(), middleware.SessionID(c), c.Param("courseId"), req.Confirmation, req.Form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// SubmitInstitution godoc
// @Summary Submit a multi-course institution application
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /applications/institution [post]
func (h *ApplicationHandler) SubmitInstitution(c *gin.Context) {
	// Bound the whole request before the multipart body is parsed. Each
	// attachment is then checked against its own limit before being read.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes())
	if _, err := c.MultipartForm(); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusRequestEntityTooLarge, "request body too large"))
		return
	}

	form := models.InstitutionApplication{
		Email:                    c.PostForm("email"),
		InstitutionName:          c.PostForm("institutionName"),
		HowDidYouFindUs:          c.PostForm("howDidYouFindUs"),
		ReferredBy:               c.PostForm("referredBy"),
		CoordinatorName:          c.PostForm("coordinatorName"),
		CoordinatorContactNumber: c.PostForm("coordinatorContactNumber1"),
		CoordinatorEmail:         c.PostForm("coordinatorEmail"),
		SecondContactNumber:      c.PostForm("coordinatorContactNumber2"),
		SecondEmail:              c.PostForm("coordinatorEmail2"),
		State:                    c.PostForm("state"),
		City:                     c.PostForm("city"),
		Address:                  c.PostForm("address"),
		NumberOfStudents:         c.PostForm("numberOfStudents"),
		StartMonth:               c.PostForm("startMonth"),
		SuitableTime:             c.PostForm("suitableTime"),
	}

	attachments := make([]models.InstitutionAttachment, 0, 2)
	for _, field := range []string{"studentList", "institutionLogo"} {
		header, err := c.FormFile(field)
		if err != nil {
			continue
		}
		attachment, err := readAttachment(field, header, h.uploads.MaxFor(field))
		if err != nil {
			response.Error(c, err)
			return
		}
		attachments = append(attachments, *attachment)
	}

	result, err := h.applications.SubmitInstitution(c.Request.Context(), middleware.SessionID(c), form, attachments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func (h *ApplicationHandler) maxRequestBytes() int64 {
	return h.uploads.StudentListMaxBytes + h.uploads.LogoMaxBytes + formFieldSlack
}

// readAttachment buffers one uploaded file. The declared size is checked
// against the field's limit before any bytes are read.
func readAttachment(field string, header *multipart.FileHeader, maxBytes int64) (*models.InstitutionAttachment, error) {
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, appErrors.Validation(map[string]string{
			field: fmt.Sprintf("File must be less than %d MB", maxBytes/(1024*1024)),
		})
	}
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable attachment")
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable attachment")
	}
	return &models.InstitutionAttachment{
		FieldName:   field,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, nil
}
