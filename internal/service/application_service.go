package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-enroll-api/internal/models"
	"github.com/noah-isme/edu-enroll-api/internal/upstream"
	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
)

const (
	formIndividual  = "individual"
	formInstitution = "institution"
)

type applicationSubmitter interface {
	ApplyIndividual(ctx context.Context, courseID string, form models.IndividualApplication) (*upstream.Ack, error)
	VerifyApply(ctx context.Context, courseID string, form models.IndividualApplication) (*upstream.Ack, error)
	CreateOrder(ctx context.Context, req upstream.CreateOrderRequest) (*upstream.OrderAck, error)
	VerifyPayment(ctx context.Context, req upstream.VerifyPaymentRequest) (*upstream.Ack, error)
	ApplyInstitution(ctx context.Context, form models.InstitutionApplication, courseIDs []string, attachments []models.InstitutionAttachment) (*upstream.Ack, error)
}

type courseResolver interface {
	Get(ctx context.Context, id string) (*models.Course, error)
}

type selectionAccess interface {
	Get(sessionID string) models.Selection
	Clear(sessionID string) models.Selection
	BeginSubmission(sessionID, form string) error
	EndSubmission(sessionID, form string)
}

type receiptIssuer interface {
	Enabled() bool
	Issue(applicantName, description string) (string, error)
}

// PaymentOptions parameterise the checkout descriptor handed to the
// browser-side widget.
type PaymentOptions struct {
	Key               string
	Currency          string
	DisplayName       string
	CheckoutScriptURL string
	ThemeColor        string
}

// UploadLimits constrain institution attachments.
type UploadLimits struct {
	StudentListMaxBytes int64
	StudentListMIMEs    []string
	LogoMaxBytes        int64
}

// WithDefaults fills in fallback size limits for unset fields.
func (u UploadLimits) WithDefaults() UploadLimits {
	if u.StudentListMaxBytes <= 0 {
		u.StudentListMaxBytes = 10 * 1024 * 1024
	}
	if u.LogoMaxBytes <= 0 {
		u.LogoMaxBytes = 100 * 1024 * 1024
	}
	return u
}

// MaxFor returns the byte limit for a known attachment field, zero otherwise.
func (u UploadLimits) MaxFor(field string) int64 {
	switch field {
	case "studentList":
		return u.StudentListMaxBytes
	case "institutionLogo":
		return u.LogoMaxBytes
	}
	return 0
}

// ApplicationService builds outbound application payloads, validates them
// against the form schemas, and dispatches them upstream. A failed submit
// never mutates the selection, so the user can retry without re-selecting.
type ApplicationService struct {
	backend   applicationSubmitter
	courses   courseResolver
	selection selectionAccess
	receipts  receiptIssuer
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	payment   PaymentOptions
	uploads   UploadLimits
}

// NewApplicationService constructs the dispatcher.
func NewApplicationService(backend applicationSubmitter, courses courseResolver, selection selectionAccess, receipts receiptIssuer, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, payment PaymentOptions, uploads UploadLimits) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if logger == nil {
		logger = zap.NewNop()
	}
	uploads = uploads.WithDefaults()
	return &ApplicationService{
		backend:   backend,
		courses:   courses,
		selection: selection,
		receipts:  receipts,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		payment:   payment,
		uploads:   uploads,
	}
}

// SubmitIndividual validates and dispatches a single-course application.
// Free courses are applied directly; paid courses go through upstream
// verification and order creation, and the caller receives a checkout
// descriptor for the payment widget.
func (s *ApplicationService) SubmitIndividual(ctx context.Context, sessionID, courseID string, form models.IndividualApplication) (*models.SubmissionResult, error) {
	if err := s.validateStruct(form); err != nil {
		return nil, err
	}

	if err := s.selection.BeginSubmission(sessionID, formIndividual); err != nil {
		return nil, err
	}
	defer s.selection.EndSubmission(sessionID, formIndividual)

	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.Fees == 0 {
		ack, err := s.backend.ApplyIndividual(ctx, courseID, form)
		if err != nil {
			s.recordSubmission(formIndividual, "error")
			return nil, s.submitError(err)
		}
		if !ack.Success {
			s.recordSubmission(formIndividual, "rejected")
			return nil, appErrors.Clone(appErrors.ErrSubmitFailed, upstreamMessage(ack.Message))
		}
		s.recordSubmission(formIndividual, "submitted")
		return s.submitted(form.FullName, "Application for "+course.Title), nil
	}

	if s.payment.Key == "" {
		s.recordSubmission(formIndividual, "gateway_unavailable")
		return nil, appErrors.Clone(appErrors.ErrGatewayUnavailable, "payment gateway is not configured")
	}

	verify, err := s.backend.VerifyApply(ctx, courseID, form)
	if err != nil {
		s.recordSubmission(formIndividual, "error")
		return nil, s.submitError(err)
	}
	if !verify.Success {
		s.recordSubmission(formIndividual, "rejected")
		return nil, appErrors.Clone(appErrors.ErrSubmitFailed, upstreamMessage(verify.Message))
	}

	order, err := s.backend.CreateOrder(ctx, upstream.CreateOrderRequest{
		Amount:   course.Fees,
		Currency: s.payment.Currency,
		Receipt:  fmt.Sprintf("course_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		s.recordSubmission(formIndividual, "error")
		return nil, s.submitError(err)
	}
	if !order.Success || order.OrderID == "" {
		s.recordSubmission(formIndividual, "error")
		return nil, appErrors.Clone(appErrors.ErrSubmitFailed, "failed to create payment order")
	}

	return &models.SubmissionResult{
		Status: models.SubmissionPaymentPending,
		Checkout: &models.CheckoutDescriptor{
			Key:            s.payment.Key,
			Amount:         course.Fees * 100,
			Currency:       s.payment.Currency,
			Name:           s.payment.DisplayName,
			Description:    "Course application for " + course.Title,
			OrderID:        order.OrderID,
			ScriptURL:      s.payment.CheckoutScriptURL,
			ThemeColor:     s.payment.ThemeColor,
			PrefillName:    form.FullName,
			PrefillEmail:   form.Email,
			PrefillContact: form.Phone,
		},
	}, nil
}

// ConfirmPayment relays the checkout callback upstream for signature
// verification. Verification failure surfaces a SUBMIT_ERROR and leaves
// every piece of session state untouched.
func (s *ApplicationService) ConfirmPayment(ctx context.Context, sessionID, courseID string, confirmation models.PaymentConfirmation, form models.IndividualApplication) (*models.SubmissionResult, error) {
	if err := s.validateStruct(confirmation); err != nil {
		return nil, err
	}

	if err := s.selection.BeginSubmission(sessionID, formIndividual); err != nil {
		return nil, err
	}
	defer s.selection.EndSubmission(sessionID, formIndividual)

	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	courseData := struct {
		models.IndividualApplication
		Course          string `json:"course"`
		RazorpayOrderID string `json:"razorpayOrderId"`
	}{form, courseID, confirmation.OrderID}

	ack, err := s.backend.VerifyPayment(ctx, upstream.VerifyPaymentRequest{
		OrderID:    confirmation.OrderID,
		PaymentID:  confirmation.PaymentID,
		Signature:  confirmation.Signature,
		CourseData: courseData,
	})
	if err != nil {
		s.recordSubmission(formIndividual, "error")
		return nil, s.submitError(err)
	}
	if !ack.Success {
		s.recordSubmission(formIndividual, "verification_failed")
		return nil, appErrors.Clone(appErrors.ErrSubmitFailed, "payment verification failed")
	}
	s.recordSubmission(formIndividual, "submitted")
	return s.submitted(form.FullName, "Paid application for "+course.Title), nil
}

// SubmitInstitution validates and dispatches the multi-course institution
// application. An empty selection is refused before any network call. The
// selection is cleared only on success.
func (s *ApplicationService) SubmitInstitution(ctx context.Context, sessionID string, form models.InstitutionApplication, attachments []models.InstitutionAttachment) (*models.SubmissionResult, error) {
	selection := s.selection.Get(sessionID)
	if selection.UserType != models.UserTypeInstitution {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "institution applications require institution mode")
	}
	if len(selection.CourseIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "select at least one course")
	}
	if err := s.validateStruct(form); err != nil {
		return nil, err
	}
	if err := s.validateAttachments(attachments); err != nil {
		return nil, err
	}

	if err := s.selection.BeginSubmission(sessionID, formInstitution); err != nil {
		return nil, err
	}
	defer s.selection.EndSubmission(sessionID, formInstitution)

	ack, err := s.backend.ApplyInstitution(ctx, form, selection.CourseIDs, attachments)
	if err != nil {
		s.recordSubmission(formInstitution, "error")
		return nil, s.submitError(err)
	}
	if !ack.Success {
		s.recordSubmission(formInstitution, "rejected")
		return nil, appErrors.Clone(appErrors.ErrSubmitFailed, upstreamMessage(ack.Message))
	}

	s.selection.Clear(sessionID)
	s.recordSubmission(formInstitution, "submitted")
	return s.submitted(form.InstitutionName, fmt.Sprintf("Institution application for %d course(s)", len(selection.CourseIDs))), nil
}

func (s *ApplicationService) validateStruct(v interface{}) error {
	err := s.validator.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return appErrors.Validation(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "len":
		return fmt.Sprintf("Must be exactly %s digits", fe.Param())
	case "numeric":
		return "Must contain only numbers"
	case "oneof":
		return "Invalid value"
	default:
		return "Invalid value"
	}
}

func (s *ApplicationService) validateAttachments(attachments []models.InstitutionAttachment) error {
	fields := make(map[string]string)
	for _, att := range attachments {
		switch att.FieldName {
		case "studentList":
			if att.Size > s.uploads.StudentListMaxBytes {
				fields[att.FieldName] = fmt.Sprintf("File must be less than %d MB", s.uploads.StudentListMaxBytes/(1024*1024))
				continue
			}
			if len(s.uploads.StudentListMIMEs) > 0 && !containsMIME(s.uploads.StudentListMIMEs, att.ContentType) {
				fields[att.FieldName] = "File must be an Excel or image file"
			}
		case "institutionLogo":
			if att.Size > s.uploads.LogoMaxBytes {
				fields[att.FieldName] = fmt.Sprintf("File must be less than %d MB", s.uploads.LogoMaxBytes/(1024*1024))
				continue
			}
			if !strings.HasPrefix(att.ContentType, "image/") {
				fields[att.FieldName] = "File must be an image"
			}
		default:
			fields[att.FieldName] = "Unexpected attachment"
		}
	}
	if len(fields) > 0 {
		return appErrors.Validation(fields)
	}
	return nil
}

func containsMIME(allowed []string, contentType string) bool {
	for _, mime := range allowed {
		if strings.EqualFold(mime, contentType) {
			return true
		}
	}
	return false
}

func (s *ApplicationService) submitted(applicant, description string) *models.SubmissionResult {
	result := &models.SubmissionResult{
		Status:  models.SubmissionSubmitted,
		Message: "Application submitted successfully",
	}
	if s.receipts != nil && s.receipts.Enabled() {
		token, err := s.receipts.Issue(applicant, description)
		if err != nil {
			s.logger.Sugar().Warnw("receipt issue failed", "error", err)
			return result
		}
		result.ReceiptToken = token
	}
	return result
}

func (s *ApplicationService) submitError(err error) error {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		if msg := statusErr.Message(); msg != "" {
			wrapped := appErrors.Clone(appErrors.ErrSubmitFailed, msg)
			wrapped.Err = err
			return wrapped
		}
	}
	return appErrors.Wrap(err, appErrors.ErrSubmitFailed.Code, appErrors.ErrSubmitFailed.Status, appErrors.ErrSubmitFailed.Message)
}

func (s *ApplicationService) recordSubmission(path, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSubmission(path, outcome)
	}
}

func upstreamMessage(message string) string {
	if message == "" {
		return appErrors.ErrSubmitFailed.Message
	}
	return message
}
