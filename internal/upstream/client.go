// Package upstream talks to the institute backend that owns course data,
// application persistence, and the payment provider integration.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-enroll-api/internal/models"
)

// Client is a thin HTTP wrapper around the institute REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Config describes client construction parameters.
type Config struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// New constructs an upstream client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// courseDoc mirrors the upstream document shape (Mongo-style _id).
type courseDoc struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	Level          string   `json:"level"`
	TargetAudience []string `json:"targetAudience"`
	ImageURL       string   `json:"imageUrl"`
	Fees           int      `json:"fees"`
	Category       string   `json:"category"`
	IsNew          bool     `json:"isNew"`
	TimeSlots      []string `json:"timeSlots"`
	WhatsappLink   string   `json:"whatsappLink"`
}

func (d courseDoc) toModel() models.Course {
	return models.Course{
		ID:             d.ID,
		Title:          d.Title,
		Description:    d.Description,
		Duration:       d.Duration,
		Level:          d.Level,
		TargetAudience: d.TargetAudience,
		ImageURL:       d.ImageURL,
		Fees:           d.Fees,
		Category:       d.Category,
		IsNew:          d.IsNew,
		TimeSlots:      d.TimeSlots,
		WhatsappLink:   d.WhatsappLink,
	}
}

// Ack is the upstream acknowledgement envelope.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OrderAck acknowledges payment order creation.
type OrderAck struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// CreateOrderRequest asks the backend for a payment order.
type CreateOrderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// VerifyPaymentRequest relays the gateway callback for signature verification.
type VerifyPaymentRequest struct {
	OrderID    string      `json:"razorpayOrderId"`
	PaymentID  string      `json:"razorpayPaymentId"`
	Signature  string      `json:"razorpaySignature"`
	CourseData interface{} `json:"courseData"`
}

// GetAllCourses fetches the full catalog.
func (c *Client) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	var docs []courseDoc
	if err := c.getJSON(ctx, "/course/getAllCourses", &docs); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, d.toModel())
	}
	return courses, nil
}

// GetOneCourse fetches a single course by id.
func (c *Client) GetOneCourse(ctx context.Context, id string) (*models.Course, error) {
	var doc courseDoc
	if err := c.getJSON(ctx, "/course/getOneCourse/"+id, &doc); err != nil {
		return nil, err
	}
	course := doc.toModel()
	return &course, nil
}

// ReferredByList fetches the referral source options for apply forms.
func (c *Client) ReferredByList(ctx context.Context) ([]models.ReferredByOption, error) {
	var envelope struct {
		Success bool                      `json:"success"`
		Data    []models.ReferredByOption `json:"data"`
	}
	if err := c.getJSON(ctx, "/course/referred-by-list", &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("upstream refused referred-by list")
	}
	return envelope.Data, nil
}

// ApplyIndividual submits a free-course application.
func (c *Client) ApplyIndividual(ctx context.Context, courseID string, form models.IndividualApplication) (*Ack, error) {
	var ack Ack
	if err := c.postJSON(ctx, "/course/apply/"+courseID, form, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// VerifyApply pre-validates a paid-course application before order creation.
func (c *Client) VerifyApply(ctx context.Context, courseID string, form models.IndividualApplication) (*Ack, error) {
	var ack Ack
	if err := c.postJSON(ctx, "/course/verify-apply-course/"+courseID, form, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// CreateOrder asks the backend for a payment-gateway order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderAck, error) {
	var ack OrderAck
	if err := c.postJSON(ctx, "/course/create-order", req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// VerifyPayment asks the backend to verify the gateway signature.
func (c *Client) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*Ack, error) {
	var ack Ack
	if err := c.postJSON(ctx, "/course/verify-payment", req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ApplyInstitution submits the multi-course institution application as a
// multipart payload: scalar fields, one courseIds entry per selected course,
// and any attachments.
func (c *Client) ApplyInstitution(ctx context.Context, form models.InstitutionApplication, courseIDs []string, attachments []models.InstitutionAttachment) (*Ack, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"email":                     form.Email,
		"institutionName":           form.InstitutionName,
		"howDidYouFindUs":           form.HowDidYouFindUs,
		"referredBy":                form.ReferredBy,
		"coordinatorName":           form.CoordinatorName,
		"coordinatorContactNumber1": form.CoordinatorContactNumber,
		"coordinatorEmail":          form.CoordinatorEmail,
		"coordinatorContactNumber2": form.SecondContactNumber,
		"coordinatorEmail2":         form.SecondEmail,
		"state":                     form.State,
		"city":                      form.City,
		"address":                   form.Address,
		"numberOfStudents":          form.NumberOfStudents,
		"startMonth":                form.StartMonth,
		"suitableTime":              form.SuitableTime,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	for _, id := range courseIDs {
		if err := writer.WriteField("courseIds", id); err != nil {
			return nil, fmt.Errorf("write courseIds: %w", err)
		}
	}
	for _, att := range attachments {
		part, err := createFilePart(writer, att)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(att.Content); err != nil {
			return nil, fmt.Errorf("write attachment %s: %w", att.FieldName, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/course/apply-institution", body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var ack Ack
	if err := c.do(req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

func createFilePart(writer *multipart.Writer, att models.InstitutionAttachment) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, att.FieldName, att.FileName))
	if att.ContentType != "" {
		header.Set("Content-Type", att.ContentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create attachment part %s: %w", att.FieldName, err)
	}
	return part, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, dest)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read upstream response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Sugar().Warnw("upstream call failed",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// Message extracts the upstream error message when the body is the common
// {success,message} envelope, falling back to empty.
func (e *StatusError) Message() string {
	var ack Ack
	if err := json.Unmarshal([]byte(e.Body), &ack); err != nil {
		return ""
	}
	return ack.Message
}
