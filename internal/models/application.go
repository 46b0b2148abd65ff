package models

import "time"

// SubmissionStatus is the terminal outcome reported to the applicant.
type SubmissionStatus string

const (
	// SubmissionSubmitted means the application reached the upstream backend
	// and is pending review. No payment remains outstanding.
	SubmissionSubmitted SubmissionStatus = "submitted"
	// SubmissionPaymentPending means a payment order exists and the browser
	// widget must complete checkout before the application is final.
	SubmissionPaymentPending SubmissionStatus = "payment_pending"
)

// IndividualApplication carries the single-course application form fields.
type IndividualApplication struct {
	FullName           string `json:"fullName" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required,len=10,numeric"`
	MotherTongue       string `json:"motherTongue" validate:"required"`
	Age                string `json:"age" validate:"required"`
	Gender             string `json:"gender" validate:"required,oneof=Male Female Other"`
	IsStudent          string `json:"isStudent" validate:"required,oneof=yes no"`
	ClassStudying      string `json:"classStudying" validate:"required_if=IsStudent yes"`
	State              string `json:"state" validate:"required"`
	City               string `json:"city" validate:"required"`
	WhatsappNumber     string `json:"whatsappNumber" validate:"required,len=10,numeric"`
	ReferredBy         string `json:"referredBy" validate:"required"`
	ConvenientTimeSlot string `json:"convenientTimeSlot" validate:"required"`
	Message            string `json:"message"`
}

// InstitutionApplication carries the multi-course institution form fields.
// File attachments travel alongside as InstitutionAttachment values.
type InstitutionApplication struct {
	Email                    string `json:"email" validate:"required,email"`
	InstitutionName          string `json:"institutionName" validate:"required"`
	HowDidYouFindUs          string `json:"howDidYouFindUs"`
	ReferredBy               string `json:"referredBy"`
	CoordinatorName          string `json:"coordinatorName" validate:"required"`
	CoordinatorContactNumber string `json:"coordinatorContactNumber1" validate:"required,len=10,numeric"`
	CoordinatorEmail         string `json:"coordinatorEmail" validate:"required,email"`
	SecondContactNumber      string `json:"coordinatorContactNumber2" validate:"omitempty,len=10,numeric"`
	SecondEmail              string `json:"coordinatorEmail2" validate:"omitempty,email"`
	State                    string `json:"state" validate:"required"`
	City                     string `json:"city" validate:"required"`
	Address                  string `json:"address" validate:"required"`
	NumberOfStudents         string `json:"numberOfStudents" validate:"required"`
	StartMonth               string `json:"startMonth" validate:"required"`
	SuitableTime             string `json:"suitableTime" validate:"required"`
}

// InstitutionAttachment is an uploaded file destined for the upstream
// multipart payload. Content is buffered; size limits are enforced before
// anything is read.
type InstitutionAttachment struct {
	FieldName   string
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// CheckoutDescriptor is handed to the browser-side payment widget for paid
// courses. Amount is in currency minor units, as the gateway expects.
type CheckoutDescriptor struct {
	Key         string `json:"key"`
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderID     string `json:"orderId"`
	ScriptURL   string `json:"scriptUrl"`
	ThemeColor  string `json:"themeColor"`

	PrefillName    string `json:"prefillName"`
	PrefillEmail   string `json:"prefillEmail"`
	PrefillContact string `json:"prefillContact"`
}

// PaymentConfirmation is the widget callback the client relays for
// server-side verification.
type PaymentConfirmation struct {
	OrderID   string `json:"razorpayOrderId" validate:"required"`
	PaymentID string `json:"razorpayPaymentId" validate:"required"`
	Signature string `json:"razorpaySignature" validate:"required"`
}

// SubmissionResult is the dispatcher's answer for a submit call.
type SubmissionResult struct {
	Status       SubmissionStatus    `json:"status"`
	Message      string              `json:"message,omitempty"`
	Checkout     *CheckoutDescriptor `json:"checkout,omitempty"`
	ReceiptToken string              `json:"receiptToken,omitempty"`
}

// Receipt tracks a rendered acknowledgement document.
type Receipt struct {
	ID          string    `json:"id"`
	Path        string    `json:"-"`
	ApplicantID string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
