package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-enroll-api/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func TestGetAllCoursesMapsDocuments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/course/getAllCourses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"c1","title":"Vedic Maths","fees":0,"category":"mathematics"},
			{"_id":"c2","title":"Sanskrit","fees":500,"targetAudience":["General"],"timeSlots":["Morning"]}
		]`))
	})

	courses, err := client.GetAllCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "c1", courses[0].ID)
	assert.Equal(t, "Vedic Maths", courses[0].Title)
	assert.Equal(t, 500, courses[1].Fees)
	assert.Equal(t, []string{"Morning"}, courses[1].TimeSlots)
}

func TestGetOneCourse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/getOneCourse/c7", r.URL.Path)
		_, _ = w.Write([]byte(`{"_id":"c7","title":"Yoga"}`))
	})

	course, err := client.GetOneCourse(context.Background(), "c7")
	require.NoError(t, err)
	assert.Equal(t, "c7", course.ID)
	assert.Equal(t, "Yoga", course.Title)
}

func TestReferredByList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/referred-by-list", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"r1","name":"Newspaper"}]}`))
	})

	options, err := client.ReferredByList(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Newspaper", options[0].Name)
}

func TestReferredByListRefused(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	_, err := client.ReferredByList(context.Background())
	require.Error(t, err)
}

func TestApplyIndividualPostsForm(t *testing.T) {
	var received models.IndividualApplication
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/course/apply/c1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, jsonDecode(r, &received))
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	form := models.IndividualApplication{FullName: "Asha Rao", Email: "asha@example.com"}
	ack, err := client.ApplyIndividual(context.Background(), "c1", form)
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, "Asha Rao", received.FullName)
}

func TestCreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/create-order", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"orderId":"order_9"}`))
	})

	ack, err := client.CreateOrder(context.Background(), CreateOrderRequest{Amount: 500, Currency: "INR", Receipt: "course_1"})
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, "order_9", ack.OrderID)
}

func TestVerifyPaymentSendsCallbackFields(t *testing.T) {
	var received map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/verify-payment", r.URL.Path)
		require.NoError(t, jsonDecode(r, &received))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	_, err := client.VerifyPayment(context.Background(), VerifyPaymentRequest{
		OrderID:    "order_9",
		PaymentID:  "pay_3",
		Signature:  "sig",
		CourseData: map[string]string{"course": "c1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_9", received["razorpayOrderId"])
	assert.Equal(t, "pay_3", received["razorpayPaymentId"])
	assert.Equal(t, "sig", received["razorpaySignature"])
	assert.NotNil(t, received["courseData"])
}

func TestApplyInstitutionMultipartShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/apply-institution", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Green Valley School", r.FormValue("institutionName"))
		assert.Equal(t, []string{"c1", "c2"}, r.MultipartForm.Value["courseIds"])
		// Empty optional fields are omitted entirely.
		_, present := r.MultipartForm.Value["coordinatorContactNumber2"]
		assert.False(t, present)

		file, header, err := r.FormFile("studentList")
		require.NoError(t, err)
		defer file.Close() //nolint:errcheck
		assert.Equal(t, "list.xls", header.Filename)
		assert.Equal(t, "application/vnd.ms-excel", header.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(`{"success":true}`))
	})

	form := models.InstitutionApplication{
		Email:                    "office@school.example.com",
		InstitutionName:          "Green Valley School",
		CoordinatorName:          "R. Iyer",
		CoordinatorContactNumber: "9876543210",
		CoordinatorEmail:         "iyer@school.example.com",
		State:                    "Karnataka",
		City:                     "Mysuru",
		Address:                  "12 Hill Road",
		NumberOfStudents:         "40",
		StartMonth:               "June",
		SuitableTime:             "Morning",
	}
	attachments := []models.InstitutionAttachment{{
		FieldName:   "studentList",
		FileName:    "list.xls",
		ContentType: "application/vnd.ms-excel",
		Size:        4,
		Content:     []byte("data"),
	}}

	ack, err := client.ApplyInstitution(context.Background(), form, []string{"c1", "c2"}, attachments)
	require.NoError(t, err)
	assert.True(t, ack.Success)
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"already applied"}`))
	})

	_, err := client.GetAllCourses(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	assert.Equal(t, "already applied", statusErr.Message())
}

func TestStatusErrorMessageNonJSONBody(t *testing.T) {
	err := &StatusError{Status: 502, Body: "<html>bad gateway</html>"}
	assert.Empty(t, err.Message())
}

func jsonDecode(r *http.Request, dest interface{}) error {
	defer r.Body.Close() //nolint:errcheck
	return json.NewDecoder(r.Body).Decode(dest)
}
