package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Enrollment Gateway",
        "description": "Catalog, selection and application workflows for the institute site",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Course catalog and filtering"},
        {"name": "Selection", "description": "Per-session course selection"},
        {"name": "Applications", "description": "Individual and institution applications"},
        {"name": "Navigation", "description": "Breadcrumb derivation"}
    ],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List visible courses",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "userType", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream fetch failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get one course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/referred-by": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List referral source options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/breadcrumbs": {
            "get": {
                "tags": ["Navigation"],
                "summary": "Derive breadcrumb trail from a path",
                "parameters": [
                    {"name": "path", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection": {
            "get": {
                "tags": ["Selection"],
                "summary": "Get the session selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Selection"],
                "summary": "Clear the session selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/user-type": {
            "put": {
                "tags": ["Selection"],
                "summary": "Set applicant mode",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetUserTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid user type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/select": {
            "post": {
                "tags": ["Selection"],
                "summary": "Select a course for individual application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseIDRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Wrong applicant mode", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/toggle": {
            "post": {
                "tags": ["Selection"],
                "summary": "Toggle a course in the institution selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseIDRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Wrong applicant mode", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/{courseId}": {
            "delete": {
                "tags": ["Selection"],
                "summary": "Remove a course from the selection",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/individual/{courseId}": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit an individual application",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IndividualApplication"}}
                ],
                "responses": {
                    "200": {"description": "Submitted or payment pending", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Submission already in flight", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream rejected the application", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/individual/{courseId}/confirm": {
            "post": {
                "tags": ["Applications"],
                "summary": "Confirm a completed checkout",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfirmPaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Submitted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Payment verification failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/institution": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit an institution application",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "institutionName", "in": "formData", "required": true, "type": "string"},
                    {"name": "coordinatorName", "in": "formData", "required": true, "type": "string"},
                    {"name": "coordinatorContactNumber1", "in": "formData", "required": true, "type": "string"},
                    {"name": "coordinatorEmail1", "in": "formData", "required": true, "type": "string"},
                    {"name": "studentList", "in": "formData", "type": "file"},
                    {"name": "institutionLogo", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Submitted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed or empty selection", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream rejected the application", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/receipts/{token}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Download an acknowledgement receipt",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"},
                    "404": {"description": "Unknown or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Course": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "duration": {"type": "string"},
                "level": {"type": "string"},
                "targetAudience": {"type": "array", "items": {"type": "string"}},
                "imageUrl": {"type": "string"},
                "fees": {"type": "integer"},
                "category": {"type": "string"},
                "isNew": {"type": "boolean"},
                "timeSlots": {"type": "array", "items": {"type": "string"}},
                "whatsappLink": {"type": "string"}
            }
        },
        "Selection": {
            "type": "object",
            "properties": {
                "userType": {"type": "string"},
                "courseIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "BreadcrumbItem": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "href": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "SetUserTypeRequest": {
            "type": "object",
            "properties": {
                "userType": {"type": "string", "enum": ["individual", "institution"]}
            },
            "required": ["userType"]
        },
        "CourseIDRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"}
            },
            "required": ["courseId"]
        },
        "IndividualApplication": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "contactNumber": {"type": "string"},
                "whatsappNumber": {"type": "string"},
                "gender": {"type": "string", "enum": ["Male", "Female", "Other"]},
                "dateOfBirth": {"type": "string"},
                "address": {"type": "string"},
                "isStudent": {"type": "string", "enum": ["yes", "no"]},
                "classStudying": {"type": "string"},
                "referredBy": {"type": "string"},
                "timeSlot": {"type": "string"}
            },
            "required": ["name", "email", "contactNumber", "whatsappNumber", "gender", "isStudent"]
        },
        "ConfirmPaymentRequest": {
            "type": "object",
            "properties": {
                "confirmation": {"$ref": "#/definitions/PaymentConfirmation"},
                "form": {"$ref": "#/definitions/IndividualApplication"}
            }
        },
        "PaymentConfirmation": {
            "type": "object",
            "properties": {
                "razorpayOrderId": {"type": "string"},
                "razorpayPaymentId": {"type": "string"},
                "razorpaySignature": {"type": "string"}
            },
            "required": ["razorpayOrderId", "razorpayPaymentId", "razorpaySignature"]
        },
        "CheckoutDescriptor": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "amount": {"type": "integer"},
                "currency": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "orderId": {"type": "string"},
                "scriptUrl": {"type": "string"},
                "themeColor": {"type": "string"},
                "prefill": {"type": "object"}
            }
        },
        "SubmissionResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["submitted", "payment_pending"]},
                "message": {"type": "string"},
                "checkout": {"$ref": "#/definitions/CheckoutDescriptor"},
                "receiptToken": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
