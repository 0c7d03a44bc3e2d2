// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Stable error codes used across service responses.
const (
	CodeUserExists          = "USER_EXISTS"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeUnauthorizedUser    = "UNAUTHORIZED_USER"
	CodeRegisterError       = "REGISTER_ERROR"
	CodeLoginError          = "LOGIN_ERROR"
	CodeInvalidDiscount     = "INVALID_DISCOUNT_VALUE"
	CodeFloorNotFound       = "FLOOR_NOT_FOUND"
	CodeNoPlantsFound       = "NO_PLANTS_FOUND"
	CodeNoFileProvided      = "NO_FILE_PROVIDED"
	CodeBlobUploadFailed    = "BLOB_UPLOAD_FAILED"
	CodeDatabaseSaveFailed  = "DATABASE_SAVE_FAILED"
	CodeUploadImageError    = "UPLOAD_IMAGE_ERROR"
	CodeGetFloorsError      = "GET_FLOORS_ERROR"
	CodeGetOffersError      = "GET_OFFERS_ERROR"
	CodeGetCombosError      = "GET_COMBOS_ERROR"
	CodeCreateOfertaError   = "CREATE_OFERTA_ERROR"
	CodeCreateComboError    = "CREATE_COMBO_ERROR"
	CodePlantNotFound       = "PLANT_NOT_FOUND"
	CodeCreateOrderError    = "CREATE_ORDER_ERROR"
	CodeOrderNotFound       = "ORDER_NOT_FOUND"
	CodeGetOrderError       = "GET_ORDER_ERROR"
	CodePdfGenerationFailed = "PDF_GENERATION_FAILED"
	CodePrintOrderError     = "PRINT_ORDER_ERROR"
	CodePaymentCreateFailed = "PAYMENT_CREATION_FAILED"
	CodeCreatePaymentError  = "CREATE_PAYMENT_ERROR"
	CodeWebhookError        = "WEBHOOK_PROCESSING_ERROR"
	CodeEmailSendFailed     = "EMAIL_SEND_FAILED"
	CodeGetUsersError       = "GET_USERS_ERROR"
	CodeFavoritoNotFound    = "FAVORITO_NOT_FOUND"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInternalServer      = "INTERNAL_SERVER_ERROR"
)

// Error is the canonical error envelope for all 4xx/5xx HTTP responses.
type Error struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// NotFound builds a 404 envelope with the given code.
func NotFound(code, message string) *Error {
	return New(code, http.StatusNotFound, message)
}

// Conflict builds a 409 envelope with the given code.
func Conflict(code, message string) *Error {
	return New(code, http.StatusConflict, message)
}

// BadRequest builds a 400 envelope with the given code.
func BadRequest(code, message string) *Error {
	return New(code, http.StatusBadRequest, message)
}

// Internal builds a 500 envelope with the given code.
func Internal(code, message string) *Error {
	return New(code, http.StatusInternalServerError, message)
}

// From extracts a classified *Error from err, if there is one in the chain.
func From(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Classify applies the service-boundary policy: errors already carrying an
// envelope pass through untouched, everything else is wrapped under the
// operation's catch-all code with status 500.
func Classify(err error, code, message string) *Error {
	if ae, ok := From(err); ok {
		return ae
	}
	return Internal(code, message)
}

// ValidationError wraps request-body validation failures with per-field tags.
type ValidationError struct {
	Code   string            `json:"code"`
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{
		Code:   CodeValidationError,
		Status: http.StatusUnprocessableEntity,
		Errors: fields,
	}
}
