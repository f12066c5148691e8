// Package httperr defines the API error taxonomy and the single place
// where store-layer failures are mapped onto it.
package httperr

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

// Error is an API-facing error with a fixed HTTP status. The JSON body
// shape is {success:false, message, errors?}.
type Error struct {
	Status  int      `json:"-"`
	Message string   `json:"message"`
	Fields  []string `json:"errors,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the underlying error for logging. The cause is
// never serialized to the client.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

func Validation(fields ...string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Validation Error", Fields: fields}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func DuplicateAccount() *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Email already in use"}
}

// InvalidCredentials is deliberately generic so login failures do not
// reveal which emails are registered.
func InvalidCredentials() *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Invalid credentials"}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Not authorized"
	}
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden() *Error {
	return &Error{Status: http.StatusForbidden, Message: "Forbidden: insufficient permissions"}
}

func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Message: resource + " not found"}
}

func Server(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Server error", cause: cause}
}

// pq error code for unique constraint violations.
const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-index
// failure. The unique index, not the prior existence check, is the
// actual enforcement point under concurrent writes.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// FromStore maps known store-layer error shapes to the taxonomy and
// defaults everything else to a server error.
func FromStore(err error, resource string) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return NotFound(resource)
	case IsUniqueViolation(err):
		return BadRequest(resource + " already exists")
	default:
		return Server(err)
	}
}

// FromBinding converts a gin binding failure into field-level messages.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldMessage(fe))
		}
		return Validation(fields...)
	}
	return BadRequest("Invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// Abort writes the error in the canonical body shape and stops the
// gin handler chain.
func Abort(c *gin.Context, err *Error) {
	body := gin.H{
		"success": false,
		"message": err.Message,
	}
	if len(err.Fields) > 0 {
		body["errors"] = err.Fields
	}
	c.AbortWithStatusJSON(err.Status, body)
}
