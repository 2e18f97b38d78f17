package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/speedisha/speedisha/internal/auth/domain"
	builderdomain "github.com/speedisha/speedisha/internal/builder/domain"
	onboardingdomain "github.com/speedisha/speedisha/internal/onboarding/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware converts errors attached to the gin context
// into the JSON error envelope, after handlers return.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var fieldErrs onboardingdomain.FieldErrors
	if errors.As(err, &fieldErrs) {
		payload := errorPayload{Type: "validation_error", Message: "validation error"}
		for field, msg := range fieldErrs {
			payload.Errors = append(payload.Errors, ValidationError{
				Field:   field,
				Code:    "invalid_" + field,
				Message: msg,
			})
		}
		return http.StatusBadRequest, payload
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Code: err.Error(), Message: validationMessage(err)},
			},
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrNotSignedIn),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, authdomain.ErrResendLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many sign-in emails, try again shortly",
		}
	case errors.Is(err, builderdomain.ErrExportInFlight),
		errors.Is(err, onboardingdomain.ErrProfileExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired),
		errors.Is(err, builderdomain.ErrEmptyLabel),
		errors.Is(err, builderdomain.ErrInvalidFieldType),
		errors.Is(err, builderdomain.ErrDuplicateField),
		errors.Is(err, builderdomain.ErrDerivedField),
		errors.Is(err, builderdomain.ErrLastItem),
		errors.Is(err, builderdomain.ErrInvalidTax),
		errors.Is(err, builderdomain.ErrInvalidColor),
		errors.Is(err, builderdomain.ErrUnknownField),
		errors.Is(err, builderdomain.ErrInvalidStyle),
		errors.Is(err, builderdomain.ErrFileTooLarge),
		errors.Is(err, builderdomain.ErrNotAnImage),
		errors.Is(err, builderdomain.ErrCaptureTooSmall):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, builderdomain.ErrSessionNotFound),
		errors.Is(err, builderdomain.ErrFieldNotFound),
		errors.Is(err, builderdomain.ErrItemNotFound),
		errors.Is(err, onboardingdomain.ErrProfileNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, builderdomain.ErrLastItem):
		return "an invoice must keep at least one line item"
	case errors.Is(err, builderdomain.ErrDerivedField):
		return "amount is derived from quantity and price"
	case errors.Is(err, builderdomain.ErrDuplicateField):
		return "a field with that name already exists"
	case errors.Is(err, builderdomain.ErrFileTooLarge):
		return "file exceeds the 5MB limit"
	case errors.Is(err, builderdomain.ErrNotAnImage):
		return "file must be an image"
	case errors.Is(err, authdomain.ErrTokenExpired):
		return "sign-in link has expired"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog labels request log lines for 4xx/5xx responses.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "server_error", payload.Type
	case status >= 400:
		return "client_error", payload.Type
	default:
		return "", ""
	}
}
