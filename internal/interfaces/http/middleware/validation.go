package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
)

var setupOnce sync.Once

// SetupValidator reports JSON field names in errors and registers the date
// rules used by request DTOs. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("notfuture", notFuture)
		_ = v.RegisterValidation("notpast", notPast)
	})
}

// notFuture accepts calendar dates up to and including today
func notFuture(fl validator.FieldLevel) bool {
	d, ok := fieldDate(fl)
	if !ok {
		return true
	}
	return !d.After(today())
}

// notPast accepts calendar dates from today on
func notPast(fl validator.FieldLevel) bool {
	d, ok := fieldDate(fl)
	if !ok {
		return true
	}
	return !d.Before(today())
}

// fieldDate reads a string date field; unparseable values are left to the
// datetime rule.
func fieldDate(fl validator.FieldLevel) (time.Time, bool) {
	raw := fl.Field().String()
	if raw == "" {
		return time.Time{}, false
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatValidationErrors formats binding errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	} else {
		details = append(details, dto.ValidationDetail{
			Field:   "body",
			Message: "Malformed request body",
		})
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "datetime":
		return "Must be a date formatted as " + e.Param()
	case "notfuture":
		return "Cannot be in the future"
	case "notpast":
		return "Cannot be in the past"
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
