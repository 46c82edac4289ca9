package validation

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Rule is a single constraint on a request field.
type Rule string

const (
	// Defined rejects a missing or null value.
	Defined Rule = "defined"
	// NotEmpty rejects null and the empty string.
	NotEmpty Rule = "notEmpty"
	// String rejects any non-string value.
	String Rule = "string"
	// ISO8601 rejects anything but an ISO 8601 date or date-time string.
	ISO8601 Rule = "iso8601"
)

var messages = map[Rule]string{
	Defined:  "should not be null or undefined",
	NotEmpty: "should not be empty",
	String:   "must be a string",
	ISO8601:  "must be a valid ISO 8601 date string",
}

type Field struct {
	Name  string
	Rules []Rule
}

// Schema is the ordered rule table of one request body.
type Schema []Field

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation(string(ISO8601), func(fl validator.FieldLevel) bool {
			_, err := model.ParseDate(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks raw against every rule and returns all violations in
// schema order. In partial mode a field that is absent or null is skipped.
func (s Schema) Validate(raw map[string]any, partial bool) []FieldError {
	var errs []FieldError

	for _, f := range s {
		value, present := raw[f.Name]
		if partial && (!present || value == nil) {
			continue
		}

		for _, rule := range f.Rules {
			if !check(rule, value) {
				errs = append(errs, FieldError{
					Field:   f.Name,
					Rule:    string(rule),
					Message: f.Name + " " + messages[rule],
				})
			}
		}
	}

	return errs
}

func check(rule Rule, value any) bool {
	switch rule {
	case Defined:
		return value != nil
	case NotEmpty:
		if value == nil {
			return false
		}
		s, ok := value.(string)
		if !ok {
			return true
		}
		return engine().Var(s, "required") == nil
	case String:
		_, ok := value.(string)
		return ok
	case ISO8601:
		s, ok := value.(string)
		if !ok {
			return false
		}
		return engine().Var(s, string(ISO8601)) == nil
	default:
		return false
	}
}

// BindAndValidateJSON decodes the body into a generic object, checks it
// against schema and then decodes it into dst. On failure it writes a 400
// response and returns false.
func BindAndValidateJSON(c *gin.Context, schema Schema, partial bool, dst any) bool {
	var raw map[string]any
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		abortInvalidBody(c, err)
		return false
	}

	if errs := schema.Validate(raw, partial); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "validation failed",
			Errors:  errs,
		})
		return false
	}

	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		abortInvalidBody(c, err)
		return false
	}

	return true
}

func abortInvalidBody(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    "INVALID_BODY",
		Message: "invalid request body",
		Errors: []FieldError{
			{
				Field:   "",
				Rule:    "syntax",
				Message: err.Error(),
			},
		},
	})
}
