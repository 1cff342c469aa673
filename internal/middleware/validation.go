package middleware

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"retailgenie/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate = validator.New()

// DecodeAndValidate enforces the JSON body contract: body-carrying
// methods need Content-Type: application/json and a parseable body, and
// the decoded struct must pass its validation tags.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return apperr.Validation("Content-Type must be application/json")
		}
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid JSON body")
	}

	if err := validate.Struct(v); err != nil {
		return apperr.Validation("%s", formatValidationError(err))
	}
	return nil
}

// formatValidationError names the first offending field.
func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid request body"
	}

	e := verrs[0]
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " is too short"
	case "gte":
		return field + " must be >= " + e.Param()
	case "lte":
		return field + " must be <= " + e.Param()
	default:
		return field + " is invalid"
	}
}
