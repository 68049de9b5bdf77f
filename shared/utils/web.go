package utils

import (
	"errors"
	"net/http"

	"github.com/Lombiq/NGM.Forum/shared/logger"
	"github.com/go-playground/validator/v10"

	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode maps an error to its HTTP status. Unknown errors
// are logged and answered with a generic 500 so store internals stay private.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var withStatus *internal_errors.ErrorWithStatusCode
	var validation *internal_errors.ValidationError
	switch {
	case errors.As(err, &withStatus):
		http.Error(w, withStatus.Message, withStatus.StatusCode)
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.Is(err, internal_errors.NotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		logger.Log.Error("request failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// ValidateStruct runs validator tags on v and reports failures as a 400.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		logger.Log.Debug("validation failed", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid request parameters: " + err.Error(), StatusCode: http.StatusBadRequest}
	}
	return nil
}
