package handlers

import (
	"errors"
	"net/http"

	"github.com/oksasatya/go-course-api/pkg/apperror"
	"github.com/oksasatya/go-course-api/pkg/validation"
)

// bindError maps a gin binding failure to the error the translator renders.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.BadRequest("request body too large")
	}
	return apperror.Validation(validation.ToDetails(err))
}
