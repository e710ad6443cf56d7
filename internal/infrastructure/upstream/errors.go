package upstream

import (
	"errors"
	"net/http"

	"projectview/internal/domain"
)

// translate turns backend client errors into domain errors so services can
// tell them apart from transient failures, which are returned unchanged.
func translate(resource string, err error) error {
	var se *StatusError
	if !errors.As(err, &se) || se.Temporary() {
		return err
	}

	switch se.StatusCode {
	case http.StatusNotFound:
		return domain.NotFound(resource + " not found")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.BadRequest("%s", se.Message)
	default:
		return &domain.DomainError{
			Code:       domain.ErrorCodeUpstream,
			Message:    se.Message,
			HTTPStatus: se.StatusCode,
		}
	}
}
