package domain

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrorCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrorCodeUpstream   ErrorCode = "UPSTREAM_ERROR"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func BadRequest(format string, args ...any) *DomainError {
	return &DomainError{
		Code:       ErrorCodeBadRequest,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(msg string) *DomainError {
	return &DomainError{
		Code:       ErrorCodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

func Upstream(msg string) *DomainError {
	return &DomainError{
		Code:       ErrorCodeUpstream,
		Message:    msg,
		HTTPStatus: http.StatusBadGateway,
	}
}
