package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ServerError is a 5xx answer from a backend, surfaced by CircuitBreakerClient.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Body)
}

// downstreamErrorResponse matches the {"error":{code,message}} envelope.
type downstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads a non-2xx response and translates it into an
// AppError. Structured bodies keep their code and message. The body is
// consumed and closed.
func ParseResponseError(resp *http.Response, backend string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", backend, resp.StatusCode, err)
	}

	code, message := "", string(body)
	var downstream downstreamErrorResponse
	if json.Unmarshal(body, &downstream) == nil && downstream.Error != nil {
		code, message = downstream.Error.Code, downstream.Error.Message
	}
	return mapDownstreamError(resp.StatusCode, code, message, backend)
}

func mapDownstreamError(status int, code, message, backend string) error {
	qualified := fmt.Sprintf("%s: %s", backend, message)

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: qualified,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(codeOr(code, "CONFLICT"), qualified, nil)
	case status == http.StatusUnprocessableEntity:
		return apperrors.Unprocessable(codeOr(code, "UNPROCESSABLE"), qualified, nil)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status >= http.StatusInternalServerError:
		return apperrors.ServiceUnavailable(backend+" unavailable",
			&ServerError{Status: status, Body: message})
	default:
		return &apperrors.AppError{
			Code:    codeOr(code, "DOWNSTREAM_ERROR"),
			Message: qualified,
			Status:  status,
		}
	}
}

// AsUnavailable maps transport failures, open breakers and 5xx answers to a
// 503 AppError. Other errors are returned unchanged.
func AsUnavailable(err error, backend string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.ServiceUnavailable(backend+" unavailable", err)
}

func codeOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
