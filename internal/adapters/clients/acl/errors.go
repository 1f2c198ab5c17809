package acl

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jsamuelsen/quote-manager/internal/adapters/clients"
	"github.com/jsamuelsen/quote-manager/internal/domain"
)

// maxErrorBody bounds how much of an error response is read for context.
const maxErrorBody = 4 << 10

// ErrorResponse is an error body from the remote quote service, flattened
// from either {"error":{"code","message","details"}} or {"code","message"}.
type ErrorResponse struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *ErrorResponse) UnmarshalJSON(data []byte) error {
	type flat struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}

	var wire struct {
		flat
		Error flat `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	picked := wire.flat
	if wire.Error.Code != "" || wire.Error.Message != "" {
		picked = wire.Error
	}

	*e = ErrorResponse(picked)

	return nil
}

// ParseErrorResponse decodes an error body. It returns nil when the body is
// missing, not JSON, or says nothing useful.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var resp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&resp); err != nil {
		return nil
	}

	if resp.Code == "" && resp.Message == "" {
		return nil
	}

	return &resp
}

// MapHTTPError turns a failed exchange with the remote service into a domain
// error. resp may be nil when clientErr is set; a 2xx response maps to nil.
// Anything the sync engine cannot act on becomes an UnavailableError.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	unavailable := func(reason string) error {
		return domain.NewUnavailableError(serviceName, reason)
	}

	switch {
	case errors.Is(clientErr, clients.ErrCircuitOpen):
		return unavailable("circuit breaker open during " + operation)
	case errors.Is(clientErr, clients.ErrMaxRetriesExceeded):
		return unavailable("max retries exceeded during " + operation)
	case clientErr != nil:
		return unavailable(operation + " failed: " + clientErr.Error())
	case resp == nil:
		return unavailable("no response received")
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	}

	body := ParseErrorResponse(resp.Body)

	message := operation + " failed with status " + strconv.Itoa(resp.StatusCode)
	if body != nil && body.Message != "" {
		message = body.Message
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, operation)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if body != nil {
			for field, msg := range body.Details {
				return domain.NewValidationError(field, msg)
			}
		}

		return domain.NewValidationError("", message)
	case http.StatusTooManyRequests:
		return unavailable("rate limit exceeded")
	default:
		return unavailable(message)
	}
}
