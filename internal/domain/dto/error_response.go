package dto

import "time"

// ErrorResponse is the standardized error payload returned by the API.
//
// Fields:
//   - Code: machine-readable failure kind (e.g. "symbol_not_found", "empty_series").
//   - Message: human-readable summary.
//   - ErrorDetails: underlying error text, if any.
//   - RequestID: the X-Request-ID of the failed request, for log lookup.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Code         string    `json:"code,omitempty" example:"symbol_not_found"`
	Message      string    `json:"message" example:"symbol not found"`
	ErrorDetails string    `json:"error,omitempty" example:"provider: symbol not found: ZZZZ"`
	RequestID    string    `json:"request_id,omitempty" example:"0b6f1c9e-3d7a-4f55-9a43-2f4c2f1b8e11"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse without a code.
func NewErrorResponse(message string, err error) ErrorResponse {
	return NewCodedErrorResponse("", message, err)
}

// NewCodedErrorResponse builds an ErrorResponse tagged with a failure code.
func NewCodedErrorResponse(code, message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// WithRequestID returns a copy of e carrying the given request id.
func (e ErrorResponse) WithRequestID(id string) ErrorResponse {
	e.RequestID = id
	return e
}
