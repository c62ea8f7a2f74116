package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in an Envelope.
// Error bodies go under "error", everything else under "data".
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if _, ok := v.(Envelope); ok {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		return Envelope{Success: false, Error: apiErr}, nil
	}

	code, err := strconv.Atoi(status)
	if err != nil {
		code = 0
	}
	return Envelope{Success: code < 400, Data: v}, nil
}
