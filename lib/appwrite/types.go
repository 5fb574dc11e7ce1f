package appwrite

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DocumentList is one page of a list-documents response.
type DocumentList struct {
	Total int `json:"total"`
	// Limit is only set when the server reports the page size it applied.
	Limit     *int       `json:"limit,omitempty"`
	Documents []Document `json:"documents"`
}

// Document is a stored record. System attributes are prefixed with '$'.
type Document map[string]json.RawMessage

// ResponseError is returned when Appwrite answers with a non-2xx status.
type ResponseError struct {
	Status  int
	Headers http.Header
	// Data is the decoded JSON body, nil when the body is not JSON.
	Data any
	Body []byte
}

func newResponseError(resp *http.Response, body []byte) *ResponseError {
	e := &ResponseError{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    body,
	}
	var data any
	if len(body) > 0 && json.Unmarshal(body, &data) == nil {
		e.Data = data
	}
	return e
}

func (e *ResponseError) Error() string {
	if m, ok := e.Data.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return fmt.Sprintf("appwrite: status %d: %s", e.Status, msg)
		}
	}
	return fmt.Sprintf("appwrite: status %d", e.Status)
}
