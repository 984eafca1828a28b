package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is returned for every failed backend call. Message is what the UI
// shows to the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorBody is the FastAPI-style error envelope. Detail is either a string or
// a list of validation entries.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationEntry struct {
	Msg string `json:"msg"`
}

// errorFromBody builds an Error for a non-2xx response. Bodies that cannot be
// parsed fall back to the generic status message.
func errorFromBody(status int, body []byte) *Error {
	e := &Error{
		Status:  status,
		Message: fmt.Sprintf("Request failed with status %d", status),
	}
	if msg := detailMessage(body); msg != "" {
		e.Message = msg
	}
	return e
}

// detailMessage extracts a human-readable message from an error body.
func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(eb.Detail, &entries); err != nil {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for _, raw := range entries {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			if str != "" {
				parts = append(parts, str)
			}
			continue
		}
		var ve validationEntry
		if err := json.Unmarshal(raw, &ve); err == nil && ve.Msg != "" {
			parts = append(parts, ve.Msg)
		}
	}
	return strings.Join(parts, "; ")
}

// invalidResponse wraps a decoding or validation failure of a 2xx body.
func invalidResponse(status int, err error) *Error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf("invalid response: %v", err),
	}
}
