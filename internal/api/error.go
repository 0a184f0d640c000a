package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrDecodeResponse = errors.New("failed to decode backend response")
	ErrEncodeRequest  = errors.New("failed to encode backend request")
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error: status=%d message=%s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error: status=%d body=%s", e.Status, e.Body)
}

// UserMessage is the server-provided message, if any.
func (e *Error) UserMessage() string {
	return e.Message
}

func newError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	e := &Error{Status: status, Body: string(body)}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	}
	return e
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
