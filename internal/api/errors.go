package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed operation so callers can pick a message without
// inspecting error text.
type Kind int

const (
	// KindServer is any non-2xx other than 404, or a response that breaks
	// its contract.
	KindServer Kind = iota
	// KindMissingInput means a required input (user id, path parameter) was
	// absent. No request was sent. Not retryable.
	KindMissingInput
	// KindNetwork means the backend could not be reached or timed out.
	KindNetwork
	// KindNotFound is a 404.
	KindNotFound
)

// String returns a short name for logs.
func (k Kind) String() string {
	switch k {
	case KindMissingInput:
		return "missing_input"
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	default:
		return "server"
	}
}

// Retryable reports whether re-issuing the same request can succeed.
func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindServer
}

// Error is returned by every Client method.
type Error struct {
	Kind    Kind
	Op      string // e.g. "GET /api/achievements/3"
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-supplied message, if any
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("api")
	if e.Op != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Op)
	}
	sb.WriteString(": ")
	switch {
	case e.Message != "":
		sb.WriteString(e.Message)
	case e.Err != nil:
		sb.WriteString(e.Err.Error())
	default:
		sb.WriteString(e.Kind.String())
	}
	if e.Status != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.Status)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MissingInput builds the error for a request that was never sent.
func MissingInput(what string) *Error {
	return &Error{Kind: KindMissingInput, Message: what + " is required"}
}

// KindOf extracts the classification of err. Unclassified errors report
// ok=false.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindServer, false
}

// classifyTransport turns a client.Do failure into an *Error. Every
// failure before a response arrives (refused, DNS, timeout, cancel) is a
// network failure.
func classifyTransport(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// errorBody is the error payload shape. Backends use either key.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// classifyStatus turns a non-2xx response into an *Error.
func classifyStatus(op string, status int, body []byte) *Error {
	e := &Error{Kind: KindServer, Op: op, Status: status}
	if status == http.StatusNotFound {
		e.Kind = KindNotFound
	}
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			e.Message = eb.Message
		} else if eb.Error != "" {
			e.Message = eb.Error
		}
	}
	if e.Message == "" {
		e.Err = fmt.Errorf("unexpected status %d", status)
	}
	return e
}
