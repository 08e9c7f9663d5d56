package api

import "encoding/json"

// Package api provides the typed marketplace API client. Every call returns a
// uniform envelope; transport and server failures never escape as Go errors.

// ErrorKind classifies a failed call. The server's original message is kept in
// Err; the kind is derived client-side from the HTTP status range.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindServer       ErrorKind = "server"
	KindConnectivity ErrorKind = "connectivity"
)

// Generic fallback messages surfaced when the server gives no usable detail.
const (
	msgConnectivity = "could not reach the server, please check your connection"
	msgServerError  = "the request could not be processed"
	msgBadPayload   = "the server returned an unreadable response"
)

// Response is the uniform result of a single API call.
// Exactly one terminal shape holds: Success true with optional Data and empty
// Err, or Success false with a non-empty Err and nil Data.
type Response[T any] struct {
	Success bool
	Data    *T
	Err     string
	Kind    ErrorKind
	Message string
}

// NoData marks endpoints whose success payload carries nothing the caller uses.
type NoData struct{}

func ok[T any](data *T, message string) Response[T] {
	return Response[T]{Success: true, Data: data, Message: message}
}

func fail[T any](kind ErrorKind, errMsg string) Response[T] {
	return Response[T]{Success: false, Kind: kind, Err: errMsg}
}

// kindForStatus maps an HTTP status code to an error kind.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// serverDetail is the loose shape error (and some success) bodies carry.
type serverDetail struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// serverMessage extracts a human-readable message from a response body,
// preferring "message" over "error". Empty when the body has neither.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var detail serverDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return ""
	}
	if detail.Message != "" {
		return detail.Message
	}
	return detail.Error
}
