// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolerr defines the error taxonomy shared by every client and the
// single function that renders any error as text safe to hand to a language
// model. Each error carries a technical message (for logs) and a separate
// LLM-facing message.
package toolerr

import (
	"errors"
	"fmt"
	"reflect"
)

// LLMError is implemented by every error in the taxonomy.
type LLMError interface {
	error
	LLMMessage() string
}

// base holds the fields common to all taxonomy errors.
type base struct {
	message    string
	llmMessage string
	err        error
}

func (b *base) Error() string {
	if b.err != nil {
		return b.message + ": " + b.err.Error()
	}
	return b.message
}

func (b *base) Unwrap() error { return b.err }

// LLMMessage returns the message intended for the model. It defaults to the
// technical message when none was set.
func (b *base) LLMMessage() string {
	if b.llmMessage != "" {
		return b.llmMessage
	}
	return b.message
}

// Error is the base tool error.
type Error struct{ base }

// NewError returns a base tool error. An empty llmMessage falls back to the
// technical message.
func NewError(message, llmMessage string) *Error {
	return &Error{base{message: message, llmMessage: llmMessage}}
}

// APIError reports a failure talking to an upstream service. StatusCode is
// zero when the failure happened below HTTP (connection, timeout, decode).
type APIError struct {
	base
	StatusCode int
}

// NewAPIError returns an APIError. When llmMessage is empty the message is
// derived from the status code.
func NewAPIError(message string, statusCode int, llmMessage string) *APIError {
	if llmMessage == "" {
		llmMessage = statusMessage(statusCode)
	}
	return &APIError{base: base{message: message, llmMessage: llmMessage}, StatusCode: statusCode}
}

// Wrap records err as the cause and returns e.
func (e *APIError) Wrap(err error) *APIError {
	e.err = err
	return e
}

// Rewrap returns an APIError with a new technical message that keeps the
// status code and LLM guidance of err when err is a taxonomy error.
func Rewrap(message string, err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return (&APIError{base: base{message: message, llmMessage: apiErr.LLMMessage()}, StatusCode: apiErr.StatusCode}).Wrap(err)
	}
	var llmErr LLMError
	if errors.As(err, &llmErr) {
		return (&APIError{base: base{message: message, llmMessage: llmErr.LLMMessage()}}).Wrap(err)
	}
	return NewAPIError(message, 0, "").Wrap(err)
}

// RewrapStatus is Rewrap with an operation-specific LLM message for
// upstream HTTP failures. Errors without a status code keep their own
// guidance, so a timeout still reads as a timeout.
func RewrapStatus(message, statusLLM string, err error) *APIError {
	status := StatusCode(err)
	if status == 0 {
		return Rewrap(message, err)
	}
	return NewAPIError(fmt.Sprintf("%s: %v", message, err), status, statusLLM).Wrap(err)
}

func statusMessage(code int) string {
	switch {
	case code == 404:
		return "The requested resource was not found. Please check your search terms and try again."
	case code == 401 || code == 403:
		return "Authentication failed. Please check your API key configuration."
	case code == 429:
		return "Rate limit exceeded. Please try again in a few moments."
	case code >= 500:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "An error occurred while contacting the service. Please try again."
	}
}

// ConfigError reports a missing or unusable setting.
type ConfigError struct {
	base
	// Setting is the environment name of the missing setting, if known.
	Setting string
}

// NewConfigError returns a ConfigError. An empty llmMessage produces a
// generic pointer at the environment configuration.
func NewConfigError(message, llmMessage string) *ConfigError {
	if llmMessage == "" {
		llmMessage = fmt.Sprintf("Configuration error: %s. Please check your environment variables or .env file.", message)
	}
	return &ConfigError{base: base{message: message, llmMessage: llmMessage}}
}

// MissingSetting returns a ConfigError for a required setting that is unset.
// concept is the human name ("Primo API key").
func MissingSetting(setting, concept string) *ConfigError {
	e := NewConfigError(
		setting+" not configured",
		fmt.Sprintf("%s is required. Please set %s in your environment or .env file.", concept, setting),
	)
	e.Setting = setting
	return e
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	base
	// Field names the offending parameter, if known.
	Field string
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, message, llmMessage string) *ValidationError {
	if llmMessage == "" {
		llmMessage = fmt.Sprintf("Invalid input: %s. Please check your parameters and try again.", message)
	}
	return &ValidationError{base: base{message: message, llmMessage: llmMessage}, Field: field}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// FormatForLLM renders any error as short text. Taxonomy errors render their
// LLM message; anything else becomes a generic message naming only the error
// kind, never its text.
func FormatForLLM(err error) string {
	if err == nil {
		return ""
	}
	var llmErr LLMError
	if errors.As(err, &llmErr) {
		return llmErr.LLMMessage()
	}
	return fmt.Sprintf("An unexpected error occurred (%s). Please try rephrasing your request or contact support if the problem persists.", kindOf(err))
}

func kindOf(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "error"
	}
	return t.Name()
}
