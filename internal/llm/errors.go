package llm

import (
	"errors"
	"fmt"
)

// Code is the stable identifier carried by an APIError.
type Code string

const (
	CodeMissingProviderType Code = "MISSING_PROVIDER_TYPE"
	CodeUnsupportedProvider Code = "UNSUPPORTED_PROVIDER"
	CodeMissingAPIKey       Code = "MISSING_API_KEY"
	CodeMissingModel        Code = "MISSING_MODEL"
	CodeMissingSystemPrompt Code = "MISSING_SYSTEM_PROMPT"
	CodeMissingUserPrompt   Code = "MISSING_USER_PROMPT"
	CodeInvalidRequest      Code = "INVALID_REQUEST"
	CodeAuthentication      Code = "AUTHENTICATION_ERROR"
	CodeAuthorization       Code = "AUTHORIZATION_ERROR"
	CodeResourceNotFound    Code = "RESOURCE_NOT_FOUND"
	CodeRateLimitExceeded   Code = "RATE_LIMIT_EXCEEDED"
	CodeServerError         Code = "SERVER_ERROR"
	CodeBadGateway          Code = "BAD_GATEWAY"
	CodeServiceUnavailable  Code = "SERVICE_UNAVAILABLE"
	CodeGatewayTimeout      Code = "GATEWAY_TIMEOUT"
	CodeUnknown             Code = "UNKNOWN_ERROR"
	CodeClaudeAPI           Code = "CLAUDE_API_ERROR"
	CodeGenerateResponse    Code = "GENERATE_RESPONSE_ERROR"
)

// APIError is returned for every LLM failure. StatusCode is the provider's
// HTTP status when there was one.
type APIError struct {
	Code       Code
	Msg        string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *APIError) Unwrap() error { return e.Err }

// CodeOf returns the Code of the first *APIError in err's chain, or "".
func CodeOf(err error) Code {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// Retryable reports whether err is a transient provider failure.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeServerError, CodeServiceUnavailable, CodeGatewayTimeout, CodeRateLimitExceeded:
		return true
	}
	return false
}

// errorForStatus maps a provider HTTP status to an APIError.
func errorForStatus(status int, cause error) *APIError {
	code, msg := CodeUnknown, fmt.Sprintf("unknown error: %d", status)
	switch status {
	case 400:
		code, msg = CodeInvalidRequest, "bad request: the request was malformed or contained invalid parameters"
	case 401:
		code, msg = CodeAuthentication, "authentication error: invalid API key"
	case 403:
		code, msg = CodeAuthorization, "authorization error: insufficient permissions"
	case 404:
		code, msg = CodeResourceNotFound, "not found: the requested resource does not exist"
	case 429:
		code, msg = CodeRateLimitExceeded, "rate limit exceeded: too many requests"
	case 500:
		code, msg = CodeServerError, "server error: something went wrong on the API server"
	case 502:
		code, msg = CodeBadGateway, "bad gateway: invalid response from the API server"
	case 503, 529:
		code, msg = CodeServiceUnavailable, "service unavailable: the API server is currently unavailable"
	case 504:
		code, msg = CodeGatewayTimeout, "gateway timeout: the API server took too long to respond"
	}
	return &APIError{Code: code, Msg: msg, StatusCode: status, Err: cause}
}
