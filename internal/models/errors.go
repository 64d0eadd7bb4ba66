package models

// ErrorCode is the stable machine-readable error class returned to clients.
// The set is closed; clients may switch on it.
type ErrorCode string

const (
	CodeOK          ErrorCode = "OK"
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeValidation  ErrorCode = "VALIDATION"
	CodeAuthFailed  ErrorCode = "AUTH_FAILED"
	CodeForbidden   ErrorCode = "FORBIDDEN"
	CodeBadRequest  ErrorCode = "BAD_REQUEST"
	CodeServerError ErrorCode = "SERVER_ERROR"
)

// CodeFromStatus maps an HTTP status code to its error code. The mapping is
// total: any status without an explicit entry maps to BAD_REQUEST.
func CodeFromStatus(status int) ErrorCode {
	switch {
	case status == 400:
		return CodeBadRequest
	case status == 401:
		return CodeAuthFailed
	case status == 403:
		return CodeForbidden
	case status == 404:
		return CodeNotFound
	case status == 422:
		return CodeValidation
	case status >= 500 && status <= 599:
		return CodeServerError
	default:
		return CodeBadRequest
	}
}
