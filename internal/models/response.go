package models

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
}

// SuccessEnvelope is the uniform wrapper for successful responses.
type SuccessEnvelope struct {
	Code    ErrorCode       `json:"code"`
	Message string          `json:"message"`
	Data    any             `json:"data"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

// NewSuccess wraps data in the standard success envelope.
func NewSuccess(data any) SuccessEnvelope {
	return SuccessEnvelope{Code: CodeOK, Message: "success", Data: data}
}

// NewSuccessPage wraps data together with pagination metadata.
func NewSuccessPage(data any, meta PaginationMeta) SuccessEnvelope {
	return SuccessEnvelope{Code: CodeOK, Message: "success", Data: data, Meta: &meta}
}

// ErrorEnvelope is the uniform wrapper for failed responses.
type ErrorEnvelope struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Detail    any       `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
