package models

import (
	"net/http"
	"testing"
)

func TestCodeFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorCode
	}{
		{"bad request", 400, CodeBadRequest},
		{"unauthorized", 401, CodeAuthFailed},
		{"forbidden", 403, CodeForbidden},
		{"not found", 404, CodeNotFound},
		{"unprocessable entity", 422, CodeValidation},
		{"internal error", 500, CodeServerError},
		{"bad gateway", 502, CodeServerError},
		{"service unavailable", 503, CodeServerError},
		{"unmapped 4xx defaults to bad request", http.StatusTeapot, CodeBadRequest},
		{"too many requests defaults to bad request", 429, CodeBadRequest},
		{"success status defaults to bad request", 200, CodeBadRequest},
		{"redirect defaults to bad request", 302, CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeFromStatus(tt.status); got != tt.want {
				t.Errorf("CodeFromStatus(%d) = %s, want %s", tt.status, got, tt.want)
			}
		})
	}
}
