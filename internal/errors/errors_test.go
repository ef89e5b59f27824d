package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "message only",
			err: &AppError{
				Code:    ErrCodeRequest,
				Message: "cannot delete self",
			},
			want: "cannot delete self",
		},
		{
			name: "message is not decorated with cause",
			err: &AppError{
				Code:    ErrCodeTransport,
				Message: "connection refused",
				Cause:   errors.New("dial tcp: connection refused"),
			},
			want: "connection refused",
		},
		{
			name: "cause used when message empty",
			err: &AppError{
				Code:  ErrCodeTransport,
				Cause: errors.New("boom"),
			},
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeRequest, "Request failed")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false", err)
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, ErrCodeRequest, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{status: http.StatusUnauthorized, want: ErrCodeUnauthorized},
		{status: http.StatusForbidden, want: ErrCodeForbidden},
		{status: http.StatusBadRequest, want: ErrCodeRequest},
		{status: http.StatusInternalServerError, want: ErrCodeRequest},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "msg")
			if err.Code != tt.want {
				t.Errorf("FromStatus(%d).Code = %v, want %v", tt.status, err.Code, tt.want)
			}
			if GetStatus(err) != tt.status {
				t.Errorf("GetStatus() = %d, want %d", GetStatus(err), tt.status)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("list users: %w", FromStatus(http.StatusUnauthorized, "invalid token"))
	if !IsUnauthorized(wrapped) {
		t.Error("IsUnauthorized should see through wrapping")
	}
	if IsTransport(wrapped) {
		t.Error("IsTransport should be false for a status error")
	}
	if !IsValidation(Validation("title is required")) {
		t.Error("IsValidation should be true")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode of plain error should be empty")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
	if got := Message(fmt.Errorf("delete user: %w", FromStatus(400, "cannot delete self"))); got != "cannot delete self" {
		t.Errorf("Message() = %q, want %q", got, "cannot delete self")
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("Message() = %q, want plain", got)
	}
}

func TestMapTransportError(t *testing.T) {
	urlErr := &url.Error{Op: "Get", URL: "http://x/api/books", Err: errors.New("connect: connection refused")}

	err := MapTransportError(urlErr)
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if Message(err) != "connect: connection refused" {
		t.Errorf("Message() = %q", Message(err))
	}
	if !errors.Is(err, urlErr) {
		t.Error("cause should be preserved")
	}

	if got := Message(MapTransportError(context.DeadlineExceeded)); got != "request timed out" {
		t.Errorf("deadline message = %q", got)
	}
	if MapTransportError(nil) != nil {
		t.Error("MapTransportError(nil) should be nil")
	}

	already := FromStatus(500, "x")
	if MapTransportError(already) != error(already) {
		t.Error("AppError should pass through unchanged")
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(nil); got != "" {
		t.Errorf("Classify(nil) = %q", got)
	}
	if got := Classify(FromStatus(401, "x")); got != "unauthorized" {
		t.Errorf("Classify(401) = %q", got)
	}
	if got := Classify(fmt.Errorf("wrap: %w", &url.Error{Op: "Get", Err: errors.New("x")})); got != "errors_errorstring" {
		t.Errorf("Classify(url error) = %q", got)
	}
}
