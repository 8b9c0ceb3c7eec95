package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSetting, "unknown scale: %s", "hourly")

	if err.Code != ErrCodeInvalidSetting {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSetting)
	}

	if err.Message != "unknown scale: hourly" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown scale: hourly")
	}

	expected := "INVALID_SETTING: unknown scale: hourly"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeSourceUnavailable, cause, "open items")

	if err.Code != ErrCodeSourceUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSourceUnavailable)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "SOURCE_UNAVAILABLE: open items: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeTimeout,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvariant, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvariant,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeFrameNotFound, "test"), ErrCodeFrameNotFound},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		err      error
		client   bool
		notFound bool
	}{
		{New(ErrCodeInvalidKey, "x"), true, false},
		{New(ErrCodeInvalidFormat, "x"), true, false},
		{New(ErrCodeFileNotFound, "x"), false, true},
		{New(ErrCodeFrameNotFound, "x"), false, true},
		{New(ErrCodeInvariant, "x"), false, false},
		{errors.New("plain"), false, false},
	}

	for _, tt := range tests {
		if got := IsClientError(tt.err); got != tt.client {
			t.Errorf("IsClientError(%v) = %v, want %v", tt.err, got, tt.client)
		}
		if got := IsNotFound(tt.err); got != tt.notFound {
			t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.notFound)
		}
	}
}
