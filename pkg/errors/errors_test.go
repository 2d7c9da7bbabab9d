package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfig, "test message: %s", "value")

	if err.Code != ErrCodeConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "CONFIG: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSerialization, cause, "failed to decode")

	if err.Code != ErrCodeSerialization {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSerialization)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestClosed(t *testing.T) {
	cause := errors.New("close 1000")
	err := Closed(ConnectionClosed, cause)

	if err.Code != ErrCodeConnectionState {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConnectionState)
	}
	if err.State != ConnectionClosed {
		t.Errorf("State = %v, want %v", err.State, ConnectionClosed)
	}
	if err.Message != "connection closed" {
		t.Errorf("Message = %q, want %q", err.Message, "connection closed")
	}
}

func TestRequest(t *testing.T) {
	err := Request(597, "script evaluation error")

	if err.Status != 597 {
		t.Errorf("Status = %d, want 597", err.Status)
	}
	if !Is(err, ErrCodeRequest) {
		t.Error("Is(err, ErrCodeRequest) = false, want true")
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
			err:      New(ErrCodeTransport, "test"),
			code:     ErrCodeTransport,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeTransport, "test"),
			code:     ErrCodeChannelSend,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodePool, New(ErrCodeTransport, "inner"), "outer"),
			code:     ErrCodePool,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeTransport,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeTransport,
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

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"already closed", Closed(AlreadyClosed, nil), true},
		{"connection closed", Closed(ConnectionClosed, nil), true},
		{"opaque transport", New(ErrCodeTransport, "Error from ws boom"), false},
		{"channel send", New(ErrCodeChannelSend, "send failed"), false},
		{"state without code", &Error{Code: ErrCodeTransport, State: AlreadyClosed}, false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.expected {
				t.Errorf("IsRecoverable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(ErrCodeChannelSend, "writer gone")) {
		t.Error("IsFatal(CHANNEL_SEND) = false, want true")
	}
	if IsFatal(Closed(ConnectionClosed, nil)) {
		t.Error("IsFatal(CONNECTION_STATE) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeCast, "test"),
			expected: ErrCodeCast,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeAuth, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClosedStateString(t *testing.T) {
	tests := []struct {
		state ClosedState
		want  string
	}{
		{StateNone, "none"},
		{AlreadyClosed, "already closed"},
		{ConnectionClosed, "connection closed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("ClosedState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
