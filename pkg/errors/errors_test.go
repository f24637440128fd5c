package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	e := New(ErrCodeInvalidFormat, "unsupported format: %s", "pdf")
	if got, want := e.Error(), "INVALID_FORMAT: unsupported format: pdf"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("disk full")
	w := Wrap(ErrCodeRenderFailed, cause, "encode %s", "png")
	if got, want := w.Error(), "RENDER_FAILED: encode png: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(w, cause) || errors.Unwrap(w) != cause {
		t.Error("Wrap does not expose its cause")
	}
}

func TestCodes(t *testing.T) {
	inner := New(ErrCodeInvalidColor, "bad color %q", "#zz")
	tests := []struct {
		name string
		err  error
		code Code
		msg  string
	}{
		{"coded", inner, ErrCodeInvalidColor, `bad color "#zz"`},
		{"outermost wins", Wrap(ErrCodeInvalidConfig, inner, "theme"), ErrCodeInvalidConfig, "theme"},
		{"fmt wrapped", fmt.Errorf("load: %w", inner), ErrCodeInvalidColor, `bad color "#zz"`},
		{"plain", errors.New("boom"), "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeTimeout) {
				t.Error("Is(TIMEOUT) = true")
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage = %q, want %q", got, tt.msg)
			}
		})
	}
	if Is(nil, "") {
		t.Error("Is(nil) = true")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"bad format", New(ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{"bad event", New(ErrCodeInvalidEvent, "x"), http.StatusBadRequest},
		{"missing file", New(ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{"timeout", Wrap(ErrCodeTimeout, errors.New("slow"), "x"), http.StatusGatewayTimeout},
		{"render", New(ErrCodeRenderFailed, "x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
