package logger

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestNewLogger_ReturnsUsableLogger(t *testing.T) {
	l := NewLogger("test-role")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	// must not panic
	l.Debug().Msg("debug message")
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	l.Error().Msg("should go nowhere")
}

func TestGetChildLogger_Independent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()
	if child == nil {
		t.Fatal("expected non-nil child logger")
	}
	if child == parent {
		t.Error("child logger must be a distinct instance")
	}
}

func TestFromContext_NoLoggerAttached(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("expected non-nil logger from empty context")
	}
}

func TestFromRequest_WithAttachedLogger(t *testing.T) {
	base := Nop()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(base.WithContext(r.Context()))

	l := FromRequest(r)
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}
