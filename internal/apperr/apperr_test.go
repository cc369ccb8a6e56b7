package apperr

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestError_IsKindAndCause(t *testing.T) {
	err := New(ErrNotFound, "analyze", "in.png", fs.ErrNotExist)
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
	if errors.Is(err, ErrDecode) {
		t.Error("errors.Is(err, ErrDecode) = true")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", &Error{Kind: ErrReport}, "report write failed"},
		{"with op and path", New(ErrDecode, "analyze", "a.png", nil), "analyze: cannot decode image (a.png)"},
		{"encode format", Encode("gif", "out.gif", errors.New("no frames")), "encode: gif encode failed (out.gif): no frames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	err := Encodef("mp4", "", "frame %d: %w", 3, context.Canceled)
	if KindOf(err) != ErrEncode {
		t.Errorf("KindOf = %v, want ErrEncode", KindOf(err))
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("cause lost through Encodef")
	}
	if !strings.Contains(err.Error(), "frame 3") {
		t.Errorf("message %q missing formatted cause", err.Error())
	}
	if KindOf(errors.New("plain")) != nil {
		t.Error("KindOf(plain) should be nil")
	}
}
