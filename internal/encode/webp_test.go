package encode

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deepteams/webp/animation"

	"github.com/backmassage/apngpress/internal/apperr"
)

func TestWebPEncoder_Encode(t *testing.T) {
	dir := t.TempDir()
	writeStills(t, dir, image.Pt(16, 12), image.Pt(16, 12), image.Pt(16, 12))
	out := filepath.Join(dir, "compressed.webp")

	a, err := WebPEncoder{Quality: 80, FPS: 15, Log: &testLogger{}}.Encode(context.Background(), Input{StillsDir: dir}, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if a.Size <= 0 {
		t.Errorf("artifact size = %d", a.Size)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	anim, err := animation.DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if anim.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0", anim.LoopCount)
	}
	if err := anim.DecodeFrames(); err != nil {
		t.Fatalf("DecodeFrames: %v", err)
	}
	dec, err := animation.NewAnimDecoder(anim)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for dec.HasNext() {
		frame, dur, err := dec.NextFrame()
		if err != nil {
			t.Fatalf("NextFrame %d: %v", n, err)
		}
		if dur < 60*time.Millisecond || dur > 70*time.Millisecond {
			t.Errorf("frame %d duration = %v, want ~1/15 s", n, dur)
		}
		if got := dominant(frame.At(8, 6)); got != n {
			t.Errorf("frame %d dominant channel = %d, want %d", n, got, n)
		}
		n++
	}
	if n != 3 {
		t.Errorf("frames = %d, want 3", n)
	}
}

func TestWebPEncoder_Errors(t *testing.T) {
	mismatched := t.TempDir()
	writeStills(t, mismatched, image.Pt(8, 8), image.Pt(10, 8))

	tests := []struct {
		name string
		dir  string
	}{
		{"empty", t.TempDir()},
		{"missing", filepath.Join(t.TempDir(), "jpg_frames")},
		{"size mismatch", mismatched},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "compressed.webp")
			_, err := WebPEncoder{Quality: 80, FPS: 15, Log: &testLogger{}}.Encode(context.Background(), Input{StillsDir: tt.dir}, out)
			if !errors.Is(err, apperr.ErrEncode) {
				t.Errorf("err = %v, want ErrEncode", err)
			}
		})
	}
}

func TestFrameDuration(t *testing.T) {
	if got := FrameDuration(15); got != 66666667*time.Nanosecond {
		t.Errorf("FrameDuration(15) = %v", got)
	}
	if got := FrameDuration(10); got != 100*time.Millisecond {
		t.Errorf("FrameDuration(10) = %v", got)
	}
}

func TestWebPEncoder_AnimOptions(t *testing.T) {
	for _, q := range []int{1, 80, 100} {
		opts := WebPEncoder{Quality: q}.animOptions()
		if opts.Quality != q || opts.Lossless || opts.LoopCount != 0 {
			t.Errorf("quality %d: options = %+v, want lossy loop 0 at q%d", q, opts, q)
		}
	}
}
