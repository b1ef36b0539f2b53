package digest

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func TestFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"small", []byte("encoded video bytes")},
		{"multi buffer", []byte(strings.Repeat("x", 3<<20+17))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "encoded.mp4")
			if err := os.WriteFile(path, tt.data, 0o600); err != nil {
				t.Fatal(err)
			}

			sum, err := File(context.Background(), path)
			if err != nil {
				t.Fatalf("File: %v", err)
			}
			want := blake2b.Sum256(tt.data)
			if sum.Hex != hex.EncodeToString(want[:]) {
				t.Errorf("hex = %s, want %x", sum.Hex, want)
			}
			if sum.Size != int64(len(tt.data)) {
				t.Errorf("size = %d, want %d", sum.Size, len(tt.data))
			}
			if !strings.HasPrefix(sum.String(), "BLAKE2b-256 "+sum.Hex) {
				t.Errorf("unexpected String(): %s", sum.String())
			}
		})
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")
	if err := os.WriteFile(path, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := File(ctx, path); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
