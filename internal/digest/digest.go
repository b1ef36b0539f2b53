// Package digest fingerprints engine output files with BLAKE2b-256.
package digest

import (
	"context"
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"VideoVault/internal/errors"
	"VideoVault/internal/util"
)

// Sum is the fingerprint of one file.
type Sum struct {
	Path string
	Hex  string
	Size int64
}

// String renders the sum for the status detail line.
func (s Sum) String() string {
	return "BLAKE2b-256 " + s.Hex + " (" + util.Sizeify(s.Size) + ")"
}

// File hashes the file at path. It stops early when ctx is cancelled.
func File(ctx context.Context, path string) (Sum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sum{}, errors.Wrap(err, "open output")
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return Sum{}, err
	}

	buf := util.GetMiBBuffer()
	defer util.PutMiBBuffer(buf)

	var size int64
	for {
		if err := ctx.Err(); err != nil {
			return Sum{}, err
		}
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			size += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Sum{}, errors.Wrap(err, "read output")
		}
	}
	return Sum{Path: path, Hex: hex.EncodeToString(h.Sum(nil)), Size: size}, nil
}
