// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compress opens input streams that may be zstd or gzip
// compressed, detecting the encoding from the stream's first bytes.
package compress

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Encodings reported by Detect.
const (
	Identity = ""
	Zstd     = "zstd"
	Gzip     = "gzip"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Detect returns the encoding whose magic number header starts with.
func Detect(header []byte) string {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	}
	return Identity
}

// NewReader returns a reader of the decompressed contents of r along with
// the detected encoding. Uncompressed input is passed through. Closing the
// reader does not close r.
func NewReader(r io.Reader) (io.ReadCloser, string, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("failed to read header: %w", err)
	}

	enc := Detect(header)
	switch enc {
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return zr.IOReadCloser(), enc, nil
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip decoder: %w", err)
		}
		return gr, enc, nil
	}
	return io.NopCloser(br), enc, nil
}

// Open opens path, or standard input for "-", and decompresses it. Closing
// the returned reader closes the file.
func Open(path string) (io.ReadCloser, string, error) {
	if path == "-" {
		rc, enc, err := NewReader(os.Stdin)
		return rc, enc, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	rc, enc, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, "", err
	}
	return &closeWrapper{ReadCloser: rc, onClose: f.Close}, enc, nil
}

// closeWrapper wraps an io.ReadCloser and calls an additional function on Close.
type closeWrapper struct {
	io.ReadCloser
	onClose func() error
}

func (cw *closeWrapper) Close() error {
	err1 := cw.ReadCloser.Close()
	err2 := cw.onClose()
	return errors.Join(err1, err2)
}
