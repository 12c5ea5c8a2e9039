// Package ingest reads capture files from disk. Plain .har and .json files are
// read as is; gzip, zstd and brotli compressed captures and zip archives are
// decompressed first.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// MaxDecodedSize caps how much data a single capture may decode to.
const MaxDecodedSize = 512 * 1024 * 1024 // 512MB

var (
	// ErrUnsupportedFile is returned for files that are not captures.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrTooLarge is returned when a capture decodes to more than MaxDecodedSize.
	ErrTooLarge = errors.New("capture exceeds maximum size")
)

type compression int

const (
	none compression = iota
	gzipped
	zstandard
	brotlied
	zipped
)

var captureExtensions = map[string]struct{}{
	".har":  {},
	".json": {},
}

var compressionExtensions = map[string]compression{
	".gz":   gzipped,
	".gzip": gzipped,
	".zst":  zstandard,
	".zstd": zstandard,
	".br":   brotlied,
}

// detect returns the compression of name and whether the file is supported.
func detect(name string) (compression, bool) {
	lower := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(lower)

	if ext == ".zip" {
		return zipped, true
	}
	if _, ok := captureExtensions[ext]; ok {
		return none, true
	}
	if c, ok := compressionExtensions[ext]; ok {
		inner := filepath.Ext(strings.TrimSuffix(lower, ext))
		_, ok := captureExtensions[inner]
		return c, ok
	}
	return none, false
}

// IsFileSupported reports whether name looks like a capture netlogs can open.
func IsFileSupported(name string) bool {
	_, ok := detect(name)
	return ok
}

// ReadFile reads and decodes the capture at path.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if !IsFileSupported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := Decode(path, file)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode returns the capture bytes of r, decompressing according to name.
func Decode(name string, r io.Reader) ([]byte, error) {
	c, ok := detect(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(name))
	}

	switch c {
	case gzipped:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gz.Close()
		return readLimited(gz)

	case zstandard:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		return readLimited(zr)

	case brotlied:
		return readLimited(brotli.NewReader(r))

	case zipped:
		archive, err := readLimited(r)
		if err != nil {
			return nil, err
		}
		return fromZip(archive)
	}
	return readLimited(r)
}

// fromZip returns the first capture inside a zip archive.
func fromZip(archive []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("reading zip archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if _, ok := captureExtensions[strings.ToLower(filepath.Ext(f.Name))]; !ok {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in zip archive: %w", f.Name, err)
		}
		data, err := readLimited(rc)
		rc.Close()
		return data, err
	}
	return nil, fmt.Errorf("%w: zip archive has no .har or .json file", ErrUnsupportedFile)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDecodedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxDecodedSize)
	}
	return data, nil
}
