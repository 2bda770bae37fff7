package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/folio/pkg/figure"
	"github.com/go-drift/folio/pkg/ito"
)

// FigureKey names the cache directory holding the figure rendered with opts.
func FigureKey(opts figure.Options) string {
	return fmt.Sprintf("s%d-p%d-n%d-%dx%d", opts.Seed, opts.Paths, opts.Points, opts.Width, opts.Height)
}

// EnsureFigure returns the path of the cached figure for opts, rendering it
// first when the cache has no verified copy. The file is named after
// ito.ImageRef so its directory can be served as the asset root. The bool
// reports whether the figure was rendered.
func EnsureFigure(opts figure.Options) (string, bool, error) {
	dir, err := FigureDir()
	if err != nil {
		return "", false, err
	}
	path := filepath.Join(dir, FigureKey(opts), string(ito.ImageRef))

	if sum, err := os.ReadFile(path + ".sha256"); err == nil {
		if VerifyChecksum(path, strings.TrimSpace(string(sum))) == nil {
			return path, false, nil
		}
	}

	var buf bytes.Buffer
	if err := figure.WritePNG(&buf, opts); err != nil {
		return "", false, err
	}
	if err := WriteFileAtomic(path, buf.Bytes()); err != nil {
		return "", false, err
	}
	digest := sha256.Sum256(buf.Bytes())
	if err := WriteFileAtomic(path+".sha256", []byte(hex.EncodeToString(digest[:])+"\n")); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// WriteFileAtomic writes data to destPath atomically.
// The file is first written to a temporary file in the same directory,
// then renamed to the final path on success.
func WriteFileAtomic(destPath string, data []byte) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Create temp file in same directory for atomic rename
	tmpFile, err := os.CreateTemp(dir, ".write-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
