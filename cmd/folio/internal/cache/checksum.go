package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// VerifyChecksum compares the SHA-256 of the file at filePath with the
// expected hex digest. Case is ignored.
func VerifyChecksum(filePath, expectedSHA256 string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to read file for checksum: %w", err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(actual, expectedSHA256) {
		return &ChecksumError{File: filePath, Expected: expectedSHA256, Actual: actual}
	}
	return nil
}

// ChecksumError reports a cached file whose content no longer matches its
// recorded digest.
type ChecksumError struct {
	File     string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s\nExpected: %s\nActual:   %s", e.File, e.Expected, e.Actual)
}
