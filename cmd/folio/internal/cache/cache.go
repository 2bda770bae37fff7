// Package cache provides centralized cache directory resolution for folio
// and the on-disk figure cache used by build and serve.
//
// Priority order: --cache-dir flag > FOLIO_CACHE_DIR env > ~/.folio default.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

var global struct {
	version    string
	rawVersion string
	cacheDir   string
}

// SetGlobal initializes the cache resolver with the CLI version.
// This should be called at startup from root.go.
func SetGlobal(version string) {
	global.rawVersion = strings.TrimSpace(version)
	global.version = NormalizeVersion(version)
}

// NormalizeVersion returns a clean release version, or empty if the version
// is not a valid release (e.g., dev builds, pseudo-versions from go install).
// Explicit prerelease tags (v0.2.0-rc1) are allowed.
//
// Examples:
//
//	"v0.1.0"                          -> "v0.1.0"
//	"0.1.0"                           -> "v0.1.0"
//	"folio-v0.1.0"                    -> "v0.1.0"
//	"v0.2.0-rc1"                      -> "v0.2.0-rc1" (prerelease allowed)
//	"0.1.0-dev"                       -> "" (dev build)
//	"v0.2.1-0.20260122153045-abc123"  -> "" (pseudo-version)
func NormalizeVersion(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "folio-")
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	// Must be a full X.Y.Z version; semver accepts v1 and v1.2 shorthands.
	if !semver.IsValid(version) || semver.Canonical(version) != version {
		return ""
	}

	pre := semver.Prerelease(version)
	if pre == "-dev" || strings.HasPrefix(pre, "-0.") {
		return ""
	}
	return version
}

// Version returns the normalized CLI version, or "dev" for non-release
// builds.
func Version() string {
	if global.version != "" {
		return global.version
	}
	return "dev"
}

// SetCacheDir sets an override for the cache directory.
// This is typically called when parsing the --cache-dir flag.
func SetCacheDir(dir string) {
	global.cacheDir = dir
}

// Root returns the cache root directory.
// Priority: --cache-dir flag > FOLIO_CACHE_DIR env > ~/.folio default.
func Root() (string, error) {
	if global.cacheDir != "" {
		return global.cacheDir, nil
	}

	if envDir := os.Getenv("FOLIO_CACHE_DIR"); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".folio"), nil
}

// FigureDir returns the figure cache directory for the running CLI version.
// Returns: <cache_root>/figures/<version>
func FigureDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "figures", Version()), nil
}

// CachedVersions lists the versions with a figure cache, newest first.
// Non-release directories sort last.
func CachedVersions() ([]string, error) {
	root, err := Root()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(root, "figures"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read figure cache: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	semver.Sort(versions)
	// semver.Sort is ascending with invalid versions first.
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
	return versions, nil
}

// Prune removes figure caches of every version except keep.
func Prune(keep string) ([]string, error) {
	versions, err := CachedVersions()
	if err != nil {
		return nil, err
	}
	root, err := Root()
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, v := range versions {
		if v == keep {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, "figures", v)); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", v, err)
		}
		removed = append(removed, v)
	}
	return removed, nil
}
