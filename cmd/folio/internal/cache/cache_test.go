package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/folio/pkg/figure"
)

func useRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetCacheDir(dir)
	t.Cleanup(func() { SetCacheDir("") })
	return dir
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"v0.1.0", "v0.1.0"},
		{"0.1.0", "v0.1.0"},
		{"folio-v0.1.0", "v0.1.0"},
		{"v0.2.0-rc1", "v0.2.0-rc1"},
		{"0.1.0-dev", ""},
		{"v0.2.1-0.20260122153045-abc123", ""},
		{"v1.2", ""},
		{"dev", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeVersion(tt.in); got != tt.want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRootPriority(t *testing.T) {
	t.Setenv("FOLIO_CACHE_DIR", "/env/cache")
	SetCacheDir("")
	if root, _ := Root(); root != "/env/cache" {
		t.Errorf("Root() with env = %q", root)
	}
	SetCacheDir("/flag/cache")
	t.Cleanup(func() { SetCacheDir("") })
	if root, _ := Root(); root != "/flag/cache" {
		t.Errorf("Root() with flag = %q", root)
	}
}

func TestFigureDirUsesVersion(t *testing.T) {
	root := useRoot(t)
	SetGlobal("v1.4.0")
	t.Cleanup(func() { SetGlobal("") })
	dir, err := FigureDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(root, "figures", "v1.4.0") {
		t.Errorf("FigureDir() = %q", dir)
	}
	SetGlobal("0.0.0-dev")
	if Version() != "dev" {
		t.Errorf("Version() for dev build = %q", Version())
	}
}

func TestEnsureFigureCachesAndRepairs(t *testing.T) {
	useRoot(t)
	opts := figure.Options{Seed: 7, Paths: 2, Points: 200, Width: 600, Height: 600}

	path, rendered, err := EnsureFigure(opts)
	if err != nil {
		t.Fatalf("EnsureFigure: %v", err)
	}
	if !rendered {
		t.Error("first call should render")
	}
	if filepath.Base(path) != "ito-plot.png" || filepath.Base(filepath.Dir(path)) != FigureKey(opts) {
		t.Errorf("path = %q", path)
	}

	if _, rendered, err = EnsureFigure(opts); err != nil || rendered {
		t.Errorf("second call rendered=%v err=%v, want cached", rendered, err)
	}

	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, rendered, err = EnsureFigure(opts); err != nil || !rendered {
		t.Errorf("tampered file not re-rendered: rendered=%v err=%v", rendered, err)
	}
}

func TestVerifyChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	if err := WriteFileAtomic(path, []byte("abc")); err != nil {
		t.Fatal(err)
	}
	sum := sha256.Sum256([]byte("abc"))
	if err := VerifyChecksum(path, hex.EncodeToString(sum[:])); err != nil {
		t.Errorf("VerifyChecksum: %v", err)
	}
	err := VerifyChecksum(path, "00")
	var mismatch *ChecksumError
	if !errors.As(err, &mismatch) || mismatch.Expected != "00" {
		t.Errorf("expected ChecksumError, got %v", err)
	}
}

func TestCachedVersionsAndPrune(t *testing.T) {
	root := useRoot(t)
	for _, v := range []string{"v0.9.0", "v1.10.0", "v1.2.0", "dev"} {
		if err := os.MkdirAll(filepath.Join(root, "figures", v), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	versions, err := CachedVersions()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"v1.10.0", "v1.2.0", "v0.9.0", "dev"}
	if len(versions) != len(want) {
		t.Fatalf("CachedVersions() = %v", versions)
	}
	for i := range want {
		if versions[i] != want[i] {
			t.Fatalf("CachedVersions() = %v, want %v", versions, want)
		}
	}

	removed, err := Prune("v1.2.0")
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 3 {
		t.Errorf("removed = %v", removed)
	}
	if versions, _ := CachedVersions(); len(versions) != 1 || versions[0] != "v1.2.0" {
		t.Errorf("after prune = %v", versions)
	}
}
