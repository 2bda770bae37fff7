package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-drift/folio/cmd/folio/internal/config"
	"github.com/go-drift/folio/pkg/theme"
)

func TestValidateDirectory(t *testing.T) {
	type tc struct {
		name    string
		dir     string
		wantErr bool
	}
	tests := []tc{
		{"simple name", "notes", false},
		{"relative path", "projects/notes", false},
		{"dot-slash relative", "./projects/notes", false},
		{"deep relative", "a/b/c/notes", false},

		// Dangerous paths (cross-platform)
		{"empty", "", true},
		{"root slash", "/", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
	}

	if runtime.GOOS == "windows" {
		tests = append(tests,
			tc{"drive root", `C:\`, true},
			tc{"bare backslash root", `\`, true},
			tc{"root-level C:\\Users", `C:\Users`, true},
			tc{"root-level C:\\Windows", `C:\Windows`, true},
			tc{"nested windows path", `C:\Users\me\projects\notes`, false},
		)
	} else {
		tests = append(tests,
			tc{"absolute nested", "/home/user/projects/notes", false},
			tc{"root-level /etc", "/etc", true},
			tc{"root-level /home", "/home", true},
			tc{"root-level /tmp", "/tmp", true},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDirectory(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDirectory(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "notes", false},
		{"with hyphen", "my-notes", false},
		{"with underscore", "my_notes", false},
		{"with numbers", "notes2", false},
		{"uppercase", "MyNotes", false},

		{"empty", "", true},
		{"starts with dot", ".hidden", true},
		{"starts with hyphen", "-bad", true},
		{"starts with number", "1notes", true},
		{"has spaces", "my notes", true},
		{"has slash", "my/notes", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProjectName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeRemoveAll(t *testing.T) {
	// safeRemoveAll should remove a normal directory
	t.Run("removes normal directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "notes")
		if err := os.Mkdir(target, 0o755); err != nil {
			t.Fatal(err)
		}
		safeRemoveAll(target)
		if _, err := os.Stat(target); !os.IsNotExist(err) {
			t.Errorf("expected directory to be removed, but it still exists")
		}
	})

	// safeRemoveAll should refuse to remove dangerous paths.
	// We can't directly observe a no-op on paths that don't exist,
	// but we verify it doesn't panic.
	t.Run("no-ops on dangerous paths", func(t *testing.T) {
		dangerous := []string{"", "/", ".", ".."}
		if runtime.GOOS == "windows" {
			dangerous = append(dangerous, `C:\`, `\`)
		}
		for _, d := range dangerous {
			safeRemoveAll(d) // must not panic
		}
	})
}

func TestScaffoldProject_WritesResolvableConfig(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "projects", "notes")

	if err := scaffoldProject(dir, defaultInitData()); err != nil {
		t.Fatalf("scaffoldProject(%q) unexpected error: %v", dir, err)
	}

	res, err := config.Resolve(dir)
	if err != nil {
		t.Fatalf("generated folio.yaml does not resolve: %v", err)
	}
	if res.Title != config.DefaultTitle || res.SiteName != "notes" {
		t.Errorf("resolved title %q site %q", res.Title, res.SiteName)
	}
	if res.Figure.Seed != 42 {
		t.Errorf("seed = %d", res.Figure.Seed)
	}

	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); err != nil {
		t.Errorf(".gitignore should exist: %v", err)
	}
}

func TestScaffoldProject_TitleAndTheme(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "notes")

	data := defaultInitData()
	data.Title = `Notes: "quoted" & more`
	data.Brightness = "dark"
	if err := scaffoldProject(dir, data); err != nil {
		t.Fatalf("scaffoldProject unexpected error: %v", err)
	}

	res, err := config.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Title != data.Title {
		t.Errorf("title = %q, want %q", res.Title, data.Title)
	}
	if res.Brightness != theme.BrightnessDark {
		t.Errorf("brightness = %v", res.Brightness)
	}
}

func TestScaffoldProject_RejectsExistingDirectory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "notes")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	err := scaffoldProject(dir, defaultInitData())
	if err == nil {
		t.Fatal("expected error for existing directory, got nil")
	}
}

func TestRunInit_RejectsDangerousDirectory(t *testing.T) {
	// Note: "" is not included here because filepath.Clean converts it to ".",
	// making it redundant with the "." case. The "" case is tested directly
	// in TestValidateDirectory for direct callers.
	for _, dir := range []string{"/", ".", ".."} {
		err := runInit([]string{dir})
		if err == nil {
			t.Errorf("expected error for dangerous directory %q, got nil", dir)
		}
	}
}

func TestRunInit_RejectsTilde(t *testing.T) {
	for _, dir := range []string{"~/notes", "~/projects/notes"} {
		err := runInit([]string{dir})
		if err == nil {
			t.Errorf("expected error for tilde path %q, got nil", dir)
		}
		if err != nil && !strings.Contains(err.Error(), "tilde") {
			t.Errorf("expected tilde-specific error for %q, got: %v", dir, err)
		}
	}
}

func TestRunInit_RejectsBadFlags(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	for _, args := range [][]string{
		{dir, "--title"},
		{dir, "--title", " "},
		{dir, "--light"},
	} {
		if err := runInit(args); err == nil {
			t.Errorf("runInit(%q) expected error", args)
		}
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("failed init should not create the directory")
	}
}

func TestRunInit_CreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	if err := runInit([]string{dir, "--dark", "--title", "Dark notes"}); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "brightness: dark") || !strings.Contains(string(data), `"Dark notes"`) {
		t.Errorf("unexpected folio.yaml:\n%s", data)
	}
}

func TestRunInit_NoArgs(t *testing.T) {
	err := runInit(nil)
	if err == nil {
		t.Fatal("expected error for no args, got nil")
	}
}

