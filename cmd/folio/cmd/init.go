package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/go-drift/folio/cmd/folio/internal/config"
	"github.com/go-drift/folio/pkg/mathtex"
	"github.com/go-drift/folio/pkg/stochastic"
	"github.com/go-drift/folio/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Create a new folio project",
		Long: `Create a new folio project in a new directory.

This command creates:
  - A new directory at the specified path
  - folio.yaml with every setting at its default
  - .gitignore excluding the build output

The site name is derived from the directory basename.

Flags:
  --title TITLE   Document title (default: the article title)
  --dark          Use the dark theme

Examples:
  folio init notes
  folio init ./projects/notes --title "Stochastic notes"
  folio init notes --dark`,
		Usage: "folio init <directory> [--title TITLE] [--dark]",
		Run:   runInit,
	})
}

// initTemplateData contains the data for folio.yaml substitution.
type initTemplateData struct {
	Title        string
	Brightness   string
	Breakpoint   int
	KaTeXVersion string
	CDN          string
	Seed         uint64
	Paths        int
	Steps        int
	Addr         string
}

var configTemplate = template.Must(template.New(config.FileName).Parse(`# folio project configuration.
site:
  title: {{printf "%q" .Title}}
  lang: en
  # base_url: https://example.com/notes

theme:
  brightness: {{.Brightness}}   # light or dark
  breakpoint: {{.Breakpoint}}        # px at which columns appear

math:
  katex_version: {{.KaTeXVersion}}
  cdn: {{.CDN}}

figure:
  seed: {{.Seed}}
  paths: {{.Paths}}
  steps: {{.Steps}}

server:
  addr: {{printf "%q" .Addr}}
  cache_ttl: 10m
  # redis_addr: localhost:6379
  # Honour X-Forwarded-For only from these proxies.
  # trusted_proxies: ["127.0.0.1", "10.0.0.0/8"]

log:
  level: info
`))

func defaultInitData() initTemplateData {
	return initTemplateData{
		Title:        config.DefaultTitle,
		Brightness:   theme.BrightnessLight.String(),
		Breakpoint:   theme.DefaultBreakpoint,
		KaTeXVersion: mathtex.DefaultKaTeXVersion,
		CDN:          mathtex.DefaultKaTeXCDN,
		Seed:         stochastic.DefaultSeed,
		Paths:        stochastic.DefaultPaths,
		Steps:        stochastic.DefaultPoints,
		Addr:         config.DefaultAddr,
	}
}

// runInit creates a new folio project. The first argument is the directory
// path to create (which may be relative or absolute).
func runInit(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("directory is required\n\nUsage: folio init <directory> [--title TITLE] [--dark]")
	}

	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by folio; use an absolute path or $HOME instead")
	}

	data := defaultInitData()
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--dark":
			data.Brightness = theme.BrightnessDark.String()
		case "--title":
			if i+1 >= len(args) || strings.TrimSpace(args[i+1]) == "" {
				return fmt.Errorf("--title requires a value")
			}
			data.Title = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}

	dir := filepath.Clean(raw)

	// Validate directory path before deriving anything from it
	if err := validateDirectory(dir); err != nil {
		return err
	}

	siteName := filepath.Base(dir)
	if err := validateProjectName(siteName); err != nil {
		return fmt.Errorf("invalid project name %q (derived from directory basename): %w", siteName, err)
	}

	if err := scaffoldProject(dir, data); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Project created successfully!\n\n")
	fmt.Printf("Next steps:\n")
	fmt.Printf("  cd %s\n", dir)
	fmt.Printf("  folio build    # Write the site to ./public\n")
	fmt.Printf("  folio serve    # Serve it locally\n")

	return nil
}

// scaffoldProject creates the project directory and writes the project
// files. The written configuration must resolve cleanly.
func scaffoldProject(dir string, data initTemplateData) error {
	// Check if directory already exists
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	fmt.Printf("Creating new folio project: %s\n", filepath.Base(dir))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var buf strings.Builder
	if err := configTemplate.Execute(&buf, data); err != nil {
		safeRemoveAll(dir)
		return fmt.Errorf("failed to execute template %s: %w", config.FileName, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{config.FileName, buf.String()},
		{".gitignore", "/public/\n"},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0o644); err != nil {
			safeRemoveAll(dir)
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		fmt.Printf("  Created %s\n", f.name)
	}

	if _, err := config.Resolve(dir); err != nil {
		safeRemoveAll(dir)
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}
	return nil
}

// validateDirectory rejects directory paths that would be dangerous to create or
// clean up. This includes filesystem roots (/, C:\), the current/parent directory,
// and root-level absolute paths (e.g. /etc, C:\Users).
func validateDirectory(dir string) error {
	// The "" case is not reachable via runInit (filepath.Clean converts it to
	// "."), but is included for direct callers of validateDirectory.
	// "/" is kept explicitly because isVolumeRoot won't match "/" on Windows
	// (where the separator is \), yet "/" still refers to the current drive root.
	switch dir {
	case "", "/", ".", "..":
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	// Reject filesystem roots (\, C:\, etc.)
	if isVolumeRoot(dir) {
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	// Reject root-level absolute paths (e.g. /etc, /home, C:\Users)
	if filepath.IsAbs(dir) && isVolumeRoot(filepath.Dir(dir)) {
		return fmt.Errorf("refusing to create project at root-level path %q", dir)
	}
	return nil
}

// isVolumeRoot reports whether dir is a filesystem root. On Unix this is "/",
// on Windows this covers drive roots like "C:\" and the bare root "\".
func isVolumeRoot(dir string) bool {
	return dir == filepath.VolumeName(dir)+string(filepath.Separator)
}

// safeRemoveAll removes a directory only if the path passes validateDirectory.
// It silently no-ops for dangerous paths rather than returning an error, since
// it is called on cleanup paths where the original error should not be masked.
func safeRemoveAll(dir string) {
	if validateDirectory(dir) != nil {
		return
	}
	os.RemoveAll(dir)
}

var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// validateProjectName checks that a site name (derived from the directory
// basename) is a valid identifier: starts with a letter, contains only letters,
// digits, underscores, and hyphens.
func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	// These prefix checks are redundant with the regex below, but produce
	// more actionable error messages for common mistakes (hidden dirs, flags).
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with a dot")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("project name cannot start with a hyphen")
	}
	if !validProjectName.MatchString(name) {
		return fmt.Errorf("project name must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}
