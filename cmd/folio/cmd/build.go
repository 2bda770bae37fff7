package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/folio/cmd/folio/internal/cache"
	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/ito"
)

func init() {
	RegisterCommand(&Command{
		Name:  "build",
		Short: "Render the article to a static site",
		Long: `Render the article into a static site directory.

The output directory receives:
  index.html            the rendered document
  style.css             the theme stylesheet
  assets/ito-plot.png   the generated figure

The figure is rendered once per seed, size and CLI version and kept in the
cache directory. Without a figure the document shows a placeholder.

Flags:
  --out DIR      Output directory, relative to the project root (default: public)
  --no-figure    Skip figure generation`,
		Usage: "folio build [--out DIR] [--no-figure]",
		Run:   runBuild,
	})
}

type buildOptions struct {
	out      string
	noFigure bool
}

func parseBuildArgs(args []string) (buildOptions, error) {
	opts := buildOptions{out: "public"}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--no-figure":
			opts.noFigure = true
		case arg == "--out" || arg == "-o":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a directory", arg)
			}
			opts.out = args[i+1]
			i++
		case strings.HasPrefix(arg, "--out="):
			opts.out = strings.TrimPrefix(arg, "--out=")
		default:
			return opts, fmt.Errorf("unknown flag %q\n\nUsage: folio build [--out DIR] [--no-figure]", arg)
		}
	}
	if strings.TrimSpace(opts.out) == "" {
		return opts, fmt.Errorf("--out cannot be empty")
	}
	return opts, nil
}

func runBuild(args []string) error {
	opts, err := parseBuildArgs(args)
	if err != nil {
		return err
	}
	res, err := loadProject()
	if err != nil {
		return err
	}

	out := opts.out
	if !filepath.IsAbs(out) {
		out = filepath.Join(res.Root, out)
	}
	out = filepath.Clean(out)
	if err := validateDirectory(out); err != nil {
		return err
	}
	assetDir := filepath.Join(out, "assets")
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", assetDir, err)
	}

	if !opts.noFigure {
		if err := copyFigure(res.Figure, filepath.Join(assetDir, string(ito.ImageRef))); err != nil {
			return err
		}
	}

	resolver := assets.NewFSResolver(os.DirFS(assetDir), "assets")
	resolver.Placeholders = true
	page, result, err := renderSite(res, resolver)
	if err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{"index.html", page},
		{stylesheetName, []byte(res.Theme().Stylesheet())},
	}
	for _, f := range files {
		if err := cache.WriteFileAtomic(filepath.Join(out, f.name), f.data); err != nil {
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"out":          out,
		"elements":     result.Elements,
		"build_errors": len(result.BuildErrors),
	}).Info("site written")
	return nil
}
