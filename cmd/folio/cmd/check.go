package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/folio/cmd/folio/internal/check"
	"github.com/go-drift/folio/cmd/folio/internal/fetch"
	"github.com/go-drift/folio/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Check a rendered document for problems",
		Long: `Inspect a built index.html, or a page fetched from a running server,
and report broken images, math shown as raw source and the document
structure.

Flags:
  --dir DIR      Site directory to check (default: public)
  --url URL      Fetch and check the page at URL instead

Exits with an error when problems are found.`,
		Usage: "folio check [--dir DIR | --url URL]",
		Run:   runCheck,
	})
}

type checkFlags struct {
	dir string
	url string
}

func parseCheckArgs(args []string) (checkFlags, error) {
	flags := checkFlags{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--dir", "--url":
			if i+1 >= len(args) {
				return flags, fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--dir" {
				flags.dir = args[i+1]
			} else {
				flags.url = args[i+1]
			}
			i++
		default:
			return flags, fmt.Errorf("unknown flag %q\n\nUsage: folio check [--dir DIR | --url URL]", arg)
		}
	}
	if flags.dir != "" && flags.url != "" {
		return flags, fmt.Errorf("--dir and --url are mutually exclusive")
	}
	if flags.dir == "" && flags.url == "" {
		flags.dir = "public"
	}
	return flags, nil
}

func runCheck(args []string) error {
	flags, err := parseCheckArgs(args)
	if err != nil {
		return err
	}
	res, err := loadProject()
	if err != nil {
		return err
	}
	prefix := res.Theme().ClassPrefix
	if prefix == "" {
		prefix = theme.DefaultClassPrefix
	}

	var rep *check.Report
	if flags.url != "" {
		page, err := fetch.DefaultDownloader().Fetch(context.Background(), flags.url)
		if err != nil {
			return err
		}
		if rep, err = check.Inspect(bytes.NewReader(page), prefix); err != nil {
			return err
		}
	} else {
		dir := flags.dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(res.Root, dir)
		}
		page, err := os.ReadFile(filepath.Join(dir, "index.html"))
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		if rep, err = check.Inspect(bytes.NewReader(page), prefix); err != nil {
			return err
		}
		rep.CheckFiles(os.DirFS(dir))
	}

	fmt.Printf("%s: %s\n", rep.Title, rep.Summary())
	problems := rep.Problems()
	for _, p := range problems {
		fmt.Printf("  %s\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	fmt.Println("No problems found.")
	return nil
}
