// Package check inspects a rendered folio document for broken images and
// math that fell back to raw source.
package check

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/go-drift/folio/pkg/theme"
)

// Report summarizes a rendered document.
type Report struct {
	Title     string
	Sections  int
	Theorems  int
	Notes     int
	Equations int
	// Images holds the src of every rendered image, in document order.
	Images []string
	// MissingImages holds the references the renderer could not resolve.
	MissingImages []string
	// MissingFiles holds image sources absent from the checked directory.
	MissingFiles []string
	// MathFallbacks holds the TeX source of equations shown as raw code.
	MathFallbacks []string
	// ErrorWidgets counts subtrees replaced after a build failure.
	ErrorWidgets int
}

// Inspect parses an HTML document whose classes use prefix (usually
// theme.DefaultClassPrefix).
func Inspect(r io.Reader, prefix string) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	class := func(role theme.StyleRole) string {
		return "." + prefix + role.String()
	}

	rep := &Report{
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		Sections:     doc.Find("section" + class(theme.RoleSection)).Length(),
		Theorems:     doc.Find(class(theme.RoleTheorem)).Length(),
		Notes:        doc.Find(class(theme.RoleNote)).Length(),
		ErrorWidgets: doc.Find(class(theme.RoleErrorWidget)).Length(),
	}
	rep.Equations = doc.Find(class(theme.RoleMathInline)).Length() +
		doc.Find(class(theme.RoleMathBlock)).Length()

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			rep.Images = append(rep.Images, src)
		}
	})
	doc.Find("[data-missing]").Each(func(_ int, s *goquery.Selection) {
		rep.MissingImages = append(rep.MissingImages, s.AttrOr("data-missing", ""))
	})
	doc.Find(class(theme.RoleMathError)).Each(func(_ int, s *goquery.Selection) {
		tex := s.AttrOr("data-tex", "")
		if tex == "" {
			tex = s.Find("[data-tex]").First().AttrOr("data-tex", s.Text())
		}
		rep.MathFallbacks = append(rep.MathFallbacks, tex)
	})
	return rep, nil
}

// CheckFiles records every relative image source missing from fsys.
// Absolute and remote URLs are skipped.
func (r *Report) CheckFiles(fsys fs.FS) {
	for _, src := range r.Images {
		u, err := url.Parse(src)
		if err != nil || u.IsAbs() || u.Host != "" || strings.HasPrefix(u.Path, "/") || u.Path == "" {
			continue
		}
		name := path.Clean(u.Path)
		if _, err := fs.Stat(fsys, name); err != nil {
			r.MissingFiles = append(r.MissingFiles, name)
		}
	}
}

// Problems lists one line per defect found. An empty result means the
// document is clean.
func (r *Report) Problems() []string {
	var out []string
	for _, ref := range r.MissingImages {
		out = append(out, "missing image: "+ref)
	}
	for _, name := range r.MissingFiles {
		out = append(out, "missing file: "+name)
	}
	for _, tex := range r.MathFallbacks {
		out = append(out, "math fallback: "+tex)
	}
	if r.ErrorWidgets > 0 {
		out = append(out, fmt.Sprintf("%d subtree(s) failed to build", r.ErrorWidgets))
	}
	if r.Sections == 0 {
		out = append(out, "no sections found")
	}
	return out
}

// Summary is a one-line description of the document structure.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d sections, %d theorems, %d notes, %d equations, %d images",
		r.Sections, r.Theorems, r.Notes, r.Equations, len(r.Images))
}
