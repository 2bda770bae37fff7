package cmd

import (
	"github.com/go-drift/folio/cmd/folio/internal/config"
	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/ito"
	"github.com/go-drift/folio/pkg/render"
)

// stylesheetName is the file the built and served document links.
const stylesheetName = "style.css"

// siteOptions returns the render options for the article.
func siteOptions(res *config.Resolved, resolver assets.Resolver) render.Options {
	return render.Options{
		Theme:          res.Theme(),
		Math:           res.KaTeX,
		Assets:         resolver,
		Title:          res.Title,
		Lang:           res.Lang,
		Description:    ito.Subtitle,
		StylesheetHref: stylesheetName,
	}
}

// renderSite renders the article with res. Build failures replaced by
// fallbacks are logged and do not fail the render.
func renderSite(res *config.Resolved, resolver assets.Resolver) ([]byte, render.Result, error) {
	page, result, err := render.Bytes(ito.Article{}, siteOptions(res, resolver))
	if err != nil {
		return nil, result, err
	}
	for _, buildErr := range result.BuildErrors {
		logger.WithField("widget", buildErr.Widget).Warn("subtree replaced by fallback")
	}
	return page, result, nil
}
