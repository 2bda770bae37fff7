package widgets

import (
	"strconv"

	"github.com/go-drift/folio/pkg/assets"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/theme"
)

// MissingImageText is the label of the broken-image indicator.
const MissingImageText = "Image unavailable"

// Image displays a static image asset resolved through the AssetResolver in
// scope. When the asset cannot be resolved a broken-image indicator takes
// its place and an errors.KindAsset error is reported.
type Image struct {
	core.NodeBase
	// Ref names the asset.
	Ref assets.Ref
	// Alt is the alternative text, also shown by the broken-image indicator.
	Alt string
	// MaxHeight bounds the displayed height in pixels. Zero means unbounded.
	MaxHeight int
}

func (i Image) CreateNode(ctx core.BuildContext) *markup.Node {
	handle, err := AssetResolverOf(ctx).Resolve(i.Ref)
	if err != nil || handle.Missing {
		if err == nil {
			_, err = assets.MissingHandle(i.Ref)
		}
		errors.Report(&errors.FolioError{
			Op:   "widgets.Image",
			Kind: errors.KindAsset,
			Err:  err,
			Ref:  string(i.Ref),
		})
		return i.missing(ctx)
	}

	node := markup.Element("img",
		markup.A("src", handle.URL),
		markup.A("alt", i.Alt),
	)
	if handle.Width > 0 && handle.Height > 0 {
		node.SetAttr("width", strconv.Itoa(handle.Width))
		node.SetAttr("height", strconv.Itoa(handle.Height))
	}
	node.SetAttr("loading", "lazy")
	node.AddClass(theme.ClassOf(ctx, theme.RoleImage))
	if i.MaxHeight > 0 {
		node.SetAttr("style", "max-height: "+strconv.Itoa(i.MaxHeight)+"px")
	}
	// The placeholder is metadata only; the image background stays the
	// stylesheet's white.
	if handle.HasPlaceholder {
		node.SetAttr("data-placeholder", handle.Placeholder.CSS())
	}
	return node
}

func (i Image) missing(ctx core.BuildContext) *markup.Node {
	label := MissingImageText
	if i.Alt != "" {
		label += ": " + i.Alt
	}
	return markup.Element("div",
		markup.A("role", "img"),
		markup.A("aria-label", label),
		markup.A("data-missing", string(i.Ref)),
	).AddClass(theme.ClassOf(ctx, theme.RoleImageMissing)).
		Append(markup.Text(label))
}

// Figure centers an image with an optional caption below it.
type Figure struct {
	core.StatelessBase
	Image   Image
	Caption string
}

func (f Figure) Build(ctx core.BuildContext) core.Widget {
	box := Box{Tag: "figure", Role: theme.RoleFigure, Children: []core.Widget{f.Image}}
	if f.Caption == "" {
		return box
	}
	return box.WithChildren(Box{
		Tag:      "figcaption",
		Role:     theme.RoleCaption,
		Children: []core.Widget{Text{Content: f.Caption}},
	})
}
