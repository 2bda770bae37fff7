package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
	"github.com/go-drift/folio/pkg/markup"
	"github.com/go-drift/folio/pkg/theme"
)

func init() {
	// Register the default error widget builder
	core.SetErrorWidgetBuilder(func(err *errors.BuildError) core.Widget {
		return ErrorWidget{Error: err}
	})
}

// ErrorWidget displays error information when a widget build fails.
// It shows the error message in debug mode, or a neutral notice otherwise.
type ErrorWidget struct {
	// Error is the build error that occurred.
	Error *errors.BuildError
	// Verbose overrides DebugMode for this widget instance.
	// If not explicitly set, defaults to core.DebugMode.
	Verbose *bool
}

func (e ErrorWidget) CreateElement() core.Element {
	return core.NewStatelessElement()
}

func (e ErrorWidget) Key() any {
	return nil
}

func (e ErrorWidget) Build(ctx core.BuildContext) core.Widget {
	verbose := core.DebugMode()
	if e.Verbose != nil {
		verbose = *e.Verbose
	}

	children := []core.Widget{Strong{Content: "Something went wrong"}}
	if verbose {
		detail := "Unknown error"
		if e.Error != nil {
			detail = e.Error.Error()
		}
		children = append(children, Text{Content: "\n" + detail})
	}
	return Box{
		Tag:      "div",
		Role:     theme.RoleErrorWidget,
		Attrs:    []markup.Attr{markup.A("role", "alert")},
		Children: children,
	}
}
