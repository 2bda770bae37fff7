package widgets

import (
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
)

// ErrorBoundary catches build errors from descendant widgets and displays
// a fallback widget instead of the failed subtree. Siblings of the boundary
// render unaffected.
//
// Example:
//
//	widgets.ErrorBoundary{
//	    OnError: func(err *errors.BuildError) {
//	        log.WithField("widget", err.Widget).Warn("figure failed")
//	    },
//	    FallbackBuilder: func(err *errors.BuildError) core.Widget {
//	        return widgets.T("Figure unavailable")
//	    },
//	    Child: ito.InteractiveDemo{},
//	}
type ErrorBoundary struct {
	core.BoundaryBase
	// Child is the widget tree to wrap with error handling.
	Child core.Widget
	// FallbackBuilder creates a widget to show when an error is caught.
	// If nil, uses the default ErrorWidget.
	FallbackBuilder core.ErrorWidgetBuilder
	// OnError is called when an error is caught. Use for logging.
	OnError func(*errors.BuildError)
}

func (e ErrorBoundary) ChildWidget() core.Widget {
	return e.Child
}

func (e ErrorBoundary) Fallback(err *errors.BuildError) core.Widget {
	if e.FallbackBuilder != nil {
		return e.FallbackBuilder(err)
	}
	return ErrorWidget{Error: err}
}

func (e ErrorBoundary) ErrorCaptured(err *errors.BuildError) {
	if e.OnError != nil {
		e.OnError(err)
	}
}
