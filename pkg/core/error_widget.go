package core

import (
	"sync"

	"github.com/go-drift/folio/pkg/errors"
)

// ErrorWidgetBuilder creates a fallback widget when a widget build fails.
// The builder receives the build error and should return a widget to display
// in place of the failed widget.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorWidgetBuilder ErrorWidgetBuilder = DefaultErrorWidgetBuilder
	errorBuilderMu     sync.RWMutex
)

// SetErrorWidgetBuilder configures the global error widget builder and
// returns the previous one. Pass nil to restore the default builder.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) ErrorWidgetBuilder {
	errorBuilderMu.Lock()
	defer errorBuilderMu.Unlock()
	prev := errorWidgetBuilder
	if builder == nil {
		builder = DefaultErrorWidgetBuilder
	}
	errorWidgetBuilder = builder
	return prev
}

// GetErrorWidgetBuilder returns the current error widget builder.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorBuilderMu.RLock()
	defer errorBuilderMu.RUnlock()
	return errorWidgetBuilder
}

// DefaultErrorWidgetBuilder renders nothing in place of a failed widget.
// pkg/widgets installs a visible ErrorWidget when it is imported.
func DefaultErrorWidgetBuilder(err *errors.BuildError) Widget {
	return nil
}

// ErrorBoundaryCapture is implemented by error boundary elements to capture
// build errors from descendant widgets.
type ErrorBoundaryCapture interface {
	// CaptureError captures a build error from a descendant widget.
	// Returns true if the error was captured and handled.
	CaptureError(err *errors.BuildError) bool
}
