// Package errors provides structured error handling for the folio renderer.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindBuild indicates a build-time widget error.
	KindBuild
	// KindRender indicates a failure while serializing the host tree.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindAsset indicates a static asset that could not be resolved.
	KindAsset
	// KindMath indicates math markup the math collaborator rejected.
	KindMath
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindFigure indicates a failure while generating a figure.
	KindFigure
)

func (k ErrorKind) String() string {
	switch k {
	case KindBuild:
		return "build"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindAsset:
		return "asset"
	case KindMath:
		return "math"
	case KindConfig:
		return "config"
	case KindFigure:
		return "figure"
	default:
		return "unknown"
	}
}

// FolioError represents a structured error reported by the renderer.
type FolioError struct {
	// Op is the operation that failed (e.g., "widgets.Image").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Ref is the asset reference or markup the error is about, if any.
	Ref string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FolioError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s [%s] ref=%s: %v", e.Op, e.Kind, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FolioError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "server.handleArticle").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, NodeElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the renderer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FolioError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
