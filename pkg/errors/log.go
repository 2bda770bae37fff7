package errors

import (
	"github.com/sirupsen/logrus"
)

// LogHandler is an ErrorHandler that writes errors to a logrus logger.
type LogHandler struct {
	// Logger receives the entries. Nil means logrus.StandardLogger().
	Logger logrus.FieldLogger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger.
func NewLogHandler(logger logrus.FieldLogger) *LogHandler {
	return &LogHandler{Logger: logger}
}

func (h *LogHandler) logger() logrus.FieldLogger {
	if h.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.Logger
}

// HandleError logs a FolioError. Asset and math errors degrade gracefully
// and are logged as warnings.
func (h *LogHandler) HandleError(err *FolioError) {
	if err == nil {
		return
	}
	entry := h.logger().WithFields(logrus.Fields{
		"op":   err.Op,
		"kind": err.Kind.String(),
	})
	if err.Ref != "" {
		entry = entry.WithField("ref", err.Ref)
	}
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	switch err.Kind {
	case KindAsset, KindMath:
		entry.Warn(err.Err)
	default:
		entry.Error(err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	entry := h.logger().WithField("kind", KindPanic.String())
	if err.Op != "" {
		entry = entry.WithField("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	entry.Errorf("recovered panic: %v", err.Value)
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	entry := h.logger().WithFields(logrus.Fields{
		"kind":    KindBuild.String(),
		"widget":  err.Widget,
		"element": err.Element,
	})
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	entry.Error(err.Error())
}
