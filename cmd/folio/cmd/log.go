package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/folio/cmd/folio/internal/config"
	"github.com/go-drift/folio/pkg/core"
	"github.com/go-drift/folio/pkg/errors"
)

// logLevelFlag holds --log-level; it overrides log.level from folio.yaml.
var logLevelFlag string

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// configureLogging applies the resolved level and routes framework error
// reports to the CLI logger. Detailed error widgets are only rendered at
// debug level.
func configureLogging(res *config.Resolved) error {
	level := res.LogLevel
	if logLevelFlag != "" {
		parsed, err := logrus.ParseLevel(logLevelFlag)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	handler := errors.NewLogHandler(logger)
	handler.Verbose = level >= logrus.DebugLevel
	errors.SetHandler(handler)
	core.SetDebugMode(handler.Verbose)
	return nil
}

// loadProject resolves the configuration of the project containing the
// working directory and configures logging from it.
func loadProject() (*config.Resolved, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	res, err := config.Resolve(root)
	if err != nil {
		return nil, &errors.FolioError{Op: "config.Resolve", Kind: errors.KindConfig, Err: err}
	}
	if err := configureLogging(res); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"root": root, "site": res.SiteName}).Debug("project resolved")
	return res, nil
}
