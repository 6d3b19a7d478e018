package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger and installs it as the zap global.
func New(debug bool) (*zap.Logger, error) {

	var l *zap.Logger
	var err error

	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		l, err = z.Build()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	zap.ReplaceGlobals(l)

	return l, nil
}
