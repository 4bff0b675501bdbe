package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelFlag = "log-level"
	workDirFlag  = "C"
)

type loggerKey struct{}

type ctxLogger struct {
	log  *zap.Logger
	atom zap.AtomicLevel
}

// newLogger builds a console logger on stderr. The returned level can be
// changed after construction, which lets a repository's config adjust it
// once the repository has been found.
func newLogger(level string) (*zap.Logger, zap.AtomicLevel, error) {
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, atom, fmt.Errorf("invalid --%s %q: %w", logLevelFlag, level, err)
	}

	c := zap.NewProductionConfig()
	c.Level = atom
	c.Encoding = "console"
	c.Sampling = nil
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.OutputPaths = []string{"stderr"}
	c.ErrorOutputPaths = []string{"stderr"}

	log, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, atom, fmt.Errorf("build logger: %w", err)
	}
	return log, atom, nil
}

func withLogger(ctx context.Context, log *zap.Logger, atom zap.AtomicLevel) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, ctxLogger{log: log, atom: atom})
}

// loggerFrom returns the command's logger, or a no-op logger when the
// command runs outside the root (as in tests).
func loggerFrom(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(ctxLogger); ok {
			return l.log
		}
	}
	return zap.NewNop()
}

// applyConfigLevel sets the log level from the repository config unless the
// user chose one on the command line.
func applyConfigLevel(ctx context.Context, level string, explicit bool) error {
	if level == "" || explicit || ctx == nil {
		return nil
	}
	l, ok := ctx.Value(loggerKey{}).(ctxLogger)
	if !ok {
		return nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("config log.level %q: %w", level, err)
	}
	l.atom.SetLevel(lvl)
	return nil
}
