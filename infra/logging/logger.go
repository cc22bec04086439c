package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Service string
	Env     string
	// LogFile duplicates output to a file when set.
	LogFile string
	// Sinks receive the same JSON lines as stdout (e.g. a Loki writer).
	Sinks []io.Writer
}

// NewLogger creates a production zap logger that emits JSON to stdout, tagged
// with the service and environment.
func NewLogger(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}

	if opts.LogFile != "" {
		if err := ensureLogFile(opts.LogFile); err != nil {
			return nil, fmt.Errorf("prepare log file: %w", err)
		}
		cfg.OutputPaths = append(cfg.OutputPaths, opts.LogFile)
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, opts.LogFile)
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	cfg.InitialFields = map[string]any{
		"service": opts.Service,
		"env":     opts.Env,
	}

	var buildOpts []zap.Option
	if len(opts.Sinks) > 0 {
		encoder := zapcore.NewJSONEncoder(cfg.EncoderConfig)
		syncers := make([]zapcore.WriteSyncer, 0, len(opts.Sinks))
		for _, s := range opts.Sinks {
			syncers = append(syncers, zapcore.AddSync(s))
		}
		sinkCore := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), cfg.Level).With([]zap.Field{
			zap.String("service", opts.Service),
			zap.String("env", opts.Env),
		})
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, sinkCore)
		}))
	}

	return cfg.Build(buildOpts...)
}

// MustNewLogger is like NewLogger but panics if the logger cannot be created.
func MustNewLogger(opts Options) *zap.Logger {
	logger, err := NewLogger(opts)
	if err != nil {
		panic(err)
	}
	return logger
}

func ensureLogFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		f, createErr := os.OpenFile(path, os.O_CREATE, 0o644)
		if createErr != nil {
			return createErr
		}
		_ = f.Close()
	}
	return nil
}
