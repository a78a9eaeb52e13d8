package log

import "context"

type Logger interface {
	Info(ctx context.Context, format string, args ...interface{})
	Alert(ctx context.Context, format string, args ...interface{})
	Error(ctx context.Context, format string, args ...interface{})
	Warn(ctx context.Context, format string, args ...interface{})
	Debug(ctx context.Context, format string, args ...interface{})
	Notice(ctx context.Context, format string, args ...interface{})
	Critical(ctx context.Context, format string, args ...interface{})
	Emergency(ctx context.Context, format string, args ...interface{})
}

func NewLogger(logger Logger) (Logger, error) {
	return logger, nil
}

// NopLogger bỏ qua mọi log, dùng trong test
type NopLogger struct{}

func NewNopLogger() (*NopLogger, error) {
	return &NopLogger{}, nil
}

func (l *NopLogger) Info(ctx context.Context, format string, args ...interface{})      {}
func (l *NopLogger) Alert(ctx context.Context, format string, args ...interface{})     {}
func (l *NopLogger) Error(ctx context.Context, format string, args ...interface{})     {}
func (l *NopLogger) Warn(ctx context.Context, format string, args ...interface{})      {}
func (l *NopLogger) Debug(ctx context.Context, format string, args ...interface{})     {}
func (l *NopLogger) Notice(ctx context.Context, format string, args ...interface{})    {}
func (l *NopLogger) Critical(ctx context.Context, format string, args ...interface{})  {}
func (l *NopLogger) Emergency(ctx context.Context, format string, args ...interface{}) {}
