package log

import (
	"context"
	"log"
)

type CslLogger struct{}

func NewCslLogger() (*CslLogger, error) {
	return &CslLogger{}, nil
}

func (l *CslLogger) printf(level, format string, args ...interface{}) {
	log.Printf("["+level+"] "+format, args...)
}

func (l *CslLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.printf("INFO", format, args...)
}

func (l *CslLogger) Alert(ctx context.Context, format string, args ...interface{}) {
	l.printf("ALERT", format, args...)
}

func (l *CslLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.printf("ERROR", format, args...)
}

func (l *CslLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.printf("WARN", format, args...)
}

func (l *CslLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.printf("DEBUG", format, args...)
}

func (l *CslLogger) Critical(ctx context.Context, format string, args ...interface{}) {
	l.printf("CRITICAL", format, args...)
}

func (l *CslLogger) Emergency(ctx context.Context, format string, args ...interface{}) {
	l.printf("EMERGENCY", format, args...)
}

func (l *CslLogger) Notice(ctx context.Context, format string, args ...interface{}) {
	l.printf("NOTICE", format, args...)
}
