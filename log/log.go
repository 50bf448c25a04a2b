// Package log defines how panics recovered during execution are reported.
package log

import (
	"context"
	"log"
	"runtime"
)

// Logger receives panic values recovered from resolvers during execution.
type Logger interface {
	LogPanic(ctx context.Context, value interface{})
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(ctx context.Context, value interface{})

func (f LoggerFunc) LogPanic(ctx context.Context, value interface{}) {
	f(ctx, value)
}

// DefaultLogger writes the panic value and a stack trace to the standard
// library logger.
type DefaultLogger struct{}

func (DefaultLogger) LogPanic(ctx context.Context, value interface{}) {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]
	log.Printf("graphql: panic occurred: %v\n%s\ncontext: %v", value, buf, ctx)
}
