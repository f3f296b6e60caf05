package dlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to the Logger interface, following the
// teacher's internal/logger.ZerologAdapter shape.
type ZerologLogger struct {
	logger    zerolog.Logger
	component string
}

// NewZerolog builds a component-scoped logger writing to w at the given level.
func NewZerolog(w io.Writer, level zerolog.Level, component string) *ZerologLogger {
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{logger: logger, component: component}
}

// NewConsole builds a human-readable console logger, for detector users
// running interactively (e.g. while tuning Parameters against a clip).
func NewConsole(level zerolog.Level, component string) *ZerologLogger {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stdout}, level, component)
}

func (z *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	event := z.logger.Debug().Str("component", z.component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (z *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	event := z.logger.Info().Str("component", z.component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (z *ZerologLogger) Warning(msg string, fields map[string]interface{}) {
	event := z.logger.Warn().Str("component", z.component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (z *ZerologLogger) Error(msg string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Str("component", z.component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
