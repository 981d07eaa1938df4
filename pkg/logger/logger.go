package logger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init cấu hình global zerolog logger.
// development → console writer, còn lại → JSON
func Init(env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// AsynqLogger adapts zerolog to asynq.Logger so broker internals share the
// application log stream.
type AsynqLogger struct {
	component string
}

func NewAsynqLogger(component string) *AsynqLogger {
	return &AsynqLogger{component: component}
}

func (l *AsynqLogger) Debug(args ...interface{}) {
	log.Debug().Str("component", l.component).Msg(fmt.Sprint(args...))
}

func (l *AsynqLogger) Info(args ...interface{}) {
	log.Info().Str("component", l.component).Msg(fmt.Sprint(args...))
}

func (l *AsynqLogger) Warn(args ...interface{}) {
	log.Warn().Str("component", l.component).Msg(fmt.Sprint(args...))
}

func (l *AsynqLogger) Error(args ...interface{}) {
	log.Error().Str("component", l.component).Msg(fmt.Sprint(args...))
}

func (l *AsynqLogger) Fatal(args ...interface{}) {
	log.Fatal().Str("component", l.component).Msg(fmt.Sprint(args...))
}
