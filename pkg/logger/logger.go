package logx

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment selects the logging profile.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Init configures the global zerolog logger. Development uses a human
// readable console writer at debug level; production emits JSON at info.
func Init(env Environment) {
	if env == Production {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger()
	log.Logger = log.Logger.Level(zerolog.DebugLevel)
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
