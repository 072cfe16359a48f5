package observability

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. APP_ENV dev/development writes to a
// console; anything else writes JSON lines. Unknown levels mean info.
func NewLogger(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.DurationFieldUnit = time.Millisecond

	switch strings.ToLower(env) {
	case "dev", "development":
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
			Level(lvl).With().Timestamp().Logger()
	default:
		return zerolog.New(os.Stdout).Level(lvl).With().
			Timestamp().Str("svc", "hotelos-gateway").Str("env", env).Logger()
	}
}
