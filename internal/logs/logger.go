package logs

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// LogJSON emits one structured log line.
func LogJSON(level, message string, fields map[string]interface{}) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level)) // "DEBUG", "INFO", "WARN", "ERROR" & "FATAL"
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger.WithLevel(lvl).Fields(fields).Msg(message)
}
