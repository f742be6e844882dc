// Package logging provides logger construction helpers.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps stderr quiet unless something goes wrong.
const DefaultLevel = "warn"

// New creates a timestamped logger writing to w at the provided level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name such as "debug" or "warn" to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}
