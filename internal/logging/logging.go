// internal/logging/logging.go

// Package logging 建立服務使用的 zerolog.Logger。
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New 依等級與格式建立 Logger。format 為 "console"（人類可讀）或 "json"。
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}
	out := w
	switch format {
	case "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
