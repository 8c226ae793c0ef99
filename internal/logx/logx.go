package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog logger configured for console output on stderr.
// The level column comes first so error lines read "Error: ...".
func NewLogger() zerolog.Logger {
	return New(os.Stderr)
}

// New returns a console logger writing to w. It leaves zerolog's package
// globals alone so host applications keep their own caller format.
func New(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel:  formatLevel,
		FormatCaller: formatCaller,
	}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}

// formatLevel renders "error" as "Error:", "warn" as "Warn:" and so on.
func formatLevel(i any) string {
	lvl, ok := i.(string)
	if !ok || lvl == "" {
		return "?????:"
	}
	return strings.ToUpper(lvl[:1]) + lvl[1:] + ":"
}

// formatCaller keeps just the filename and line, padded for alignment.
func formatCaller(i any) string {
	c, ok := i.(string)
	if !ok || c == "" {
		return ""
	}
	if j := strings.LastIndexByte(c, '/'); j >= 0 {
		c = c[j+1:]
	}
	return fmt.Sprintf("%-18s >", c)
}
