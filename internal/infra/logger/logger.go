// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Levels accepted by Config.Level.
var Levels = []string{"debug", "info", "warn", "error"}

// Config represents logger configuration.
type Config struct {
	Output  string // "stdout", "stderr", or a file path
	Level   string // one of Levels
	Service string // added to every entry when set
}

// Init initializes the global zerolog logger with the given configuration.
// The returned closer releases the log file, if any.
func Init(cfg Config) (io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.CallerMarshalFunc = shortCaller

	logger, closer, err := New(cfg.Output, level)
	if err != nil {
		return nil, err
	}
	if cfg.Service != "" {
		logger = logger.With().Str("service", cfg.Service).Logger()
	}

	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger
	return closer, nil
}

// New builds a logger for output: a colored console writer for stdout and
// stderr, JSON lines for files. Caller information is only added at debug level.
func New(output string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	var ctx zerolog.Context
	var closer io.Closer = nopCloser{}

	switch strings.ToLower(output) {
	case "stdout", "", "stderr":
		var out io.Writer = os.Stdout
		if strings.EqualFold(output, "stderr") {
			out = os.Stderr
		}
		console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
		if level == zerolog.DebugLevel {
			console.PartsOrder = []string{"time", "level", "message", "caller"}
			console.FormatCaller = func(i interface{}) string {
				return "(" + i.(string) + ")"
			}
		}
		ctx = zerolog.New(console).With().Timestamp()
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, errors.Wrapf(err, "failed to open log file %s", output)
		}
		closer = f
		ctx = zerolog.New(f).With().Timestamp()
	}

	if level == zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger().Level(level), closer, nil
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, errors.Newf("unknown log level %q", level)
	}
}

// shortCaller keeps the last directory and the file name.
func shortCaller(_ uintptr, file string, line int) string {
	parts := strings.Split(file, string(filepath.Separator))
	if len(parts) > 1 {
		return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
