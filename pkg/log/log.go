// Package log wraps zerolog with the contextual fields batchutil's
// plugins and transports attach to every line: job id, plugin name, and
// remote host.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger every package call site derives its
// child loggers from. Init replaces it; until Init runs it is a
// timestamped stderr logger with no level filter set by this package.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Level names accepted by Config.Level.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

var levels = map[Level]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
}

// Config controls Init. An unrecognized Level falls back to info; a nil
// Output falls back to stdout.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init replaces Logger per cfg. JSONOutput writes one JSON object per
// line (what cmd/batchctl's --log-json flag sets when a caller wants to
// pipe logs into another tool); otherwise lines go through zerolog's
// human-readable ConsoleWriter.
func Init(cfg Config) {
	level, ok := levels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
		return
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// WithComponent scopes a logger to one subsystem ("transport", "registry").
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithJobID scopes a logger to one submitted job via a "job_id" field.
func WithJobID(jobID string) zerolog.Logger {
	return Logger.With().Str("job_id", jobID).Logger()
}

// WithPlugin scopes a logger to one backend ("local", "nobatch", "slurm").
func WithPlugin(plugin string) zerolog.Logger {
	return Logger.With().Str("plugin", plugin).Logger()
}

// WithHost scopes a logger to the remote host a Transport is driving.
func WithHost(host string) zerolog.Logger {
	return Logger.With().Str("host", host).Logger()
}

func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Error(msg string) {
	Logger.Error().Msg(msg)
}

// Errorf logs err against a static message; format is the message, not a
// printf template, so it should not contain verbs.
func Errorf(format string, err error) {
	Logger.Error().Err(err).Msg(format)
}

func Fatal(msg string) {
	Logger.Fatal().Msg(msg)
}
