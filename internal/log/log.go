// Package log configures the slog logger of the autoinject CLI from its
// --logformat, --loglevel and --logoutput flags.
package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sghaida/autoinject/internal/enum"
)

const (
	FormatFlagName = "logformat"

	FormatText = "text"
	FormatJSON = "json"
)

const (
	LevelFlagName = "loglevel"

	LevelInfo  = "info"
	LevelDebug = "debug"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	OutputFlagName = "logoutput"

	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// RegisterLoggingFlags adds the logging flags to flagset. Defaults are the
// first option of each flag: text, info, stderr.
//
//	--logformat json --loglevel debug --logoutput stdout
func RegisterLoggingFlags(flagset *pflag.FlagSet) {
	enum.Var(flagset, FormatFlagName, []string{FormatText, FormatJSON}, "log output format")
	enum.Var(flagset, LevelFlagName, []string{LevelInfo, LevelDebug, LevelWarn, LevelError}, "logging level")
	enum.Var(flagset, OutputFlagName, []string{OutputStderr, OutputStdout}, "log output destination")
}

// GetBaseLogger builds a logger from the flags of cmd.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	fs := cmd.Flags()

	levelName, err := enum.Get(fs, LevelFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get log level: %w", err)
	}
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	format, err := enum.Get(fs, FormatFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get the log format from the command flag: %w", err)
	}

	output, err := enum.Get(fs, OutputFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get the log output from the command flag: %w", err)
	}

	var w io.Writer
	switch output {
	case OutputStdout:
		w = cmd.OutOrStdout()
	default:
		w = cmd.ErrOrStderr()
	}

	return New(w, format, level)
}

// New returns a logger writing format-encoded records at level or above to w.
func New(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

// ParseLevel maps a level flag value to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", name)
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
