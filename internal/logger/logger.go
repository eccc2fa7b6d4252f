/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package logger is the structured logging front used across the module.
// Libraries log through the slog default handler, which stays silent below
// Info unless a program calls Init.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler installed by Init.
type Config struct {
	// Level is the minimum level written.
	Level slog.Level
	// Format is "text" or "json"; anything else means text.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
	// AddSource adds the calling file and line to each record.
	AddSource bool
}

// DefaultConfig logs text at Info and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// New returns a logger for cfg without installing it.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// Init installs a logger for cfg as the slog default.
func Init(cfg Config) {
	slog.SetDefault(New(cfg))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog.Level.
// Unknown names yield Info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Debug logs at debug level through the default logger.
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }
// Info logs at info level through the default logger.
func Info(msg string, args ...any)  { slog.Info(msg, args...) }
// Warn logs at warn level through the default logger.
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
// Error logs at error level through the default logger.
func Error(msg string, args ...any) { slog.Error(msg, args...) }

// ForComponent returns the default logger with a "component" attribute.
func ForComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

// With returns the default logger with args attached.
func With(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}
