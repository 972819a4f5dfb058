// Copyright 2026 The Matchopt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package optlog builds the zap loggers used by the matchopt command.
package optlog

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats supported by New.
const (
	Console = "console"
	JSON    = "json"
)

// Options configures a logger.
type Options struct {
	// Format is Console or JSON. The empty string means Console.
	Format string

	// Level is the verbosity as used by MATCHOPT_DEBUG=logopt=N:
	// 0 logs warnings and errors, 1 adds a summary line per run and 2 or
	// more adds a line per rewrite.
	Level int

	// NoTime omits timestamps, for reproducible output.
	NoTime bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*zap.Logger, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.MessageKey = "msg"
	ec.CallerKey = ""
	ec.StacktraceKey = ""
	if opts.NoTime {
		ec.TimeKey = ""
	}

	var enc zapcore.Encoder
	switch opts.Format {
	case "", Console:
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	case JSON:
		ec.EncodeTime = zapcore.RFC3339TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), Level(opts.Level))
	return zap.New(core), nil
}

// Level maps a MATCHOPT_DEBUG log level to a zap level.
func Level(n int) zapcore.Level {
	switch {
	case n <= 0:
		return zapcore.WarnLevel
	case n == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
