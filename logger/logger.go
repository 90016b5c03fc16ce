// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const defaultLogFormat = "%{color}%{time:2006-01-02 15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

// LogLevelFlag defines the level of the logging of the app action.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value:   "info",
}

//go:generate mockgen -source logger.go -destination logger_mock.go -package logger

// Logger is the logging interface used by all packages of the tester.
type Logger interface {
	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Notice(args ...interface{})
	Noticef(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	IsEnabledFor(level logging.Level) bool
}

// NewLogger provides a new instance of the Logger based on context flags.
// An unknown level falls back to INFO.
func NewLogger(level string, module string) Logger {
	log := logging.MustGetLogger(module)

	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultLogFormat))
	leveled := logging.AddModuleLevel(formatter)
	leveled.SetLevel(logLevel, module)
	log.SetBackend(leveled)

	// IsEnabledFor consults the default backend.
	logging.SetLevel(logLevel, module)

	if err != nil {
		log.Warningf("Cannot parse log level %q, using INFO; %v", level, err)
	}
	return log
}

// ParseTime splits an elapsed time into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return hours, minutes, seconds
}
