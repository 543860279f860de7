// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package diag is the pluggable logging sink used throughout the lenient
// "log and continue" recovery paths required by the interpreter's error
// handling design. By default it discards everything; callers that want to
// observe recovered errors install a LogFunc with SetLogger.
package diag

import "fmt"

// Level identifies the severity of a logged diagnostic.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// LogFunc receives every diagnostic emitted by this module.
type LogFunc func(level Level, msg string)

var logger LogFunc

// SetLogger installs f as the package-wide log sink. Passing nil disables
// logging again.
func SetLogger(f LogFunc) {
	logger = f
}

func emit(level Level, format string, args ...any) {
	if logger == nil {
		return
	}
	logger(level, fmt.Sprintf(format, args...))
}

// DebugLog logs a low-level diagnostic, e.g. a single unknown operator.
func DebugLog(format string, args ...any) { emit(Debug, format, args...) }

// InfoLog logs an informational diagnostic.
func InfoLog(format string, args ...any) { emit(Info, format, args...) }

// Warn logs a recovered error: something the interpreter tolerated and
// continued past.
func Warn(format string, args ...any) { emit(Warning, format, args...) }

// Error logs a more serious recovered error.
func Error(format string, args ...any) { emit(ErrorLevel, format, args...) }
