package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns a slog.Attr representing the provided error under the key "error".
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// ByteString creates a slog.Attr with the given key and the byte slice rendered as a string.
// Used for response bodies, which are logged verbatim at debug level.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

// Stringer creates a slog.Attr with the provided key and the string representation
// of the given fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

const (
	// KeyLoggerName is the key for the logger name attribute.
	KeyLoggerName = "logger"
	// KeyRequestID is the key for the request id attribute.
	KeyRequestID = "request_id"
)

// LoggerName creates a slog.Attr with the provided logger name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// RequestID creates a slog.Attr for a request id. Empty ids are logged as "-".
func RequestID(id string) slog.Attr {
	if id == "" {
		id = "-"
	}
	return slog.String(KeyRequestID, id)
}
