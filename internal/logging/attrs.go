package logging

import (
	"log/slog"
	"time"
)

// Shared attribute keys so cycle decisions stay greppable across components.
const (
	FieldComponent = "component"
	FieldBooking   = "booking"
	FieldName      = "name"
	FieldDecision  = "decision"
	FieldReason    = "reason"
	FieldJobID     = "job_id"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Component(value string) Attr { return slog.String(FieldComponent, value) }

func Decision(value string) Attr { return slog.String(FieldDecision, value) }

func Reason(value string) Attr { return slog.String(FieldReason, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs to the variadic any form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}
