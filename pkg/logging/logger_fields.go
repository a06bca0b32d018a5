package logging

import (
	"time"

	"github.com/google/uuid"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func ProcessID(id uuid.UUID) Field {
	return String("process_id", id.String())
}

func EntityID(id uuid.UUID) Field {
	return String("entity_id", id.String())
}

func EdgeID(id uuid.UUID) Field {
	return String("edge_id", id.String())
}

func Version(v int) Field {
	return Int("version", v)
}

func Rule(name string) Field {
	return String("rule", name)
}

func Severity(s string) Field {
	return String("severity", s)
}

func Count(n int) Field {
	return Int("count", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
