// Package metrics names and tags the session metrics sent to StatsD.
package metrics

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/target/cipms/internal/observability/statsd"
)

// Login outcomes.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// LoginMetric describes one settled login attempt.
type LoginMetric struct {
	Role     string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitLogin counts the attempt and records its latency.
func EmitLogin(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{"role": in.Role, "result": in.Result}
	if in.Result == ResultError {
		if class := ErrorClass(in.Err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("session.login", 1, tags)
	if in.Duration > 0 {
		sink.Timing("session.login.duration", in.Duration, map[string]string{"result": in.Result})
	}
}

// EmitLogout counts a logout; failed reports a storage delete error.
func EmitLogout(sink statsd.Sink, failed bool) {
	if sink == nil {
		return
	}
	result := ResultSuccess
	if failed {
		result = ResultError
	}
	sink.Count("session.logout", 1, map[string]string{"result": result})
}

// EmitSweep reports evictions and the live session count after a sweep.
func EmitSweep(sink statsd.Sink, evicted, live int) {
	if sink == nil {
		return
	}
	if evicted > 0 {
		sink.Count("session.evicted", int64(evicted), nil)
	}
	sink.Gauge("session.live", float64(live), nil)
}

// ErrorClass names the innermost concrete error type, e.g. "net_operror".
func ErrorClass(err error) string {
	if err == nil {
		return ""
	}
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
