package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ServiceMode names a long-running component of cmd/cipms.
type ServiceMode string

const (
	// ServiceModeHTTP serves the web dashboard.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeSessionSweeper evicts idle in-memory sessions.
	ServiceModeSessionSweeper ServiceMode = "session-sweeper"
)

// ValidServiceModes lists the accepted SERVICES entries in startup order.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeSessionSweeper}
}

// ParseServices turns a comma-separated SERVICES value into a set.
// Blank entries are skipped and names are case-insensitive.
func ParseServices(raw string) (map[ServiceMode]bool, error) {
	valid := ValidServiceModes()
	out := make(map[ServiceMode]bool, len(valid))

	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		mode := ServiceMode(name)
		if !slices.Contains(valid, mode) {
			return nil, fmt.Errorf("invalid service name %q (valid options: %s)", name, joinModes(valid))
		}
		out[mode] = true
	}

	if len(out) == 0 {
		return nil, errors.New("at least one service must be specified")
	}
	return out, nil
}

func joinModes(modes []ServiceMode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
