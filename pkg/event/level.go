package event

import (
	"fmt"
	"strings"
)

// Severity is the importance of a log event. Values are ordered: Debug is
// the least severe, Console the most. A source bound with a minimum
// severity delivers only events at or above that minimum.
type Severity int

// Severity levels, least to most severe.
const (
	Debug Severity = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Console
)

var severityNames = [...]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Notice:   "NOTICE",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRIT",
	Alert:    "ALERT",
	Console:  "CONSOLE",
}

// String returns the human-readable severity name used in formatted lines.
func (s Severity) String() string {
	if s < Debug || int(s) >= len(severityNames) {
		return "INVALID"
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range severityNames {
		if n == upper {
			return Severity(s), nil
		}
	}
	return Debug, fmt.Errorf("unknown severity %q", name)
}
