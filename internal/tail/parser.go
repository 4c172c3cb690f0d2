package tail

import (
	"regexp"
	"strconv"
	"time"

	"github.com/bft-labs/domainlog/pkg/event"
)

// consolePattern matches the host console log layout:
//
//	2026-08-24 10:11:12.123456 [INFO] sofia.c:1234 message text
//
// The fractional seconds are optional.
var consolePattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})(?:\.\d+)? \[([A-Z]+)\] ([^\s:]+):(\d+) (.*)$`)

// consoleTimeLayout is the timestamp layout inside consolePattern.
const consoleTimeLayout = "2006-01-02 15:04:05"

// ParseLine converts one source log line into an event. Lines in the host
// console layout yield an event with the original timestamp, severity,
// source file and line; anything else becomes an INFO event whose message
// is the whole line.
func ParseLine(line string) event.Event {
	e := event.Event{
		Time:     time.Now(),
		Severity: event.Info,
		Message:  line,
	}

	m := consolePattern.FindStringSubmatch(line)
	if m == nil {
		return e
	}
	sev, err := event.ParseSeverity(m[2])
	if err != nil {
		return e
	}
	if ts, err := time.ParseInLocation(consoleTimeLayout, m[1], time.Local); err == nil {
		e.Time = ts
	}
	e.Severity = sev
	e.File = m[3]
	e.Line, _ = strconv.Atoi(m[4])
	e.Message = m[5]
	return e
}
