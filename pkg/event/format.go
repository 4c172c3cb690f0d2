package event

import (
	"strconv"
	"strings"
)

// SubsystemID identifies this logging subsystem in source-location fields.
// Events whose File contains it are domainlog's own diagnostics and must
// never re-enter the pipeline.
const SubsystemID = "domainlog"

// placeholder stands in for source-location and correlation fields that are
// unknown.
const placeholder = "unknown"

// timeLayout is the local-time layout of the leading timestamp.
const timeLayout = "2006-01-02 15:04:05"

// Format renders one newline-terminated log line:
//
//	2006-01-02 15:04:05 [INFO] [file:func:line] message [correlation-id]
//
// Unknown source-location fields render as "unknown". The trailing
// correlation bracket appears only when the event carries a caller context
// or an explicit correlation identifier; with a context but no identifier
// it renders as "[unknown]".
func Format(e Event) string {
	file := e.File
	if file == "" {
		file = placeholder
	}
	fn := e.Func
	if fn == "" {
		fn = placeholder
	}
	line := placeholder
	if e.Line > 0 {
		line = strconv.Itoa(e.Line)
	}
	msg := e.Message
	if msg == "" {
		msg = "(message)"
	}

	var b strings.Builder
	b.Grow(len(msg) + 80)
	b.WriteString(e.Time.Format(timeLayout))
	b.WriteString(" [")
	b.WriteString(e.Severity.String())
	b.WriteString("] [")
	b.WriteString(file)
	b.WriteByte(':')
	b.WriteString(fn)
	b.WriteByte(':')
	b.WriteString(line)
	b.WriteString("] ")
	b.WriteString(msg)
	if e.Source != nil || e.CorrelationID != "" {
		corr := e.CorrelationID
		if corr == "" {
			corr = placeholder
		}
		b.WriteString(" [")
		b.WriteString(corr)
		b.WriteByte(']')
	}
	b.WriteByte('\n')
	return b.String()
}

// FromSubsystem reports whether e originated inside domainlog itself.
func FromSubsystem(e Event) bool {
	return strings.Contains(e.File, SubsystemID)
}
