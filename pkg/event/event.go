package event

import "time"

// AttributeSource exposes named attributes of the caller context an event
// was produced under (for a telephony host, channel variables). Sources
// return ok=false for attributes they do not carry.
type AttributeSource interface {
	Attribute(name string) (value string, ok bool)
}

// Event is one log event as delivered by a host event source. File, Func
// and Line identify the source location that emitted it; any of them may be
// zero when unknown. Source is the caller context the event was produced
// under, or nil when the event has none.
type Event struct {
	Time          time.Time
	Severity      Severity
	File          string
	Func          string
	Line          int
	Message       string
	CorrelationID string
	Source        AttributeSource
}
