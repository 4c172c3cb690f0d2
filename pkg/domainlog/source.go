package domainlog

import "github.com/bft-labs/domainlog/pkg/event"

// Handler consumes one log event. It is invoked synchronously on the
// producing goroutine and reports whether it handled the event; it must
// never panic.
type Handler func(e event.Event) bool

// EventSource is a host log stream the router can attach to. Bind
// registers h for every event at or above min severity and returns the
// function that unregisters it again. After the unbind function returns, h
// is no longer invoked.
type EventSource interface {
	Bind(h Handler, min event.Severity) (unbind func(), err error)
}

// Renderer is an optional capability of an EventSource: producing richer
// rendered message text for an event than Event.Message carries. The
// router probes for it once at Start and falls back to the raw message
// when the source does not implement it.
type Renderer interface {
	Render(e event.Event) (text string, ok bool)
}
