// Package resolve derives the tenant ("domain") key that routes a log event
// to its per-domain file.
//
// Resolution order is fixed: the caller context's "domain_name" attribute,
// then its legacy "domain" attribute, then a scan of the rendered message
// text for "domain_name=" or "domain=". Context attributes always win over
// the text scan, and "domain_name" always wins over "domain".
//
// The text scan is a plain substring search with no escaping; a message
// containing "domain=" in unrelated text (a URL query string, say) will be
// matched. That matches the documented host behavior and is kept as is.
package resolve

import (
	"strings"
	"unicode"

	"github.com/bft-labs/domainlog/pkg/event"
)

// Attribute names queried on the caller context, in precedence order.
const (
	AttrDomainName = "domain_name"
	AttrDomain     = "domain"
)

// MaxDomainLen bounds domain keys taken from message text. Longer runs are
// truncated, not rejected.
const MaxDomainLen = 127

// Resolve returns the domain key for an event, or "" when none can be
// derived. src may be nil; message is the rendered event text used for the
// fallback scan.
func Resolve(src event.AttributeSource, message string) string {
	if src != nil {
		if v, ok := src.Attribute(AttrDomainName); ok && v != "" {
			return v
		}
		if v, ok := src.Attribute(AttrDomain); ok && v != "" {
			return v
		}
	}
	return FromMessage(message)
}

// FromMessage scans message text for "domain_name=<value>" or
// "domain=<value>" and returns the value: the run of non-whitespace
// characters after the first match, truncated to MaxDomainLen. Returns ""
// when neither marker is present or the run is empty.
func FromMessage(message string) string {
	var rest string
	if i := strings.Index(message, AttrDomainName+"="); i >= 0 {
		rest = message[i+len(AttrDomainName)+1:]
	} else if i := strings.Index(message, AttrDomain+"="); i >= 0 {
		rest = message[i+len(AttrDomain)+1:]
	} else {
		return ""
	}

	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > MaxDomainLen {
		rest = rest[:MaxDomainLen]
	}
	return rest
}
