/*
Package irc defines the wire-level vocabulary shared by the session kernel,
the event stores and the filesystem projection: the Event type, RFC 1459/2812
line parsing and formatting, hostmask matching and the small set of protocol
constants every store needs.
*/
package irc

import (
	"strings"
	"time"
)

// Event is an immutable record of one IRC line, inbound or synthesized.
//
// An Event is created once, appended to exactly one store's event list, and
// never mutated or reordered afterwards.
type Event struct {
	// Time is the wall-clock moment the event was created.
	Time time.Time
	// Prefix is the optional leading ":source" token, without the colon.
	// Empty for locally generated events and for some server notices.
	Prefix string
	// Command is the uppercased verb, or a three-digit numeric reply code.
	Command string
	// Params is the remainder of the line after Command, kept verbatim:
	// a trailing arg keeps the colon that introduces it.
	Params string
	// ParamsEndpart is the substring after the first " :" in Params (or
	// after a leading ":"), or empty if there was no trailing argument.
	ParamsEndpart string
	// Generated is true if this Event was synthesized locally (an
	// outbound command or reply), false if it arrived off the wire.
	Generated bool
	// Informational marks a synthetic status event not tied to wire
	// traffic (e.g. a session status transition).
	Informational bool
}

// NewEvent constructs a locally generated Event stamped with the current
// time.
func NewEvent(prefix, command, params string) *Event {
	return &Event{
		Time:          time.Now(),
		Prefix:        prefix,
		Command:       strings.ToUpper(command),
		Params:        params,
		ParamsEndpart: endpart(params),
		Generated:     true,
	}
}

// NewInformational constructs a synthetic, non-wire Event used for status
// transitions and other bookkeeping a store records without ever having
// sent or received a line.
func NewInformational(command, params string) *Event {
	ev := NewEvent("", command, params)
	ev.Informational = true
	return ev
}

// endpart returns the portion of params after the first " :", or the whole
// of a leading ":"-only param string, or "" if neither form is present.
func endpart(params string) string {
	if idx := strings.Index(params, " :"); idx >= 0 {
		return params[idx+2:]
	}
	if strings.HasPrefix(params, ":") {
		return params[1:]
	}
	return ""
}

// Args splits Params on spaces, folding the trailing ":"-introduced
// argument (if any) into a single final element that may itself contain
// spaces.
func (e *Event) Args() []string {
	params := e.Params
	if len(params) == 0 {
		return nil
	}

	if idx := strings.Index(params, " :"); idx >= 0 {
		args := strings.Fields(params[:idx])
		return append(args, params[idx+2:])
	}
	if strings.HasPrefix(params, ":") {
		return []string{params[1:]}
	}
	return strings.Fields(params)
}

// Nick returns the nick portion of Prefix (everything before the first
// '!' or '@'); a Prefix with neither, such as a bare server name, is
// returned unchanged.
func (e *Event) Nick() string {
	return Nick(e.Prefix)
}

// IsNumeric reports whether Command is a three-digit numeric reply.
func (e *Event) IsNumeric() bool {
	if len(e.Command) != 3 {
		return false
	}
	for _, r := range e.Command {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsCTCP reports whether this is a PRIVMSG/NOTICE whose trailing argument
// is CTCP-delimited.
func (e *Event) IsCTCP() bool {
	if e.Command != PRIVMSG && e.Command != NOTICE {
		return false
	}
	return len(e.ParamsEndpart) >= 2 && IsCTCPString(e.ParamsEndpart)
}

// UnpackCTCP retrieves the tag and data from a CTCP event's trailing
// argument.
func (e *Event) UnpackCTCP() (tag, data string) {
	return CTCPUnpackString(e.ParamsEndpart)
}

// String renders the Event back into RFC 1459/2812 wire format, without a
// trailing CRLF.
func (e *Event) String() string {
	var b strings.Builder
	if len(e.Prefix) > 0 {
		b.WriteByte(':')
		b.WriteString(e.Prefix)
		b.WriteByte(' ')
	}
	b.WriteString(e.Command)
	if len(e.Params) > 0 {
		b.WriteByte(' ')
		b.WriteString(e.Params)
	}
	return b.String()
}

// Line parses a single raw IRC line (no CRLF) into an Event. Malformed
// lines return an error so the caller can drop them silently, per the
// best-effort parse policy: the session must never die from bad input.
func Line(raw string) (*Event, error) {
	if len(raw) == 0 {
		return nil, errEmptyLine
	}

	var prefix string
	rest := raw
	if rest[0] == ':' {
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			return nil, errMalformedLine
		}
		prefix = rest[1:sp]
		rest = rest[sp+1:]
	}

	sp := strings.IndexByte(rest, ' ')
	var command, params string
	if sp < 0 {
		command = rest
	} else {
		command = rest[:sp]
		params = rest[sp+1:]
	}
	if len(command) == 0 {
		return nil, errMalformedLine
	}

	return &Event{
		Time:          time.Now(),
		Prefix:        prefix,
		Command:       strings.ToUpper(command),
		Params:        params,
		ParamsEndpart: endpart(params),
	}, nil
}
