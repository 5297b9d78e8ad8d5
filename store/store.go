/*
Package store implements the event-store family: the polymorphic
accumulators and reactors that both record history and react to IRC
traffic (auto-PONG, nick renegotiation, channel membership tracking, and so
on). Every variant satisfies Store, and the Handler routes events by the
command codes each one declares; it handles concrete types only for the
stores it keeps in typed fields and when removing a store.
*/
package store

import (
	"strings"
	"time"

	"github.com/pyircfs/pyircfs/irc"
)

// Sink is the narrow capability a store needs from its owning Handler: just
// enough to recognize the session's own nick in membership events (own
// JOIN/PART/KICK, nick-following). Passing this instead of the whole
// Handler avoids an import cycle and keeps store unit tests trivial to set
// up, per the "narrow capability, not the whole Handler" guidance for this
// store family.
type Sink interface {
	CurrentNick() string
}

// Store is the interface every event-store variant satisfies.
type Store interface {
	// ID is the monotonic id assigned at creation.
	ID() int
	// Name is a display label, conventionally but not necessarily unique.
	Name() string
	// DeclaredInbound lists the command codes and numerics this store
	// wants routed to OnEvent.
	DeclaredInbound() []string
	// DeclaredOutbound lists the command verbs this store can Generate.
	DeclaredOutbound() []string
	// OnEvent reacts to an inbound (or synthesized informational) Event,
	// returning zero or more wire lines to enqueue on the Connection.
	OnEvent(ev *irc.Event) []string
	// Generate produces wire lines for a user-issued command or message.
	Generate(verb string, params []string) []string
	// Format renders a single Event as a human-readable line for the
	// filesystem projection's read path.
	Format(ev *irc.Event) string
	// OnRemove is invoked once when the store is detached from the
	// registry; it may return lines to send (e.g. a PART).
	OnRemove() []string
	// Content returns the cached formatted-content list backing the
	// filesystem read path.
	Content() []string
	// CreatedAt is the first event's timestamp, for ctime.
	CreatedAt() time.Time
	// LastAt is the most recent event's timestamp, for mtime/atime.
	LastAt() time.Time
}

// base is embedded by every store variant. It is not itself a Store.
type base struct {
	id   int
	name string
	sink Sink
	log  EventLog
}

func newBase(id int, name string, sink Sink) base {
	return base{id: id, name: name, sink: sink}
}

func (b *base) ID() int      { return b.id }
func (b *base) Name() string { return b.name }

func (b *base) Content() []string    { return b.log.Content() }
func (b *base) CreatedAt() time.Time { return b.log.CreatedAt() }
func (b *base) LastAt() time.Time    { return b.log.LastAt() }

// EventLog is the append-only event history shared by every store, plus a
// formatted-content cache that only recomputes when the log has grown.
//
// The cache and the log itself are safe to mutate without their own lock:
// a store is only ever reached while the Handler holds its single coarse
// lock, per the concurrency model every store variant here relies on.
type EventLog struct {
	events    []*irc.Event
	formatted []string
	format    func(*irc.Event) string
}

// setFormatter installs the rendering function used to build the cached
// content list. Called once by each store's constructor with its own
// Format method.
func (l *EventLog) setFormatter(format func(*irc.Event) string) {
	l.format = format
}

// Append adds ev to the log, appended-only per the store invariant: the
// log never mutates or reorders existing entries.
func (l *EventLog) Append(ev *irc.Event) {
	l.events = append(l.events, ev)
}

// Events returns the full event history, in arrival order.
func (l *EventLog) Events() []*irc.Event {
	return l.events
}

// Content returns the cached formatted-content list, recomputing it only
// if the log has grown since the last call.
func (l *EventLog) Content() []string {
	if len(l.formatted) == len(l.events) {
		return l.formatted
	}
	lines := make([]string, len(l.events))
	for i, ev := range l.events {
		lines[i] = l.format(ev)
	}
	l.formatted = lines
	return l.formatted
}

// CreatedAt is the first event's timestamp, the zero Time if the log is
// empty.
func (l *EventLog) CreatedAt() time.Time {
	if len(l.events) == 0 {
		return time.Time{}
	}
	return l.events[0].Time
}

// LastAt is the most recent event's timestamp, falling back to CreatedAt
// (and so to the zero Time) if nothing has been appended since creation.
func (l *EventLog) LastAt() time.Time {
	if len(l.events) == 0 {
		return time.Time{}
	}
	return l.events[len(l.events)-1].Time
}

// splitVerb separates the command verb from the rest of a raw user-written
// line, used by RawStore and by command parsing generally.
func splitVerb(line string) (verb, rest string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return strings.ToUpper(line[:i]), line[i+1:]
	}
	return strings.ToUpper(line), ""
}
