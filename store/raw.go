package store

import "github.com/pyircfs/pyircfs/irc"

// RawStore is the wildcard sink (registered under the "*" pseudo-command)
// that records every inbound line for /info/raw, and the write target for
// `/commands/raw`: whatever the user writes is split on the first space
// into verb and params and sent to the wire unvalidated, bypassing every
// other store's state tracking. This mirrors the source behavior
// deliberately; a user who writes malformed raw lines can desync the
// session's own bookkeeping.
type RawStore struct {
	base
}

// NewRawStore constructs a RawStore.
func NewRawStore(id int, sink Sink) *RawStore {
	s := &RawStore{base: newBase(id, "raw", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *RawStore) DeclaredInbound() []string  { return []string{irc.RAW} }
func (s *RawStore) DeclaredOutbound() []string { return nil }

func (s *RawStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	return nil
}

// Generate sends params[0] (the full, unsplit raw line the user wrote)
// straight to the wire. verb is ignored: the caller always passes the
// "raw" directory name there, not the user's actual verb, so RawStore
// derives verb/rest itself by splitting the line on its first space, like
// the original RawES.generate_event.
func (s *RawStore) Generate(verb string, params []string) []string {
	if len(params) == 0 {
		return nil
	}
	line := params[0]
	rawVerb, rawRest := splitVerb(line)
	s.log.Append(irc.NewEvent("", rawVerb, rawRest))
	return []string{line}
}

func (s *RawStore) Format(ev *irc.Event) string { return ev.String() }
func (s *RawStore) OnRemove() []string          { return nil }
