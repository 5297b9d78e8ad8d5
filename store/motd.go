package store

import "github.com/pyircfs/pyircfs/irc"

// motdNumerics are the reply codes making up the Message Of The Day
// sequence: start (375), each body line (372), the end marker (376), and
// the no-MOTD-file substitute (422) a server sends in place of 375-376.
var motdNumerics = []string{"375", "372", "376", irc.ErrNoMotd}

// MotdStore accumulates the server's Message Of The Day for display at
// /info/motd. Purely a sink; MOTD has no outbound form the user issues
// directly.
type MotdStore struct {
	base
}

// NewMotdStore constructs a MotdStore.
func NewMotdStore(id int, sink Sink) *MotdStore {
	s := &MotdStore{base: newBase(id, "motd", sink)}
	s.log.setFormatter(s.Format)
	return s
}

func (s *MotdStore) DeclaredInbound() []string  { return motdNumerics }
func (s *MotdStore) DeclaredOutbound() []string { return nil }

func (s *MotdStore) OnEvent(ev *irc.Event) []string {
	s.log.Append(ev)
	return nil
}

func (s *MotdStore) Generate(verb string, params []string) []string { return nil }

// Format strips the leading "nick :" from a MOTD body line, leaving just
// the text.
func (s *MotdStore) Format(ev *irc.Event) string {
	if len(ev.ParamsEndpart) > 0 {
		return ev.ParamsEndpart
	}
	return ev.String()
}

func (s *MotdStore) OnRemove() []string { return nil }
